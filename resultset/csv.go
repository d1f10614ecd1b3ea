// resultset/csv.go
package resultset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
)

type csvOptions struct {
	leftOrder  []string
	rightOrder []string
}

// CSVOption configura a exportação CSV.
type CSVOption func(*csvOptions)

// WithLeftColumnOrder fixa as colunas que abrem o cabeçalho, na ordem dada.
func WithLeftColumnOrder(columns ...string) CSVOption {
	return func(o *csvOptions) {
		o.leftOrder = columns
	}
}

// WithRightColumnOrder fixa as colunas que fecham o cabeçalho, na ordem dada.
// Uma coluna citada nas duas listas conta para a lista da direita.
func WithRightColumnOrder(columns ...string) CSVOption {
	return func(o *csvOptions) {
		o.rightOrder = columns
	}
}

// csvHeader monta a ordem final do cabeçalho: colunas da esquerda, depois as
// colunas restantes em ordem alfabética, depois colunas da direita. Uma
// coluna citada nas duas listas sai apenas na posição da direita.
func csvHeader(columns []string, o csvOptions) []string {
	header := make([]string, 0, len(columns))
	for _, col := range o.leftOrder {
		if !slices.Contains(o.rightOrder, col) {
			header = append(header, col)
		}
	}
	for _, col := range columns {
		if !slices.Contains(o.leftOrder, col) && !slices.Contains(o.rightOrder, col) {
			header = append(header, col)
		}
	}
	header = append(header, o.rightOrder...)
	return header
}

// renderCell converte um valor dinâmico para a célula CSV; atributos
// ausentes viram a célula vazia.
func renderCell(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// WriteCSV escreve o conjunto em formato CSV: uma linha de cabeçalho seguida
// de uma linha de dados por linha do conjunto, com as regras padrão de
// quoting para separadores embutidos.
func (r *ResultSet) WriteCSV(out io.Writer, opts ...CSVOption) error {
	if r.err != nil {
		return r.err
	}

	var o csvOptions
	for _, opt := range opts {
		opt(&o)
	}

	w := csv.NewWriter(out)
	header := csvHeader(r.Columns(), o)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("resultset: write csv header: %w", err)
	}

	record := make([]string, len(header))
	for _, row := range r.FillEmpty(nil).All() {
		for i, col := range header {
			record[i] = renderCell(row[col])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("resultset: write csv row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// ToCSV exporta o conjunto para um arquivo CSV no caminho indicado.
func (r *ResultSet) ToCSV(path string, opts ...CSVOption) error {
	if r.err != nil {
		return r.err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("resultset: create csv file: %w", err)
	}
	defer f.Close()

	if err := r.WriteCSV(f, opts...); err != nil {
		return err
	}
	return f.Close()
}
