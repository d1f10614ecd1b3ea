// resultset/resultset.go
package resultset

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sort"
)

// TableRef é a referência de proveniência de um ResultSet: a tabela que
// originou a consulta. Implementada por dyntable.Table.
type TableRef interface {
	// Name retorna o nome da tabela de origem.
	Name() string
	// HashKey retorna o nome da chave de partição da tabela.
	HashKey(ctx context.Context) (string, error)
}

// ResultSet é um snapshot imutável (por convenção) das linhas retornadas por
// uma consulta, mais a referência da tabela de origem. Operações de derivação
// nunca alteram o receptor; erros de derivação ficam adiados no conjunto
// resultante e são expostos via Err().
type ResultSet struct {
	rows  []Row
	table TableRef
	err   error
}

// New cria um ResultSet a partir do payload bruto de uma Query ou Scan.
// As linhas de entrada são copiadas profundamente.
func New(rows []Row, table TableRef) *ResultSet {
	return &ResultSet{rows: copyRows(rows), table: table}
}

// derive cria um conjunto derivado sem nova cópia: as operações de derivação
// já trabalham sobre cópias profundas.
func (r *ResultSet) derive(rows []Row) *ResultSet {
	return &ResultSet{rows: rows, table: r.table}
}

// fail cria um conjunto derivado vazio carregando o erro adiado.
func (r *ResultSet) fail(err error) *ResultSet {
	return &ResultSet{table: r.table, err: err}
}

// Err retorna o primeiro erro adiado da cadeia de derivações, se houver.
func (r *ResultSet) Err() error {
	return r.err
}

// Table retorna a referência da tabela de origem (pode ser nil para
// conjuntos construídos manualmente).
func (r *ResultSet) Table() TableRef {
	return r.table
}

// Exists informa se a consulta retornou ao menos uma linha.
func (r *ResultSet) Exists() bool {
	return r.rows != nil && len(r.rows) != 0
}

// Length retorna a quantidade de linhas do conjunto.
func (r *ResultSet) Length() int {
	return len(r.rows)
}

// IsUnique informa se a consulta retornou exatamente uma linha.
func (r *ResultSet) IsUnique() bool {
	return len(r.rows) == 1
}

// All retorna as linhas do conjunto na ordem de origem. O slice retornado
// pertence ao ResultSet; por convenção o chamador não deve alterá-lo.
func (r *ResultSet) All() []Row {
	if r.rows == nil {
		return []Row{}
	}
	return r.rows
}

// First retorna a primeira linha, ou uma linha vazia quando o conjunto está
// vazio. A linha vazia é um sentinela, não uma falha.
func (r *ResultSet) First() Row {
	if len(r.rows) == 0 {
		return Row{}
	}
	return r.rows[0]
}

// Last retorna a última linha, ou nil quando o conjunto está vazio.
func (r *ResultSet) Last() Row {
	if len(r.rows) == 0 {
		return nil
	}
	return r.rows[len(r.rows)-1]
}

// setKey reduz um valor dinâmico a uma chave utilizável em conjuntos e
// contagens. Valores não comparáveis (listas, mapas) degradam para a sua
// forma textual.
func setKey(v any) any {
	if v == nil {
		return nil
	}
	if !reflect.TypeOf(v).Comparable() {
		return fmt.Sprintf("%#v", v)
	}
	if n, ok := asNumber(v); ok {
		return n
	}
	return v
}

// Unique retorna o conjunto de valores distintos da coluna entre as linhas
// que a possuem. Com ignoresEmpty=false, linhas sem a coluna contribuem com
// uma única entrada nil, independente de quantas sejam.
func (r *ResultSet) Unique(key string, ignoresEmpty bool) map[any]struct{} {
	values := make(map[any]struct{})
	for _, row := range r.rows {
		v, ok := row[key]
		if !ok {
			if !ignoresEmpty {
				values[nil] = struct{}{}
			}
			continue
		}
		values[setKey(v)] = struct{}{}
	}
	return values
}

// CountUnique retorna a cardinalidade de Unique.
func (r *ResultSet) CountUnique(key string, ignoresEmpty bool) int {
	return len(r.Unique(key, ignoresEmpty))
}

// CountOccurrence conta as ocorrências de cada valor observado da coluna.
// Diferente de Unique, toda linha precisa possuir a coluna: a primeira linha
// sem ela interrompe a contagem com erro.
func (r *ResultSet) CountOccurrence(key string) (map[any]int, error) {
	if r.err != nil {
		return nil, r.err
	}
	counts := make(map[any]int)
	for i, row := range r.rows {
		v, ok := row[key]
		if !ok {
			return nil, fmt.Errorf("%w: row %d has no column %q", ErrFieldMissing, i, key)
		}
		counts[setKey(v)]++
	}
	return counts, nil
}

// CountEmpty conta as linhas que não possuem a coluna.
func (r *ResultSet) CountEmpty(key string) int {
	count := 0
	for _, row := range r.rows {
		if !row.Has(key) {
			count++
		}
	}
	return count
}

// Columns retorna a união ordenada dos nomes de atributo de todas as linhas.
func (r *ResultSet) Columns() []string {
	seen := make(map[string]struct{})
	for _, row := range r.rows {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	slices.Sort(columns)
	return columns
}

// Column projeta uma coluna sobre todas as linhas. Com includeEmpty=true,
// linhas sem a coluna contribuem com replaceEmpty na posição correspondente;
// fornecer replaceEmpty sem includeEmpty é um erro de uso.
func (r *ResultSet) Column(key string, includeEmpty bool, replaceEmpty any) ([]any, error) {
	if r.err != nil {
		return nil, r.err
	}
	if replaceEmpty != nil && !includeEmpty {
		return nil, fmt.Errorf("%w: replaceEmpty requires includeEmpty", ErrUsage)
	}

	values := make([]any, 0, len(r.rows))
	for _, row := range r.rows {
		v, ok := row[key]
		switch {
		case ok:
			values = append(values, v)
		case includeEmpty:
			values = append(values, replaceEmpty)
		}
	}
	return values, nil
}

// Strip retorna um novo conjunto com as colunas indicadas removidas de todas
// as linhas. Chamar sem colunas é um erro de uso.
func (r *ResultSet) Strip(keys ...string) *ResultSet {
	if r.err != nil {
		return r
	}
	if len(keys) == 0 {
		return r.fail(fmt.Errorf("%w: strip needs at least one column", ErrUsage))
	}

	rows := copyRows(r.rows)
	for _, row := range rows {
		for _, key := range keys {
			delete(row, key)
		}
	}
	return r.derive(rows)
}

// SelectColumns retorna um novo conjunto mantendo apenas as colunas
// indicadas (o inverso de Strip).
func (r *ResultSet) SelectColumns(columns ...string) *ResultSet {
	if r.err != nil {
		return r
	}

	rows := copyRows(r.rows)
	for _, row := range rows {
		for k := range row {
			if !slices.Contains(columns, k) {
				delete(row, k)
			}
		}
	}
	return r.derive(rows)
}

// Apply calcula fn sobre as colunas de origem de cada linha que possui todas
// elas, gravando o resultado em newColumn. Quando newColumn é vazio, o
// destino é a primeira coluna de origem (com aviso se houver mais de uma).
// Linhas sem alguma coluna de origem ficam intactas e geram um único aviso
// para o lote inteiro.
func (r *ResultSet) Apply(fn func(values ...any) any, newColumn string, sourceColumns ...string) *ResultSet {
	if r.err != nil {
		return r
	}
	if len(sourceColumns) == 0 {
		return r.fail(fmt.Errorf("%w: apply needs at least one source column", ErrUsage))
	}

	target := newColumn
	if target == "" {
		target = sourceColumns[0]
		if len(sourceColumns) > 1 {
			warnLog.Warn().
				Strs("source_columns", sourceColumns).
				Str("target", target).
				Msg("Apply sem coluna de destino: gravando sobre a primeira coluna de origem")
		}
	}

	rows := copyRows(r.rows)
	skipped := 0
	for _, row := range rows {
		values := make([]any, 0, len(sourceColumns))
		complete := true
		for _, col := range sourceColumns {
			v, ok := row[col]
			if !ok {
				complete = false
				break
			}
			values = append(values, v)
		}
		if !complete {
			skipped++
			continue
		}
		row[target] = fn(values...)
	}
	if skipped > 0 {
		warnLog.Warn().
			Int("skipped", skipped).
			Strs("source_columns", sourceColumns).
			Msg("Apply ignorou linhas sem as colunas de origem")
	}
	return r.derive(rows)
}

// FillEmpty normaliza todas as linhas para o conjunto completo de colunas
// observado, preenchendo atributos ausentes com defaultValue.
func (r *ResultSet) FillEmpty(defaultValue any) *ResultSet {
	if r.err != nil {
		return r
	}

	columns := r.Columns()
	rows := make([]Row, len(r.rows))
	for i, row := range r.rows {
		filled := make(Row, len(columns))
		for _, col := range columns {
			if v, ok := row[col]; ok {
				filled[col] = copyValue(v)
			} else {
				filled[col] = defaultValue
			}
		}
		rows[i] = filled
	}
	return r.derive(rows)
}

// Sort retorna um novo conjunto ordenado de forma estável e ascendente pela
// chave (ou tupla de chaves) indicada, usando a ordenação natural do tipo do
// valor. Linhas sem a chave ordenam antes das demais.
func (r *ResultSet) Sort(keys ...string) *ResultSet {
	if r.err != nil {
		return r
	}
	if len(keys) == 0 {
		return r.fail(fmt.Errorf("%w: sort needs at least one key", ErrUsage))
	}

	rows := copyRows(r.rows)
	var sortErr error
	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range keys {
			cmp, err := compareValues(rows[i][key], rows[j][key])
			if err != nil && sortErr == nil {
				sortErr = fmt.Errorf("sort by %q: %w", key, err)
			}
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
	if sortErr != nil {
		return r.fail(sortErr)
	}
	return r.derive(rows)
}

// Join faz a junção à esquerda com outro conjunto: para cada linha que possui
// a coluna `using`, os atributos da linha correspondente em `other` são
// mesclados sobre a linha (o lado direito vence em conflito de nomes).
// Quando `using` não é coluna deste conjunto, Join é um no-op e retorna o
// próprio receptor. Uma chave não única no lado direito gera um aviso não
// fatal: a correspondência usada é a que a busca pontual devolver primeiro.
func (r *ResultSet) Join(other *ResultSet, using string) *ResultSet {
	if r.err != nil {
		return r
	}
	if !slices.Contains(r.Columns(), using) {
		return r
	}

	if other.CountUnique(using, true)+other.CountEmpty(using) != other.Length() {
		event := warnLog.Warn().Str("using", using)
		if other.table != nil {
			event = event.Str("table", other.table.Name())
		}
		event.Msg("Completando JOIN com chave não única no lado direito")
	}

	rows := copyRows(r.rows)
	for _, row := range rows {
		v, ok := row[using]
		if !ok {
			continue
		}
		for k, mv := range other.GetWhere(using, v) {
			row[k] = copyValue(mv)
		}
	}
	return r.derive(rows)
}

// Get faz a busca pontual pela chave de partição da tabela de origem dentro
// do snapshot, sem emitir novas requisições.
func (r *ResultSet) Get(ctx context.Context, value any) (Row, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.table == nil {
		return nil, fmt.Errorf("%w: result set has no origin table", ErrUsage)
	}
	hashKey, err := r.table.HashKey(ctx)
	if err != nil {
		return nil, err
	}
	return r.GetWhere(hashKey, value), nil
}

// GetWhere retorna a primeira linha cujo atributo é igual ao valor indicado,
// ou uma linha vazia quando não há correspondência.
func (r *ResultSet) GetWhere(key string, value any) Row {
	return r.Filter(key, value, Equals).First()
}

// Field retorna o valor de um atributo quando o conjunto possui exatamente
// uma linha. Zero linhas e mais de uma linha produzem erros distinguíveis
// (ErrNoResult e ErrAmbiguousResult).
func (r *ResultSet) Field(name string) (any, error) {
	if r.err != nil {
		return nil, r.err
	}
	switch len(r.rows) {
	case 0:
		return nil, ErrNoResult
	case 1:
		v, ok := r.rows[0][name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrFieldMissing, name)
		}
		return v, nil
	default:
		return nil, ErrAmbiguousResult
	}
}

// SetField grava um atributo na única linha do conjunto. É a única operação
// que altera linhas no lugar, mantida por compatibilidade com o padrão de
// uso de tabelas chave-valor.
func (r *ResultSet) SetField(name string, value any) error {
	if r.err != nil {
		return r.err
	}
	switch len(r.rows) {
	case 0:
		return ErrNoResult
	case 1:
		r.rows[0][name] = value
		return nil
	default:
		return ErrAmbiguousResult
	}
}

// HasField informa se a única linha do conjunto possui o atributo, com os
// mesmos erros de cardinalidade de Field.
func (r *ResultSet) HasField(name string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	switch len(r.rows) {
	case 0:
		return false, ErrNoResult
	case 1:
		return r.rows[0].Has(name), nil
	default:
		return false, ErrAmbiguousResult
	}
}

// HasRow informa se alguma linha do conjunto é igual à linha dada.
// Chamar sobre um conjunto vazio retorna ErrNoResult.
func (r *ResultSet) HasRow(row Row) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	if len(r.rows) == 0 {
		return false, ErrNoResult
	}
	for _, candidate := range r.rows {
		if reflect.DeepEqual(candidate, row) {
			return true, nil
		}
	}
	return false, nil
}

// Value retorna o atributo "value" da primeira linha, atalho para tabelas
// chave-valor.
func (r *ResultSet) Value() (any, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(r.rows) == 0 {
		return nil, ErrNoResult
	}
	v, ok := r.rows[0]["value"]
	if !ok {
		return nil, fmt.Errorf("%w: \"value\"", ErrFieldMissing)
	}
	return v, nil
}

// Filter cria o filtro e retorna um FilteredResultSet envolvendo o receptor.
func (r *ResultSet) Filter(column string, value any, filterType FilterType) *FilteredResultSet {
	return r.FilterUsing(NewFilter(column, value, filterType))
}

// FilterUsing aplica um filtro já construído, útil com IncludingEmpty.
func (r *ResultSet) FilterUsing(f Filter) *FilteredResultSet {
	return newFiltered(r, f, nil, nil)
}

// FilterAll materializa uma pilha inteira de filtros em uma única passada
// contra o receptor (caminho completo). O conjunto de linhas resultante é o
// mesmo de encadear Filter por filtro; só o caminho de recomputação muda.
func (r *ResultSet) FilterAll(filters ...Filter) *FilteredResultSet {
	if len(filters) == 0 {
		return &FilteredResultSet{
			ResultSet: r.fail(fmt.Errorf("%w: filterAll needs at least one filter", ErrUsage)),
			origin:    r,
		}
	}
	return newFiltered(r, filters[len(filters)-1], filters[:len(filters)-1], nil)
}
