// resultset/filter.go
package resultset

import "fmt"

// Filter liga um FilterType a uma coluna e a um literal, com a política para
// linhas que não possuem a coluna.
type Filter struct {
	// Column é o nome do atributo avaliado.
	Column string
	// Value é o literal comparado contra o valor do atributo.
	Value any
	// Type é o operador de comparação.
	Type FilterType
	// IncludesEmpty controla a política de coluna ausente: quando false, a
	// linha sem a coluna é excluída; quando true, a ausência da coluna
	// mantém a linha sem sequer avaliar o predicado.
	IncludesEmpty bool
}

// NewFilter cria um filtro que exclui linhas sem a coluna.
func NewFilter(column string, value any, filterType FilterType) Filter {
	return Filter{Column: column, Value: value, Type: filterType}
}

// IncludingEmpty retorna uma cópia do filtro que mantém linhas sem a coluna.
func (f Filter) IncludingEmpty() Filter {
	f.IncludesEmpty = true
	return f
}

// Apply é um filtro puro que preserva a ordem da sequência de entrada.
// As linhas retornadas são as próprias linhas de entrada (sem cópia): quem
// chama decide quando copiar.
func (f Filter) Apply(rows []Row) ([]Row, error) {
	kept := make([]Row, 0, len(rows))
	for _, row := range rows {
		value, present := row[f.Column]
		if f.IncludesEmpty && !present {
			kept = append(kept, row)
			continue
		}
		if !present {
			continue
		}
		ok, err := f.Type.eval(value, f.Value)
		if err != nil {
			return nil, fmt.Errorf("filter on %q: %w", f.Column, err)
		}
		if ok {
			kept = append(kept, row)
		}
	}
	return kept, nil
}

// String descreve o filtro para fins de proveniência (ver FilterStack).
func (f Filter) String() string {
	return fmt.Sprintf("FILTER: On %q of type %q for condition \"%v\"", f.Column, f.Type.String(), f.Value)
}
