// resultset/filtered.go
package resultset

// FilteredResultSet é um ResultSet acompanhado do seu registro de derivação:
// o conjunto de origem e a pilha ordenada de filtros que o produziu.
// Invariante: as linhas materializadas equivalem sempre à pilha aplicada em
// ordem sobre as linhas da origem.
type FilteredResultSet struct {
	*ResultSet

	origin *ResultSet
	stack  []Filter
}

// newFiltered materializa um conjunto filtrado por um de dois caminhos:
//
//   - caminho completo (lastFiltered == nil): a pilha herdada mais o novo
//     filtro é reaplicada inteira sobre as linhas brutas da origem;
//   - caminho incremental (lastFiltered != nil): apenas o novo filtro é
//     aplicado sobre as linhas já materializadas do conjunto anterior.
//
// Os dois caminhos produzem o mesmo conjunto de linhas; só o custo de
// recomputação muda. A pilha registra a história completa em ambos.
func newFiltered(origin *ResultSet, current Filter, stack []Filter, lastFiltered *ResultSet) *FilteredResultSet {
	full := make([]Filter, 0, len(stack)+1)
	full = append(full, stack...)
	full = append(full, current)

	fr := &FilteredResultSet{origin: origin, stack: full}

	if origin.err != nil {
		fr.ResultSet = origin.fail(origin.err)
		return fr
	}

	if lastFiltered != nil {
		rows, err := current.Apply(copyRows(lastFiltered.rows))
		if err != nil {
			fr.ResultSet = origin.fail(err)
			return fr
		}
		fr.ResultSet = origin.derive(rows)
		return fr
	}

	rows := copyRows(origin.rows)
	for _, f := range full {
		kept, err := f.Apply(rows)
		if err != nil {
			fr.ResultSet = origin.fail(err)
			return fr
		}
		rows = kept
	}
	fr.ResultSet = origin.derive(rows)
	return fr
}

// FilterStack retorna a descrição legível de cada filtro já aplicado, na
// ordem de aplicação.
func (fr *FilteredResultSet) FilterStack() []string {
	stack := make([]string, len(fr.stack))
	for i, f := range fr.stack {
		stack[i] = f.String()
	}
	return stack
}

// Origin retorna o ResultSet bruto do qual esta cadeia de filtros partiu.
func (fr *FilteredResultSet) Origin() *ResultSet {
	return fr.origin
}

// Filter refina o conjunto pelo caminho incremental: somente o novo filtro é
// aplicado sobre as linhas já materializadas.
func (fr *FilteredResultSet) Filter(column string, value any, filterType FilterType) *FilteredResultSet {
	return fr.FilterUsing(NewFilter(column, value, filterType))
}

// FilterUsing refina o conjunto pelo caminho incremental com um filtro já
// construído.
func (fr *FilteredResultSet) FilterUsing(f Filter) *FilteredResultSet {
	return newFiltered(fr.origin, f, fr.stack, fr.ResultSet)
}
