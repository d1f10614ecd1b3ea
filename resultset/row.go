// resultset/row.go
package resultset

// Row representa um item do DynamoDB já decodificado pelo attributevalue:
// um mapa de nome de atributo para valor dinâmico (string, float64, bool,
// []any, map[string]any ou nil). Cada linha carrega o seu próprio conjunto
// de colunas; não há schema por tabela.
type Row map[string]any

// Has informa se o atributo existe na linha.
func (r Row) Has(column string) bool {
	_, ok := r[column]
	return ok
}

// copyValue copia profundamente um valor dinâmico de atributo.
func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		dst := make(map[string]any, len(val))
		for k, item := range val {
			dst[k] = copyValue(item)
		}
		return dst
	case []any:
		dst := make([]any, len(val))
		for i, item := range val {
			dst[i] = copyValue(item)
		}
		return dst
	default:
		return val
	}
}

// copyRow copia profundamente uma linha.
func copyRow(r Row) Row {
	dst := make(Row, len(r))
	for k, v := range r {
		dst[k] = copyValue(v)
	}
	return dst
}

// copyRows copia profundamente uma sequência de linhas, preservando a ordem.
func copyRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	dst := make([]Row, len(rows))
	for i, r := range rows {
		dst[i] = copyRow(r)
	}
	return dst
}
