// resultset/predicate.go
package resultset

import (
	"fmt"
	"reflect"
	"strings"
)

// FilterType identifica o operador de comparação de um Filter. O conjunto é
// fechado: todo operador passa pelo mesmo despacho em eval, que casa sobre o
// tipo dinâmico dos operandos e falha explicitamente em combinações não
// suportadas.
type FilterType int

const (
	// Equals mantém linhas cujo atributo é igual ao literal.
	Equals FilterType = iota
	// EqualsFold compara strings ignorando maiúsculas e minúsculas.
	EqualsFold
	// NotEqual mantém linhas cujo atributo difere do literal.
	NotEqual
	// Contains mantém linhas cujo atributo (string, lista ou mapa) contém o literal.
	Contains
	// NotContain é a negação de Contains.
	NotContain
	// GreaterThan mantém linhas cujo atributo é maior que o literal.
	GreaterThan
	// GreaterThanEqual mantém linhas cujo atributo é maior ou igual ao literal.
	GreaterThanEqual
	// LessThan mantém linhas cujo atributo é menor que o literal.
	LessThan
	// LessThanEqual mantém linhas cujo atributo é menor ou igual ao literal.
	LessThanEqual
	// In mantém linhas cujo atributo é membro do literal (string, lista ou mapa).
	In
	// NotIn é a negação de In.
	NotIn
)

var filterTypeNames = map[FilterType]string{
	Equals:           "EQUALS",
	EqualsFold:       "EQUALS_NON_CS",
	NotEqual:         "NOT_EQUAL",
	Contains:         "CONTAINS",
	NotContain:       "NOT_CONTAIN",
	GreaterThan:      "GREATER_THAN",
	GreaterThanEqual: "GREATER_THAN_EQUAL",
	LessThan:         "LESS_THAN",
	LessThanEqual:    "LESS_THAN_EQUAL",
	In:               "IN",
	NotIn:            "NOT_IN",
}

func (t FilterType) String() string {
	if name, ok := filterTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FilterType(%d)", int(t))
}

// eval aplica o operador sobre o valor do atributo (x) e o literal (y).
// Predicados são puros: sem estado e sem efeitos colaterais.
func (t FilterType) eval(x, y any) (bool, error) {
	switch t {
	case Equals:
		return equalValues(x, y), nil
	case EqualsFold:
		xs, xok := x.(string)
		ys, yok := y.(string)
		if !xok || !yok {
			return false, fmt.Errorf("%w: %s expects strings, got %T and %T", ErrIncompatibleTypes, t, x, y)
		}
		return strings.EqualFold(xs, ys), nil
	case NotEqual:
		return !equalValues(x, y), nil
	case Contains:
		return containsValue(x, y)
	case NotContain:
		ok, err := containsValue(x, y)
		return !ok, err
	case GreaterThan, GreaterThanEqual, LessThan, LessThanEqual:
		cmp, err := compareValues(x, y)
		if err != nil {
			return false, fmt.Errorf("%s: %w", t, err)
		}
		switch t {
		case GreaterThan:
			return cmp > 0, nil
		case GreaterThanEqual:
			return cmp >= 0, nil
		case LessThan:
			return cmp < 0, nil
		default:
			return cmp <= 0, nil
		}
	case In:
		return containsValue(y, x)
	case NotIn:
		ok, err := containsValue(y, x)
		return !ok, err
	default:
		return false, fmt.Errorf("%w: unknown filter type %d", ErrUsage, int(t))
	}
}

// asNumber normaliza qualquer tipo numérico para float64. Itens decodificados
// pelo attributevalue chegam como float64, mas literais fornecidos pelo
// chamador podem ser int, int64 etc.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// equalValues compara dois valores dinâmicos, normalizando numéricos para
// que 1 e float64(1) sejam considerados iguais.
func equalValues(x, y any) bool {
	if xn, ok := asNumber(x); ok {
		yn, ok := asNumber(y)
		return ok && xn == yn
	}
	return reflect.DeepEqual(x, y)
}

// compareValues impõe a ordenação natural de numéricos e strings.
// Valores nil ordenam antes de qualquer outro (usado pelo Sort em linhas
// sem o atributo).
func compareValues(x, y any) (int, error) {
	if x == nil || y == nil {
		switch {
		case x == nil && y == nil:
			return 0, nil
		case x == nil:
			return -1, nil
		default:
			return 1, nil
		}
	}

	if xn, ok := asNumber(x); ok {
		yn, ok := asNumber(y)
		if !ok {
			return 0, fmt.Errorf("%w: cannot order %T against %T", ErrIncompatibleTypes, x, y)
		}
		switch {
		case xn < yn:
			return -1, nil
		case xn > yn:
			return 1, nil
		default:
			return 0, nil
		}
	}

	if xs, ok := x.(string); ok {
		ys, ok := y.(string)
		if !ok {
			return 0, fmt.Errorf("%w: cannot order %T against %T", ErrIncompatibleTypes, x, y)
		}
		return strings.Compare(xs, ys), nil
	}

	return 0, fmt.Errorf("%w: type %T has no natural ordering", ErrIncompatibleTypes, x)
}

// containsValue implementa a semântica "y in x" do operador Contains:
// o atributo é o continente e o literal o membro. Strings testam substring,
// listas testam pertencimento de elemento e mapas testam presença de chave.
func containsValue(container, member any) (bool, error) {
	switch c := container.(type) {
	case string:
		m, ok := member.(string)
		if !ok {
			return false, fmt.Errorf("%w: cannot search %T inside string", ErrIncompatibleTypes, member)
		}
		return strings.Contains(c, m), nil
	case []any:
		for _, item := range c {
			if equalValues(item, member) {
				return true, nil
			}
		}
		return false, nil
	case map[string]any:
		key, ok := member.(string)
		if !ok {
			return false, fmt.Errorf("%w: map membership needs a string key, got %T", ErrIncompatibleTypes, member)
		}
		_, found := c[key]
		return found, nil
	default:
		return false, fmt.Errorf("%w: type %T is not a container", ErrIncompatibleTypes, container)
	}
}
