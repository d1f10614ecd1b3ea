// dyntable/keyvalue.go
package dyntable

import (
	"context"
	"fmt"
)

// KeyValueTable especializa Table para tabelas de uma coluna de chave e uma
// coluna de valor (ex: a tabela global de configuração).
type KeyValueTable struct {
	*Table

	keyColumn   string
	valueColumn string
}

// Value busca o valor armazenado para a chave, ou nil quando a chave não
// existe.
func (kv *KeyValueTable) Value(ctx context.Context, forKey any) (any, error) {
	rs, err := kv.Query(ctx, kv.keyColumn, forKey)
	if err != nil {
		return nil, err
	}
	if !rs.Exists() {
		return nil, nil
	}

	v, ok := rs.First()[kv.valueColumn]
	if !ok {
		return nil, fmt.Errorf("dyntable: key %v has no column %q on table %s", forKey, kv.valueColumn, kv.name)
	}
	return v, nil
}

// Set grava o valor para a chave via patch parcial, preservando os demais
// atributos do item.
func (kv *KeyValueTable) Set(ctx context.Context, forKey, newValue any) error {
	return kv.Update(ctx, kv.keyColumn, forKey, map[string]any{
		kv.valueColumn: newValue,
	})
}
