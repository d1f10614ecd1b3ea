// dyntable/options.go
package dyntable

type queryOptions struct {
	secondaryIndex bool
	indexName      string
	consistentRead bool
}

// QueryOption configura uma consulta ou scan.
type QueryOption func(*queryOptions)

// WithSecondaryIndex declara que a coluna consultada é a chave de um índice
// secundário global.
func WithSecondaryIndex() QueryOption {
	return func(o *queryOptions) {
		o.secondaryIndex = true
	}
}

// WithIndexName fixa o nome do índice secundário usado, em vez do nome
// resolvido pelo schema da tabela. Exige WithSecondaryIndex.
func WithIndexName(name string) QueryOption {
	return func(o *queryOptions) {
		o.indexName = name
	}
}

// WithConsistentRead pede leitura fortemente consistente.
func WithConsistentRead() QueryOption {
	return func(o *queryOptions) {
		o.consistentRead = true
	}
}

func applyQueryOptions(opts []QueryOption) queryOptions {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
