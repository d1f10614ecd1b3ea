// dyntable/types.go
package dyntable

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/raywall/dynamo-result-toolkit/resultset"
)

var (
	// ErrMissingValue é retornado quando uma consulta é emitida sem o valor
	// de comparação.
	ErrMissingValue = errors.New("dyntable: equals value must not be nil")

	// ErrIllegalIndexName é retornado quando um nome de índice secundário é
	// fornecido sem declarar o uso de índice secundário.
	ErrIllegalIndexName = errors.New("dyntable: secondary index name provided unexpectedly")

	// ErrNotSecondaryIndex é retornado quando a coluna consultada não é a
	// chave de nenhum índice secundário global da tabela.
	ErrNotSecondaryIndex = errors.New("dyntable: key is not a secondary index")

	// ErrNoMatch é retornado quando um update por coluna não-chave não
	// encontra o item a atualizar.
	ErrNoMatch = errors.New("dyntable: no item matches the update lookup")
)

// DynamoDBClient abstrai o subconjunto do cliente DynamoDB usado pelo
// toolkit, permitindo mocks nos testes.
type DynamoDBClient interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// attr converte qualquer valor para types.AttributeValue.
func attr(v any) types.AttributeValue {
	if v == nil {
		return &types.AttributeValueMemberNULL{Value: true}
	}
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return &types.AttributeValueMemberNULL{Value: true}
	}
	return av
}

// unmarshalRows decodifica o payload bruto de Items em linhas dinâmicas.
func unmarshalRows(items []map[string]types.AttributeValue) ([]resultset.Row, error) {
	var rows []resultset.Row
	if err := attributevalue.UnmarshalListOfMaps(items, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
