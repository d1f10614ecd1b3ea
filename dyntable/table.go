// dyntable/table.go
package dyntable

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/raywall/dynamo-result-toolkit/resultset"
)

// Table é o handle fino de uma tabela do DynamoDB: identidade (nome) mais a
// referência do Database. Não guarda estado nem cache de schema.
type Table struct {
	name string
	db   *Database
}

// Name retorna o nome da tabela.
func (t *Table) Name() string {
	return t.name
}

// HashKey resolve o nome da chave de partição via DescribeTable.
func (t *Table) HashKey(ctx context.Context) (string, error) {
	out, err := t.db.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(t.name),
	})
	if err != nil {
		return "", fmt.Errorf("dyntable: describe table %s: %w", t.name, err)
	}
	for _, element := range out.Table.KeySchema {
		if element.KeyType == types.KeyTypeHash {
			return aws.ToString(element.AttributeName), nil
		}
	}
	return "", fmt.Errorf("dyntable: table %s has no hash key", t.name)
}

// GSI resolve o mapa de chave de índice secundário global para nome de
// índice.
func (t *Table) GSI(ctx context.Context) (map[string]string, error) {
	out, err := t.db.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(t.name),
	})
	if err != nil {
		return nil, fmt.Errorf("dyntable: describe table %s: %w", t.name, err)
	}

	gsi := make(map[string]string, len(out.Table.GlobalSecondaryIndexes))
	for _, index := range out.Table.GlobalSecondaryIndexes {
		for _, element := range index.KeySchema {
			if element.KeyType == types.KeyTypeHash {
				gsi[aws.ToString(element.AttributeName)] = aws.ToString(index.IndexName)
			}
		}
	}
	return gsi, nil
}

// Query emite uma consulta pontual por igualdade na coluna indicada. Com a
// coluna vazia, consulta a chave de partição. Consultas por outra coluna
// exigem WithSecondaryIndex e um índice secundário global declarado no
// schema da tabela.
func (t *Table) Query(ctx context.Context, key string, equals any, opts ...QueryOption) (*resultset.ResultSet, error) {
	o := applyQueryOptions(opts)
	if equals == nil {
		return nil, ErrMissingValue
	}
	if o.indexName != "" && !o.secondaryIndex {
		return nil, ErrIllegalIndexName
	}

	hashKey, err := t.HashKey(ctx)
	if err != nil {
		return nil, err
	}
	if key == "" {
		key = hashKey
	}

	input := &dynamodb.QueryInput{
		TableName:      aws.String(t.name),
		ConsistentRead: aws.Bool(o.consistentRead),
	}

	if o.secondaryIndex && key != hashKey {
		gsi, err := t.GSI(ctx)
		if err != nil {
			return nil, err
		}
		indexName, ok := gsi[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q on table %s", ErrNotSecondaryIndex, key, t.name)
		}
		if o.indexName != "" {
			indexName = o.indexName
		}
		input.IndexName = aws.String(indexName)
	}

	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.KeyEqual(expression.Key(key), expression.Value(equals))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("dyntable: build key condition: %w", err)
	}
	input.KeyConditionExpression = expr.KeyCondition()
	input.ExpressionAttributeNames = expr.Names()
	input.ExpressionAttributeValues = expr.Values()

	out, err := t.db.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("dyntable: query %s: %w", t.name, err)
	}
	t.db.count("query", t.name)

	rows, err := unmarshalRows(out.Items)
	if err != nil {
		return nil, fmt.Errorf("dyntable: unmarshal query result: %w", err)
	}
	return resultset.New(rows, t), nil
}

// Get consulta a chave de partição da tabela.
func (t *Table) Get(ctx context.Context, equals any, opts ...QueryOption) (*resultset.ResultSet, error) {
	return t.Query(ctx, "", equals, opts...)
}

// Exists informa se existe alguma linha com o valor na coluna indicada.
func (t *Table) Exists(ctx context.Context, value any, atColumn string, opts ...QueryOption) (bool, error) {
	rs, err := t.Query(ctx, atColumn, value, opts...)
	if err != nil {
		return false, err
	}
	return rs.Exists(), nil
}

// Scan varre a tabela inteira em uma única chamada bloqueante, paginando
// internamente via ExclusiveStartKey até o serviço não devolver mais token
// de continuação. As páginas são concatenadas na ordem recebida.
func (t *Table) Scan(ctx context.Context, opts ...QueryOption) (*resultset.ResultSet, error) {
	o := applyQueryOptions(opts)

	var rows []resultset.Row
	var startKey map[string]types.AttributeValue
	pages := 0

	for {
		out, err := t.db.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(t.name),
			ConsistentRead:    aws.Bool(o.consistentRead),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("dyntable: scan %s: %w", t.name, err)
		}
		pages++

		page, err := unmarshalRows(out.Items)
		if err != nil {
			return nil, fmt.Errorf("dyntable: unmarshal scan page: %w", err)
		}
		rows = append(rows, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	t.db.count("scan", t.name)
	_ = t.db.metrics.Histogram("dyntable.scan.pages", float64(pages), []string{"table:" + t.name})
	t.db.logger.Debug().Str("table", t.name).Int("pages", pages).Int("rows", len(rows)).Msg("scan concluído")

	return resultset.New(rows, t), nil
}

// Put persiste o item (upsert).
func (t *Table) Put(ctx context.Context, item resultset.Row) error {
	av, err := attributevalue.MarshalMap(map[string]any(item))
	if err != nil {
		return fmt.Errorf("dyntable: marshal item: %w", err)
	}

	_, err = t.db.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.name),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("dyntable: put %s: %w", t.name, err)
	}
	t.db.count("put", t.name)
	return nil
}

// Update aplica um patch parcial de atributos (SET coluna a coluna) sem
// exigir os demais atributos do item. Um patch vazio é um no-op silencioso.
// Quando `where` não é a chave de partição, o item é resolvido primeiro com
// uma consulta por índice secundário.
func (t *Table) Update(ctx context.Context, where string, equals any, patch map[string]any) error {
	if len(patch) == 0 {
		return nil
	}

	hashKey, err := t.HashKey(ctx)
	if err != nil {
		return err
	}

	keyValue := equals
	if where != hashKey {
		rs, err := t.Query(ctx, where, equals, WithSecondaryIndex())
		if err != nil {
			return err
		}
		v, ok := rs.First()[hashKey]
		if !ok {
			return fmt.Errorf("%w: %s=%v on table %s", ErrNoMatch, where, equals, t.name)
		}
		keyValue = v
	}

	update := expression.UpdateBuilder{}
	for column, value := range patch {
		update = update.Set(expression.Name(column), expression.Value(value))
	}
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("dyntable: build update expression: %w", err)
	}

	_, err = t.db.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.name),
		Key:                       map[string]types.AttributeValue{hashKey: attr(keyValue)},
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("dyntable: update %s: %w", t.name, err)
	}
	t.db.count("update", t.name)
	return nil
}

// relativeUpdate emite SET #col = #col ± :by sobre o item indicado.
func (t *Table) relativeUpdate(ctx context.Context, where string, equals any, column string, by int, plus bool) error {
	operand := expression.Name(column).Plus(expression.Value(by))
	if !plus {
		operand = expression.Name(column).Minus(expression.Value(by))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(expression.Set(expression.Name(column), operand)).
		Build()
	if err != nil {
		return fmt.Errorf("dyntable: build relative update: %w", err)
	}

	_, err = t.db.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.name),
		Key:                       map[string]types.AttributeValue{where: attr(equals)},
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("dyntable: relative update %s: %w", t.name, err)
	}
	t.db.count("update", t.name)
	return nil
}

// Increment soma `by` ao atributo numérico do item indicado.
func (t *Table) Increment(ctx context.Context, where string, equals any, valueKey string, by int) error {
	return t.relativeUpdate(ctx, where, equals, valueKey, by, true)
}

// Decrement subtrai `by` do atributo numérico do item indicado.
func (t *Table) Decrement(ctx context.Context, where string, equals any, valueKey string, by int) error {
	return t.relativeUpdate(ctx, where, equals, valueKey, by, false)
}

// Delete remove o item pela chave indicada.
func (t *Table) Delete(ctx context.Context, where string, equals any) error {
	_, err := t.db.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.name),
		Key:       map[string]types.AttributeValue{where: attr(equals)},
	})
	if err != nil {
		return fmt.Errorf("dyntable: delete %s: %w", t.name, err)
	}
	t.db.count("delete", t.name)
	return nil
}
