package dyntable_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/raywall/dynamo-result-toolkit/dyntable"
)

func newTestDatabase(t *testing.T, client *MockDynamoClient) *dyntable.Database {
	t.Helper()
	db, err := dyntable.New(client, dyntable.Config{
		GlobalTableName:   "global-data-table",
		GlobalKeyColumn:   "data-id",
		GlobalValueColumn: "value",
	})
	require.NoError(t, err)
	return db
}

func TestQueryByHashKey(t *testing.T) {
	t.Parallel()

	client := &MockDynamoClient{}
	client.On("DescribeTable", mock.Anything, mock.Anything).
		Return(describeOut("id", nil), nil)
	client.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		return aws.ToString(input.TableName) == "users" &&
			input.IndexName == nil &&
			input.KeyConditionExpression != nil &&
			!aws.ToBool(input.ConsistentRead)
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			item(map[string]any{"id": "u1", "name": "Ada"}),
		},
	}, nil)

	table := newTestDatabase(t, client).Table("users")

	rs, err := table.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, rs.Exists())
	assert.Equal(t, "Ada", rs.First()["name"])
	client.AssertExpectations(t)
}

func TestQueryViaSecondaryIndex(t *testing.T) {
	t.Parallel()

	client := &MockDynamoClient{}
	client.On("DescribeTable", mock.Anything, mock.Anything).
		Return(describeOut("id", map[string]string{"email": "email-index"}), nil)
	client.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		return aws.ToString(input.IndexName) == "email-index"
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			item(map[string]any{"id": "u1", "email": "ada@example.com"}),
		},
	}, nil)

	table := newTestDatabase(t, client).Table("users")

	rs, err := table.Query(context.Background(), "email", "ada@example.com", dyntable.WithSecondaryIndex())
	require.NoError(t, err)
	assert.Equal(t, "u1", rs.First()["id"])
	client.AssertExpectations(t)
}

func TestQueryUsageErrors(t *testing.T) {
	t.Parallel()

	t.Run("index name without secondary index flag", func(t *testing.T) {
		client := &MockDynamoClient{}
		table := newTestDatabase(t, client).Table("users")

		_, err := table.Query(context.Background(), "email", "x", dyntable.WithIndexName("email-index"))
		assert.ErrorIs(t, err, dyntable.ErrIllegalIndexName)
		client.AssertNotCalled(t, "Query")
	})

	t.Run("nil equals value", func(t *testing.T) {
		client := &MockDynamoClient{}
		table := newTestDatabase(t, client).Table("users")

		_, err := table.Query(context.Background(), "id", nil)
		assert.ErrorIs(t, err, dyntable.ErrMissingValue)
	})

	t.Run("column is not a secondary index", func(t *testing.T) {
		client := &MockDynamoClient{}
		client.On("DescribeTable", mock.Anything, mock.Anything).
			Return(describeOut("id", map[string]string{"email": "email-index"}), nil)
		table := newTestDatabase(t, client).Table("users")

		_, err := table.Query(context.Background(), "nickname", "x", dyntable.WithSecondaryIndex())
		assert.ErrorIs(t, err, dyntable.ErrNotSecondaryIndex)
		client.AssertNotCalled(t, "Query")
	})
}

func TestExists(t *testing.T) {
	t.Parallel()

	client := &MockDynamoClient{}
	client.On("DescribeTable", mock.Anything, mock.Anything).
		Return(describeOut("id", nil), nil)
	client.On("Query", mock.Anything, mock.Anything).
		Return(&dynamodb.QueryOutput{}, nil)

	table := newTestDatabase(t, client).Table("users")

	found, err := table.Exists(context.Background(), "zz", "id")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestScanPaginatesUntilNoContinuationToken(t *testing.T) {
	t.Parallel()

	token1 := item(map[string]any{"id": "u1"})
	token2 := item(map[string]any{"id": "u2"})

	client := &MockDynamoClient{}
	client.On("Scan", mock.Anything, mock.MatchedBy(func(input *dynamodb.ScanInput) bool {
		return input.ExclusiveStartKey == nil
	})).Return(&dynamodb.ScanOutput{
		Items:            []map[string]types.AttributeValue{item(map[string]any{"id": "u1"})},
		LastEvaluatedKey: token1,
	}, nil).Once()
	client.On("Scan", mock.Anything, mock.MatchedBy(func(input *dynamodb.ScanInput) bool {
		return len(input.ExclusiveStartKey) > 0 && input.ExclusiveStartKey["id"].(*types.AttributeValueMemberS).Value == "u1"
	})).Return(&dynamodb.ScanOutput{
		Items:            []map[string]types.AttributeValue{item(map[string]any{"id": "u2"})},
		LastEvaluatedKey: token2,
	}, nil).Once()
	client.On("Scan", mock.Anything, mock.MatchedBy(func(input *dynamodb.ScanInput) bool {
		return len(input.ExclusiveStartKey) > 0 && input.ExclusiveStartKey["id"].(*types.AttributeValueMemberS).Value == "u2"
	})).Return(&dynamodb.ScanOutput{
		Items: []map[string]types.AttributeValue{item(map[string]any{"id": "u3"})},
	}, nil).Once()

	table := newTestDatabase(t, client).Table("users")

	rs, err := table.Scan(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, rs.Length(), "as três páginas são concatenadas em um único ResultSet")
	assert.Equal(t, "u1", rs.All()[0]["id"])
	assert.Equal(t, "u2", rs.All()[1]["id"])
	assert.Equal(t, "u3", rs.All()[2]["id"])
	client.AssertExpectations(t)
}

func TestScanPropagatesServiceError(t *testing.T) {
	t.Parallel()

	client := &MockDynamoClient{}
	client.On("Scan", mock.Anything, mock.Anything).
		Return(nil, errors.New("throttled"))

	table := newTestDatabase(t, client).Table("users")

	_, err := table.Scan(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestPut(t *testing.T) {
	t.Parallel()

	client := &MockDynamoClient{}
	client.On("PutItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.PutItemInput) bool {
		return aws.ToString(input.TableName) == "users" &&
			input.Item["id"].(*types.AttributeValueMemberS).Value == "u9"
	})).Return(&dynamodb.PutItemOutput{}, nil)

	table := newTestDatabase(t, client).Table("users")

	err := table.Put(context.Background(), map[string]any{"id": "u9", "name": "Zoe"})
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("builds a partial SET expression keyed by the hash key", func(t *testing.T) {
		client := &MockDynamoClient{}
		client.On("DescribeTable", mock.Anything, mock.Anything).
			Return(describeOut("id", nil), nil)
		client.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			return aws.ToString(input.TableName) == "users" &&
				strings.HasPrefix(aws.ToString(input.UpdateExpression), "SET ") &&
				input.Key["id"].(*types.AttributeValueMemberS).Value == "u1"
		})).Return(&dynamodb.UpdateItemOutput{}, nil)

		table := newTestDatabase(t, client).Table("users")

		err := table.Update(context.Background(), "id", "u1", map[string]any{"name": "Ada L."})
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("empty patch is a silent no-op", func(t *testing.T) {
		client := &MockDynamoClient{}
		table := newTestDatabase(t, client).Table("users")

		require.NoError(t, table.Update(context.Background(), "id", "u1", nil))
		client.AssertNotCalled(t, "UpdateItem")
		client.AssertNotCalled(t, "DescribeTable")
	})

	t.Run("non-hash-key update resolves the item first", func(t *testing.T) {
		client := &MockDynamoClient{}
		client.On("DescribeTable", mock.Anything, mock.Anything).
			Return(describeOut("id", map[string]string{"email": "email-index"}), nil)
		client.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return aws.ToString(input.IndexName) == "email-index"
		})).Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{
				item(map[string]any{"id": "u7", "email": "zoe@example.com"}),
			},
		}, nil)
		client.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			return input.Key["id"].(*types.AttributeValueMemberS).Value == "u7"
		})).Return(&dynamodb.UpdateItemOutput{}, nil)

		table := newTestDatabase(t, client).Table("users")

		err := table.Update(context.Background(), "email", "zoe@example.com", map[string]any{"name": "Zoe"})
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("non-hash-key update without a match fails", func(t *testing.T) {
		client := &MockDynamoClient{}
		client.On("DescribeTable", mock.Anything, mock.Anything).
			Return(describeOut("id", map[string]string{"email": "email-index"}), nil)
		client.On("Query", mock.Anything, mock.Anything).
			Return(&dynamodb.QueryOutput{}, nil)

		table := newTestDatabase(t, client).Table("users")

		err := table.Update(context.Background(), "email", "ghost@example.com", map[string]any{"name": "x"})
		assert.ErrorIs(t, err, dyntable.ErrNoMatch)
	})
}

func TestIncrementDecrement(t *testing.T) {
	t.Parallel()

	t.Run("increment emits an additive SET", func(t *testing.T) {
		client := &MockDynamoClient{}
		client.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			return strings.Contains(aws.ToString(input.UpdateExpression), " + ")
		})).Return(&dynamodb.UpdateItemOutput{}, nil)

		table := newTestDatabase(t, client).Table("counters")

		require.NoError(t, table.Increment(context.Background(), "data-id", "page-views", "value", 1))
		client.AssertExpectations(t)
	})

	t.Run("decrement emits a subtractive SET", func(t *testing.T) {
		client := &MockDynamoClient{}
		client.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			return strings.Contains(aws.ToString(input.UpdateExpression), " - ")
		})).Return(&dynamodb.UpdateItemOutput{}, nil)

		table := newTestDatabase(t, client).Table("counters")

		require.NoError(t, table.Decrement(context.Background(), "data-id", "page-views", "value", 2))
		client.AssertExpectations(t)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	client := &MockDynamoClient{}
	client.On("DeleteItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.DeleteItemInput) bool {
		return aws.ToString(input.TableName) == "users" &&
			input.Key["id"].(*types.AttributeValueMemberS).Value == "u1"
	})).Return(&dynamodb.DeleteItemOutput{}, nil)

	table := newTestDatabase(t, client).Table("users")

	require.NoError(t, table.Delete(context.Background(), "id", "u1"))
	client.AssertExpectations(t)
}

func TestHashKeyAndGSI(t *testing.T) {
	t.Parallel()

	client := &MockDynamoClient{}
	client.On("DescribeTable", mock.Anything, mock.Anything).
		Return(describeOut("id", map[string]string{"email": "email-index"}), nil)

	table := newTestDatabase(t, client).Table("users")

	hashKey, err := table.HashKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "id", hashKey)

	gsi, err := table.GSI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"email": "email-index"}, gsi)
}
