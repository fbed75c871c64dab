package dynamojournal

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dogmatiq/searchkit/driver/aws/internal/awsx"
	"github.com/dogmatiq/searchkit/driver/aws/internal/dynamox"
	"github.com/dogmatiq/searchkit/internal/syncx"
	"github.com/dogmatiq/searchkit/journal"
)

// store is an implementation of [journal.BinaryStore] that persists to a
// DynamoDB table.
type store struct {
	Client    *dynamodb.Client
	Table     string
	OnRequest func(any) []func(*dynamodb.Options)

	create syncx.SucceedOnce
}

// NewBinaryStore returns a new [journal.BinaryStore] that uses the given
// DynamoDB client to store journal records in the given table.
//
// The table is created the first time a journal is opened, if it does not
// already exist.
func NewBinaryStore(
	client *dynamodb.Client,
	table string,
	options ...Option,
) journal.BinaryStore {
	s := &store{
		Client: client,
		Table:  table,
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// Option is a functional option that changes the behavior of [NewBinaryStore].
type Option func(*store)

// WithRequestHook is an [Option] that configures fn as a pre-request hook.
//
// Before each DynamoDB API request, fn is passed a pointer to the input struct,
// e.g. [dynamodb.GetItemInput], which it may modify in-place. It may be called
// with any DynamoDB request type. The types of requests used may change in any
// version without notice.
//
// Any functions returned by fn will be applied to the request's options before
// the request is sent.
func WithRequestHook(fn func(any) []func(*dynamodb.Options)) Option {
	return func(s *store) {
		s.OnRequest = fn
	}
}

// Open returns the journal with the given name.
func (s *store) Open(ctx context.Context, name string) (journal.BinaryJournal, error) {
	if s.Table == "" {
		panic("table name must not be empty")
	}

	if err := s.createTable(ctx); err != nil {
		return nil, err
	}

	j := &journ{
		Client:    s.Client,
		Table:     s.Table,
		OnRequest: s.OnRequest,
		name:      name,
		journal:   &types.AttributeValueMemberS{Value: name},
	}

	if err := j.createMetaData(ctx); err != nil {
		return nil, err
	}

	return j, nil
}

// createTable creates the DynamoDB table if it has not already been created by
// this store.
func (s *store) createTable(ctx context.Context) error {
	return s.create.Do(
		func() error {
			return dynamox.CreateTableIfNotExists(
				ctx,
				s.Client,
				s.Table,
				s.OnRequest,
				keySchema...,
			)
		},
	)
}

// createMetaData creates the "meta-data" item for the journal, if it does not
// already exist.
func (j *journ) createMetaData(ctx context.Context) error {
	zero := dynamox.Uint64(0)

	if _, err := awsx.Do(
		ctx,
		j.Client.PutItem,
		j.OnRequest,
		&dynamodb.PutItemInput{
			TableName: aws.String(j.Table),
			Item: map[string]types.AttributeValue{
				journalAttr:  j.journal,
				positionAttr: metaDataPosition,
				beginAttr:    zero,
				endAttr:      zero,
			},
			ConditionExpression: aws.String(`attribute_not_exists(#J)`),
			ExpressionAttributeNames: map[string]string{
				"#J": journalAttr,
			},
		},
	); err != nil && !dynamox.Is(err, dynamox.CodeConditionalCheckFailed) {
		return fmt.Errorf("unable to create journal meta-data: %w", err)
	}

	return nil
}
