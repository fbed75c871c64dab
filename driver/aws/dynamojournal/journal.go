package dynamojournal

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dogmatiq/searchkit/driver/aws/internal/awsx"
	"github.com/dogmatiq/searchkit/driver/aws/internal/dynamox"
	"github.com/dogmatiq/searchkit/internal/errorx"
	"github.com/dogmatiq/searchkit/journal"
)

// journ is an implementation of [journal.BinaryJournal] that persists to a
// DynamoDB table.
//
// Each record is stored as a separate item, so each probe of a binary search
// is a single GetItem request. The bounds are stored on a separate
// "meta-data" item.
type journ struct {
	Client    *dynamodb.Client
	Table     string
	OnRequest func(any) []func(*dynamodb.Options)

	name    string
	journal *types.AttributeValueMemberS
}

func (j *journ) Name() string {
	return j.name
}

func (j *journ) Bounds(ctx context.Context) (journal.Interval, error) {
	out, err := awsx.Do(
		ctx,
		j.Client.GetItem,
		j.OnRequest,
		&dynamodb.GetItemInput{
			TableName:            aws.String(j.Table),
			Key:                  j.key(metaDataPosition),
			ConsistentRead:       aws.Bool(true),
			ProjectionExpression: aws.String(`#B, #E`),
			ExpressionAttributeNames: map[string]string{
				"#B": beginAttr,
				"#E": endAttr,
			},
		},
	)
	if err != nil {
		return journal.Interval{}, fmt.Errorf("unable to load journal bounds: %w", err)
	}

	if out.Item == nil {
		return journal.Interval{}, nil
	}

	begin, err := dynamox.AttrAsUint64(out.Item, beginAttr)
	if err != nil {
		return journal.Interval{}, err
	}

	end, err := dynamox.AttrAsUint64(out.Item, endAttr)
	if err != nil {
		return journal.Interval{}, err
	}

	return journal.Interval{
		Begin: journal.Position(begin),
		End:   journal.Position(end),
	}, nil
}

func (j *journ) Get(ctx context.Context, pos journal.Position) ([]byte, error) {
	out, err := awsx.Do(
		ctx,
		j.Client.GetItem,
		j.OnRequest,
		&dynamodb.GetItemInput{
			TableName:            aws.String(j.Table),
			Key:                  j.key(dynamox.Uint64(uint64(pos))),
			ConsistentRead:       aws.Bool(true),
			ProjectionExpression: aws.String(`#R`),
			ExpressionAttributeNames: map[string]string{
				"#R": recordAttr,
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("unable to get journal record: %w", err)
	}

	if out.Item == nil {
		return nil, journal.RecordNotFoundError{Position: pos}
	}

	rec, err := dynamox.AttrAs[*types.AttributeValueMemberB](out.Item, recordAttr)
	if err != nil {
		return nil, err
	}

	return rec.Value, nil
}

func (j *journ) Range(
	ctx context.Context,
	pos journal.Position,
	fn journal.BinaryRangeFunc,
) error {
	bounds, err := j.Bounds(ctx)
	if err != nil {
		return err
	}

	if pos < bounds.Begin || pos > bounds.End {
		return journal.RecordNotFoundError{Position: pos}
	}

	var (
		expectPos = pos
		fnErr     error
	)

	if err := dynamox.Range(
		ctx,
		j.Client,
		j.OnRequest,
		&dynamodb.QueryInput{
			TableName:              aws.String(j.Table),
			KeyConditionExpression: aws.String(`#J = :J AND #P >= :P`),
			ConsistentRead:         aws.Bool(true),
			ProjectionExpression:   aws.String(`#P, #R`),
			ExpressionAttributeNames: map[string]string{
				"#J": journalAttr,
				"#P": positionAttr,
				"#R": recordAttr,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":J": j.journal,
				":P": dynamox.Uint64(uint64(pos)),
			},
		},
		func(ctx context.Context, item map[string]types.AttributeValue) (bool, error) {
			p, err := dynamox.AttrAsUint64(item, positionAttr)
			if err != nil {
				return false, err
			}

			// A gap means the journal was truncated after the bounds were read.
			if journal.Position(p) != expectPos {
				fnErr = journal.RecordNotFoundError{Position: expectPos}
				return false, nil
			}

			expectPos++

			rec, err := dynamox.AttrAs[*types.AttributeValueMemberB](item, recordAttr)
			if err != nil {
				return false, err
			}

			ok, err := fn(ctx, journal.Position(p), rec.Value)
			fnErr = err
			return ok && err == nil, nil
		},
	); err != nil {
		return fmt.Errorf("unable to range over journal records: %w", err)
	}

	return fnErr
}

func (j *journ) Append(ctx context.Context, pos journal.Position, rec []byte) error {
	position := dynamox.Uint64(uint64(pos))

	if _, err := awsx.Do(
		ctx,
		j.Client.TransactWriteItems,
		j.OnRequest,
		&dynamodb.TransactWriteItemsInput{
			TransactItems: []types.TransactWriteItem{
				{
					// Advance the end of the journal, failing if pos is not
					// the current end.
					Update: &types.Update{
						TableName:           aws.String(j.Table),
						Key:                 j.key(metaDataPosition),
						UpdateExpression:    aws.String(`SET #E = :N`),
						ConditionExpression: aws.String(`#E = :P`),
						ExpressionAttributeNames: map[string]string{
							"#E": endAttr,
						},
						ExpressionAttributeValues: map[string]types.AttributeValue{
							":P": position,
							":N": dynamox.Uint64(uint64(pos + 1)),
						},
					},
				},
				{
					Put: &types.Put{
						TableName: aws.String(j.Table),
						Item: map[string]types.AttributeValue{
							journalAttr:  j.journal,
							positionAttr: position,
							recordAttr:   &types.AttributeValueMemberB{Value: rec},
						},
						ConditionExpression: aws.String(`attribute_not_exists(#J)`),
						ExpressionAttributeNames: map[string]string{
							"#J": journalAttr,
						},
					},
				},
			},
		},
	); err != nil {
		if dynamox.IsTransactionConflict(err) {
			return journal.ErrConflict
		}
		return fmt.Errorf("unable to append journal record: %w", err)
	}

	return nil
}

func (j *journ) Truncate(ctx context.Context, pos journal.Position) (err error) {
	defer errorx.Wrap(&err, "unable to truncate journal")

	bounds, err := j.Bounds(ctx)
	if err != nil {
		return err
	}

	if pos <= bounds.Begin {
		return nil
	}

	// The beginning of the journal is advanced before any records are deleted,
	// so the bounds never include a position whose record is missing. Records
	// left behind by a partial failure are outside the bounds.
	if _, err := awsx.Do(
		ctx,
		j.Client.UpdateItem,
		j.OnRequest,
		&dynamodb.UpdateItemInput{
			TableName:           aws.String(j.Table),
			Key:                 j.key(metaDataPosition),
			UpdateExpression:    aws.String(`SET #B = :B`),
			ConditionExpression: aws.String(`#B < :B`),
			ExpressionAttributeNames: map[string]string{
				"#B": beginAttr,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":B": dynamox.Uint64(uint64(pos)),
			},
		},
	); err != nil && !dynamox.Is(err, dynamox.CodeConditionalCheckFailed) {
		return fmt.Errorf("unable to advance journal bounds: %w", err)
	}

	for p := bounds.Begin; p < pos; p++ {
		if _, err := awsx.Do(
			ctx,
			j.Client.DeleteItem,
			j.OnRequest,
			&dynamodb.DeleteItemInput{
				TableName: aws.String(j.Table),
				Key:       j.key(dynamox.Uint64(uint64(p))),
			},
		); err != nil {
			return fmt.Errorf("unable to delete record at position %d: %w", p, err)
		}
	}

	return nil
}

func (j *journ) Close() error {
	return nil
}

// key returns the primary key of the item at the given position.
func (j *journ) key(pos *types.AttributeValueMemberN) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		journalAttr:  j.journal,
		positionAttr: pos,
	}
}
