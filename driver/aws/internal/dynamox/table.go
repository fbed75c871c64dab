package dynamox

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dogmatiq/searchkit/driver/aws/internal/awsx"
)

// KeyAttr describes an attribute that forms part of a table's primary key.
type KeyAttr struct {
	Name    string
	Type    types.ScalarAttributeType
	KeyType types.KeyType
}

// CreateTableIfNotExists creates a DynamoDB table with the given key
// attributes if it does not already exist, then waits for it to become
// active.
func CreateTableIfNotExists(
	ctx context.Context,
	client *dynamodb.Client,
	table string,
	m func(any) []func(*dynamodb.Options),
	keys ...KeyAttr,
) error {
	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(table),
		BillingMode: types.BillingModePayPerRequest,
	}

	for _, k := range keys {
		in.AttributeDefinitions = append(
			in.AttributeDefinitions,
			types.AttributeDefinition{
				AttributeName: aws.String(k.Name),
				AttributeType: k.Type,
			},
		)
		in.KeySchema = append(
			in.KeySchema,
			types.KeySchemaElement{
				AttributeName: aws.String(k.Name),
				KeyType:       k.KeyType,
			},
		)
	}

	if _, err := awsx.Do(ctx, client.CreateTable, m, in); err != nil {
		if !Is(err, CodeResourceInUse) {
			return fmt.Errorf("unable to create DynamoDB table: %w", err)
		}
	}

	if err := dynamodb.
		NewTableExistsWaiter(client).
		Wait(
			ctx,
			&dynamodb.DescribeTableInput{TableName: aws.String(table)},
			5*time.Minute,
		); err != nil {
		return fmt.Errorf("unable to wait for DynamoDB table to become active: %w", err)
	}

	return nil
}

// DeleteTableIfExists deletes a DynamoDB table if it exists.
func DeleteTableIfExists(
	ctx context.Context,
	client *dynamodb.Client,
	table string,
	m func(any) []func(*dynamodb.Options),
) error {
	if _, err := awsx.Do(
		ctx,
		client.DeleteTable,
		m,
		&dynamodb.DeleteTableInput{
			TableName: aws.String(table),
		},
	); err != nil && !Is(err, CodeResourceNotFound) {
		return err
	}

	return nil
}
