package dynamox

import (
	"errors"
	"slices"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

const (
	// CodeConditionalCheckFailed is the error code returned when the condition
	// expression of a write request is not satisfied.
	CodeConditionalCheckFailed = "ConditionalCheckFailedException"

	// CodeResourceInUse is the error code returned when creating a table that
	// already exists.
	CodeResourceInUse = "ResourceInUseException"

	// CodeResourceNotFound is the error code returned when operating on a table
	// that does not exist.
	CodeResourceNotFound = "ResourceNotFoundException"
)

// Is returns true if err is a DynamoDB API error with one of the given codes.
func Is(err error, codes ...string) bool {
	var e smithy.APIError
	return errors.As(err, &e) && slices.Contains(codes, e.ErrorCode())
}

// IsTransactionConflict returns true if err indicates that a transaction was
// canceled because the condition expression of at least one of its items was
// not satisfied.
func IsTransactionConflict(err error) bool {
	var e *types.TransactionCanceledException
	if !errors.As(err, &e) {
		return false
	}

	for _, r := range e.CancellationReasons {
		if r.Code != nil && *r.Code == "ConditionalCheckFailed" {
			return true
		}
	}

	return false
}
