package dynamox

import (
	"context"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// EndpointEnvVar is the name of the environment variable that contains the
// URL of the DynamoDB endpoint used by tests, such as a DynamoDB Local
// instance.
const EndpointEnvVar = "DYNAMODB_ENDPOINT"

// NewTestClient returns a new DynamoDB client for use in a test.
//
// The test is skipped if the endpoint environment variable is not set.
func NewTestClient(t testing.TB) *dynamodb.Client {
	endpoint := os.Getenv(EndpointEnvVar)
	if endpoint == "" {
		t.Skipf("%s is not set", EndpointEnvVar)
	}

	cfg, err := config.LoadDefaultConfig(
		context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("id", "secret", ""),
		),
		config.WithRetryer(
			func() aws.Retryer {
				return aws.NopRetryer{}
			},
		),
	)
	if err != nil {
		t.Fatal(err)
	}

	return dynamodb.NewFromConfig(
		cfg,
		func(opts *dynamodb.Options) {
			opts.BaseEndpoint = aws.String(endpoint)
		},
	)
}
