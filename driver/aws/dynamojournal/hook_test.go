package dynamojournal_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	. "github.com/dogmatiq/searchkit/driver/aws/dynamojournal"
)

type failingHTTPClient struct{}

func (failingHTTPClient) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("<network error>")
}

func TestWithRequestHook(t *testing.T) {
	client := dynamodb.New(
		dynamodb.Options{
			Region:      "us-east-1",
			Credentials: credentials.NewStaticCredentialsProvider("id", "secret", ""),
			Retryer:     aws.NopRetryer{},
		},
	)

	var inputs []any

	store := NewBinaryStore(
		client,
		"<table>",
		WithRequestHook(func(in any) []func(*dynamodb.Options) {
			inputs = append(inputs, in)

			return []func(*dynamodb.Options){
				func(opts *dynamodb.Options) {
					opts.HTTPClient = failingHTTPClient{}
				},
			}
		}),
	)

	if _, err := store.Open(context.Background(), "<journal>"); err == nil {
		t.Fatal("expected an error")
	}

	if len(inputs) != 1 {
		t.Fatalf("unexpected number of requests: got %d, want 1", len(inputs))
	}

	in, ok := inputs[0].(*dynamodb.CreateTableInput)
	if !ok {
		t.Fatalf("unexpected request type: got %T, want *dynamodb.CreateTableInput", inputs[0])
	}

	if *in.TableName != "<table>" {
		t.Fatalf("unexpected table name: got %q, want %q", *in.TableName, "<table>")
	}
}
