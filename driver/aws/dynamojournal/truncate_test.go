package dynamojournal_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	. "github.com/dogmatiq/searchkit/driver/aws/dynamojournal"
	"github.com/dogmatiq/searchkit/journal"
	"github.com/google/go-cmp/cmp"
)

// scriptedHTTPClient answers DynamoDB requests with canned responses and
// records the name of each operation it receives.
type scriptedHTTPClient struct {
	m   sync.Mutex
	ops []string
}

func (c *scriptedHTTPClient) Do(req *http.Request) (*http.Response, error) {
	op := strings.TrimPrefix(req.Header.Get("X-Amz-Target"), "DynamoDB_20120810.")

	c.m.Lock()
	c.ops = append(c.ops, op)
	c.m.Unlock()

	body := `{}`
	switch op {
	case "DescribeTable":
		body = `{"Table":{"TableStatus":"ACTIVE"}}`
	case "GetItem":
		body = `{"Item":{"B":{"N":"0"},"E":{"N":"10"}}}`
	}

	return &http.Response{
		StatusCode: http.StatusOK,
		Header: http.Header{
			"Content-Type": {"application/x-amz-json-1.0"},
		},
		Body:    io.NopCloser(strings.NewReader(body)),
		Request: req,
	}, nil
}

func (c *scriptedHTTPClient) Operations() []string {
	c.m.Lock()
	defer c.m.Unlock()
	return append([]string(nil), c.ops...)
}

func TestJournal_Truncate(t *testing.T) {
	setup := func(t *testing.T, options ...Option) (journal.BinaryJournal, *scriptedHTTPClient) {
		t.Helper()

		transport := &scriptedHTTPClient{}

		client := dynamodb.New(
			dynamodb.Options{
				Region:                          "us-east-1",
				Credentials:                     credentials.NewStaticCredentialsProvider("id", "secret", ""),
				Retryer:                         aws.NopRetryer{},
				HTTPClient:                      transport,
				DisableValidateResponseChecksum: true,
			},
		)

		store := NewBinaryStore(client, "<table>", options...)

		j, err := store.Open(context.Background(), "<journal>")
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { j.Close() })

		transport.m.Lock()
		transport.ops = nil
		transport.m.Unlock()

		return j, transport
	}

	t.Run("it advances the beginning of the journal before deleting records", func(t *testing.T) {
		t.Parallel()

		j, transport := setup(t)

		if err := j.Truncate(context.Background(), 3); err != nil {
			t.Fatal(err)
		}

		want := []string{
			"GetItem",
			"UpdateItem",
			"DeleteItem",
			"DeleteItem",
			"DeleteItem",
		}

		if diff := cmp.Diff(want, transport.Operations()); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("it does not delete records if the beginning cannot be advanced", func(t *testing.T) {
		t.Parallel()

		j, transport := setup(
			t,
			WithRequestHook(func(in any) []func(*dynamodb.Options) {
				if _, ok := in.(*dynamodb.UpdateItemInput); !ok {
					return nil
				}

				return []func(*dynamodb.Options){
					func(opts *dynamodb.Options) {
						opts.HTTPClient = failingHTTPClient{}
					},
				}
			}),
		)

		if err := j.Truncate(context.Background(), 3); err == nil {
			t.Fatal("expected an error")
		}

		// The failed UpdateItem request never reaches the scripted client.
		want := []string{
			"GetItem",
		}

		if diff := cmp.Diff(want, transport.Operations()); diff != "" {
			t.Fatal(diff)
		}
	})
}
