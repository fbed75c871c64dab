package telemetry

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/attribute"
)

type namedStore struct{}

type interval struct{ begin, end int }

func (i interval) String() string { return fmt.Sprintf("[%d, %d)", i.begin, i.end) }

func TestAsAttrKeyValues(t *testing.T) {
	got := asAttrKeyValues([]Attr{
		String("name", "<journal>"),
		Stringer("interval", interval{2, 5}),
		Bool("found", true),
		Int("probes", uint8(4)),
		Type("store", &namedStore{}),
		If(false, String("omitted", "<value>")),
		If(true, Int("position", uint64(17))),
	})

	want := []attribute.KeyValue{
		attribute.String("name", "<journal>"),
		attribute.String("interval", "[2, 5)"),
		attribute.Bool("found", true),
		attribute.Int64("probes", 4),
		attribute.String("store", "telemetry.namedStore"),
		attribute.Int64("position", 17),
	}

	if diff := cmp.Diff(
		want,
		got,
		cmp.Comparer(func(a, b attribute.KeyValue) bool {
			return a.Key == b.Key && a.Value.Emit() == b.Value.Emit()
		}),
	); diff != "" {
		t.Fatal(diff)
	}
}

func TestAsLogKeyValues(t *testing.T) {
	got := asLogKeyValues([]Attr{
		String("name", "<journal>"),
		{},
		Int("probes", 3),
	})

	if len(got) != 2 {
		t.Fatalf("unexpected number of key/values: got %d, want 2", len(got))
	}

	if got[0].Key != "name" || got[0].Value.AsString() != "<journal>" {
		t.Fatalf("unexpected key/value: %v", got[0])
	}

	if got[1].Key != "probes" || got[1].Value.AsInt64() != 3 {
		t.Fatalf("unexpected key/value: %v", got[1])
	}
}

func TestHandleID(t *testing.T) {
	a := HandleID()
	b := HandleID()

	if a == b {
		t.Fatalf("expected unique handle IDs, got %q twice", a)
	}

	if !strings.HasPrefix(a, "#") {
		t.Fatalf("expected handle ID to begin with a counter, got %q", a)
	}
}
