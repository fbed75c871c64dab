package xtesting

import (
	"context"
	"testing"
	"time"
)

// ContextForCleanup returns a context for use by functions registered with
// t.Cleanup(), which run after t.Context() has been canceled.
//
// The context carries the values of t.Context() and is canceled after a short
// timeout, or when the test's cleanup completes.
func ContextForCleanup(t testing.TB) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(
		context.WithoutCancel(t.Context()),
		10*time.Second,
	)
	t.Cleanup(cancel)

	return ctx
}
