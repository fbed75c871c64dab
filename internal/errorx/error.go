package errorx

import (
	"fmt"

	"github.com/dogmatiq/searchkit/journal"
)

// Wrap adds additional context to the error in *err.
//
// Errors that callers are expected to inspect, such as journal "not found"
// errors and optimistic concurrency conflicts, are left unchanged.
func Wrap(err *error, format string, args ...any) {
	if err == nil {
		panic("err must not be nil")
	}

	if *err == nil {
		return
	}

	if journal.IsNotFound(*err) || journal.IsConflict(*err) {
		return
	}

	*err = fmt.Errorf(format+": %w", append(args, *err)...)
}
