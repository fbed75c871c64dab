package xtesting

import (
	"fmt"

	"github.com/google/uuid"
)

// UniqueName returns a unique name with the given prefix.
//
// It is used to give each test its own journal within a shared store.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
