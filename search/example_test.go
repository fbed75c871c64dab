package search_test

import (
	"fmt"
	"strings"
	"time"

	"github.com/dogmatiq/searchkit/search"
)

func ExampleBinarySearchBy() {
	type event struct {
		At   time.Time
		Name string
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []event{
		{base, "created"},
		{base.Add(1 * time.Hour), "updated"},
		{base.Add(3 * time.Hour), "deleted"},
	}

	byUnix := func(e event) int64 { return e.At.Unix() }

	r := search.BinarySearchBy(events, base.Add(1*time.Hour).Unix(), byUnix)
	fmt.Println(events[r].Name)

	r = search.BinarySearchBy(events, base.Add(2*time.Hour).Unix(), byUnix)
	fmt.Println(search.IsFound(r), search.InsertionPoint(r))

	// Output:
	// updated
	// false 2
}

func ExampleBinarySearchByFunc() {
	words := []string{"Apple", "banana", "Cherry"}

	r := search.BinarySearchByFunc(
		words,
		"BANANA",
		strings.ToLower,
		func(a, b string) int {
			return strings.Compare(a, strings.ToLower(b))
		},
	)

	fmt.Println(r)

	// Output:
	// 1
}
