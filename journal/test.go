package journal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/dogmatiq/searchkit/internal/x/xtesting"
	"github.com/dogmatiq/searchkit/marshaler"
	"github.com/dogmatiq/searchkit/search"
	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

// RunTests runs tests that confirm a journal implementation behaves correctly.
func RunTests(
	t *testing.T,
	newStore func(t *testing.T) BinaryStore,
) {
	setup := func(t *testing.T) BinaryJournal {
		store := newStore(t)
		name := xtesting.UniqueName("journal")

		j, err := store.Open(t.Context(), name)
		if err != nil {
			t.Fatal(err)
		}

		t.Cleanup(func() {
			if err := j.Close(); err != nil {
				t.Error(err)
			}
		})

		if j.Name() != name {
			t.Fatalf("unexpected journal name: got %q, want %q", j.Name(), name)
		}

		return j
	}

	t.Run("Store", func(t *testing.T) {
		t.Parallel()

		t.Run("Open", func(t *testing.T) {
			t.Parallel()

			t.Run("allows a journal to be opened multiple times", func(t *testing.T) {
				t.Parallel()

				store := newStore(t)
				name := xtesting.UniqueName("journal")

				j1, err := store.Open(t.Context(), name)
				if err != nil {
					t.Fatal(err)
				}
				defer j1.Close()

				j2, err := store.Open(t.Context(), name)
				if err != nil {
					t.Fatal(err)
				}
				defer j2.Close()

				want := []byte("<record>")
				if err := j1.Append(t.Context(), 0, want); err != nil {
					t.Fatal(err)
				}

				got, err := j2.Get(t.Context(), 0)
				if err != nil {
					t.Fatal(err)
				}

				if !bytes.Equal(got, want) {
					t.Fatalf("unexpected record: got %q, want %q", string(got), string(want))
				}
			})
		})
	})

	t.Run("Journal", func(t *testing.T) {
		t.Parallel()

		t.Run("Bounds", func(t *testing.T) {
			t.Parallel()

			cases := []struct {
				Name   string
				Expect Interval
				Setup  func(*testing.T, BinaryJournal)
			}{
				{
					"empty",
					Interval{0, 0},
					func(*testing.T, BinaryJournal) {},
				},
				{
					"with records",
					Interval{0, 10},
					func(t *testing.T, j BinaryJournal) {
						appendRecords(t, j, 10)
					},
				},
				{
					"with some records truncated",
					Interval{5, 10},
					func(t *testing.T, j BinaryJournal) {
						appendRecords(t, j, 10)
						if err := j.Truncate(t.Context(), 5); err != nil {
							t.Fatal(err)
						}
					},
				},
				{
					"with all records truncated",
					Interval{10, 10},
					func(t *testing.T, j BinaryJournal) {
						appendRecords(t, j, 10)
						if err := j.Truncate(t.Context(), 10); err != nil {
							t.Fatal(err)
						}
					},
				},
			}

			for _, c := range cases {
				t.Run(c.Name, func(t *testing.T) {
					t.Parallel()

					j := setup(t)
					c.Setup(t, j)

					bounds, err := j.Bounds(t.Context())
					if err != nil {
						t.Fatal(err)
					}

					if bounds != c.Expect {
						t.Fatalf("unexpected bounds: got %s, want %s", bounds, c.Expect)
					}
				})
			}
		})

		t.Run("Get", func(t *testing.T) {
			t.Parallel()

			t.Run("it returns a RecordNotFoundError if there is no record at the given position", func(t *testing.T) {
				t.Parallel()

				j := setup(t)

				_, err := j.Get(t.Context(), 1)
				if !errors.As(err, &RecordNotFoundError{}) {
					t.Fatalf("unexpected error: got %v, want RecordNotFoundError", err)
				}
			})

			t.Run("it returns the record if it exists", func(t *testing.T) {
				t.Parallel()

				j := setup(t)

				// Use enough records that positions become 2 digits long to
				// confirm that the implementation is not using a lexical sort.
				records := appendRecords(t, j, 15)

				for i, want := range records {
					got, err := j.Get(t.Context(), Position(i))
					if err != nil {
						t.Fatal(err)
					}

					if !bytes.Equal(want, got) {
						t.Fatalf("unexpected record at position %d: got %q, want %q", i, got, want)
					}
				}
			})

			t.Run("it does not return truncated records", func(t *testing.T) {
				t.Parallel()

				j := setup(t)
				appendRecords(t, j, 5)

				if err := j.Truncate(t.Context(), 3); err != nil {
					t.Fatal(err)
				}

				for pos := Position(0); pos < 3; pos++ {
					if _, err := j.Get(t.Context(), pos); !IsNotFound(err) {
						t.Fatalf("unexpected error at position %d: got %v, want RecordNotFoundError", pos, err)
					}
				}
			})
		})

		t.Run("Range", func(t *testing.T) {
			t.Parallel()

			t.Run("it calls the function for each record in the journal", func(t *testing.T) {
				t.Parallel()

				j := setup(t)
				want := appendRecords(t, j, 15)

				var got [][]byte
				wantPos := Position(0)

				if err := j.Range(
					t.Context(),
					0,
					func(_ context.Context, pos Position, rec []byte) (bool, error) {
						if pos != wantPos {
							t.Fatalf("unexpected position: got %d, want %d", pos, wantPos)
						}
						wantPos++
						got = append(got, rec)
						return true, nil
					},
				); err != nil {
					t.Fatal(err)
				}

				if diff := cmp.Diff(want, got); diff != "" {
					t.Fatal(diff)
				}
			})

			t.Run("it begins at the given position", func(t *testing.T) {
				t.Parallel()

				j := setup(t)
				records := appendRecords(t, j, 5)

				var got [][]byte
				if err := j.Range(
					t.Context(),
					2,
					func(_ context.Context, _ Position, rec []byte) (bool, error) {
						got = append(got, rec)
						return true, nil
					},
				); err != nil {
					t.Fatal(err)
				}

				if diff := cmp.Diff(records[2:], got); diff != "" {
					t.Fatal(diff)
				}
			})

			t.Run("it stops iterating if the function returns false", func(t *testing.T) {
				t.Parallel()

				j := setup(t)
				appendRecords(t, j, 5)

				called := 0
				if err := j.Range(
					t.Context(),
					0,
					func(context.Context, Position, []byte) (bool, error) {
						called++
						return false, nil
					},
				); err != nil {
					t.Fatal(err)
				}

				if called != 1 {
					t.Fatalf("unexpected number of calls: got %d, want 1", called)
				}
			})

			t.Run("it returns the error returned by the function", func(t *testing.T) {
				t.Parallel()

				j := setup(t)
				appendRecords(t, j, 5)

				want := errors.New("<error>")
				err := j.Range(
					t.Context(),
					0,
					func(context.Context, Position, []byte) (bool, error) {
						return true, want
					},
				)

				if err != want {
					t.Fatalf("unexpected error: got %v, want %v", err, want)
				}
			})

			t.Run("it does not call the function when beginning at the end of the journal", func(t *testing.T) {
				t.Parallel()

				j := setup(t)
				appendRecords(t, j, 3)

				if err := j.Range(
					t.Context(),
					3,
					func(context.Context, Position, []byte) (bool, error) {
						t.Fatal("unexpected call")
						return false, nil
					},
				); err != nil {
					t.Fatal(err)
				}
			})

			t.Run("it returns a RecordNotFoundError if the first record has been truncated", func(t *testing.T) {
				t.Parallel()

				j := setup(t)
				appendRecords(t, j, 5)

				if err := j.Truncate(t.Context(), 3); err != nil {
					t.Fatal(err)
				}

				err := j.Range(
					t.Context(),
					1,
					func(context.Context, Position, []byte) (bool, error) {
						t.Fatal("unexpected call")
						return false, nil
					},
				)
				if !errors.As(err, &RecordNotFoundError{}) {
					t.Fatalf("unexpected error: got %v, want RecordNotFoundError", err)
				}
			})
		})

		t.Run("Append", func(t *testing.T) {
			t.Parallel()

			t.Run("it returns ErrConflict if there is already a record at the given position", func(t *testing.T) {
				t.Parallel()

				j := setup(t)
				appendRecords(t, j, 3)

				for pos := Position(0); pos < 3; pos++ {
					err := j.Append(t.Context(), pos, []byte("<conflicting>"))
					if !IsConflict(err) {
						t.Fatalf("unexpected error at position %d: got %v, want %v", pos, err, ErrConflict)
					}
				}
			})

			t.Run("it does not overwrite the existing record on conflict", func(t *testing.T) {
				t.Parallel()

				j := setup(t)
				records := appendRecords(t, j, 1)

				if err := j.Append(t.Context(), 0, []byte("<conflicting>")); !IsConflict(err) {
					t.Fatalf("unexpected error: got %v, want %v", err, ErrConflict)
				}

				got, err := j.Get(t.Context(), 0)
				if err != nil {
					t.Fatal(err)
				}

				if !bytes.Equal(got, records[0]) {
					t.Fatalf("unexpected record: got %q, want %q", got, records[0])
				}
			})
		})

		t.Run("Search", func(t *testing.T) {
			t.Parallel()

			t.Run("it finds the record with the given key", func(t *testing.T) {
				t.Parallel()

				j := setup(t)
				appendKeys(t, j, 0, 100)

				for key := range uint64(100) {
					res, err := SearchBy(
						t.Context(),
						j,
						Interval{0, 100},
						encodeKey(key),
						identityKey,
						bytes.Compare,
					)
					if err != nil {
						t.Fatal(err)
					}

					if !res.Found {
						t.Fatalf("expected key %d to be found", key)
					}

					if res.Position != Position(key) {
						t.Fatalf("unexpected position: got %d, want %d", res.Position, key)
					}

					if res.Probes < 1 || res.Probes > 7 {
						t.Fatalf("unexpected number of probes: got %d, want [1, 7]", res.Probes)
					}
				}
			})

			t.Run("it returns the insertion point if the key is not found", func(t *testing.T) {
				t.Parallel()

				j := setup(t)

				// Keys 0, 2, 4, ..., 18.
				for key := range uint64(10) {
					if err := j.Append(t.Context(), Position(key), encodeKey(key*2)); err != nil {
						t.Fatal(err)
					}
				}

				for key := uint64(1); key < 21; key += 2 {
					res, err := SearchBy(
						t.Context(),
						j,
						Interval{0, 10},
						encodeKey(key),
						identityKey,
						bytes.Compare,
					)
					if err != nil {
						t.Fatal(err)
					}

					if res.Found {
						t.Fatalf("did not expect key %d to be found", key)
					}

					want := Position(key/2 + 1)
					if res.Position != want {
						t.Fatalf("unexpected insertion point for key %d: got %d, want %d", key, res.Position, want)
					}

					if res.Record != nil {
						t.Fatalf("unexpected record: got %q, want nil", res.Record)
					}
				}
			})

			t.Run("it only searches within the given interval", func(t *testing.T) {
				t.Parallel()

				j := setup(t)
				appendKeys(t, j, 0, 20)

				res, err := SearchBy(
					t.Context(),
					j,
					Interval{5, 10},
					encodeKey(15),
					identityKey,
					bytes.Compare,
				)
				if err != nil {
					t.Fatal(err)
				}

				if res.Found || res.Position != 10 {
					t.Fatalf("unexpected result: got (%d, %t), want (10, false)", res.Position, res.Found)
				}
			})

			t.Run("it returns the insertion point of an empty interval without reading any records", func(t *testing.T) {
				t.Parallel()

				j := setup(t)

				res, err := SearchBy(
					t.Context(),
					j,
					Interval{0, 0},
					encodeKey(1),
					identityKey,
					bytes.Compare,
				)
				if err != nil {
					t.Fatal(err)
				}

				if res.Found || res.Position != 0 || res.Probes != 0 {
					t.Fatalf("unexpected result: got %+v", res)
				}
			})

			t.Run("it returns a RecordNotFoundError if the interval includes truncated records", func(t *testing.T) {
				t.Parallel()

				j := setup(t)
				appendKeys(t, j, 0, 10)

				if err := j.Truncate(t.Context(), 8); err != nil {
					t.Fatal(err)
				}

				_, err := SearchBy(
					t.Context(),
					j,
					Interval{0, 10},
					encodeKey(0),
					identityKey,
					bytes.Compare,
				)
				if !errors.As(err, &RecordNotFoundError{}) {
					t.Fatalf("unexpected error: got %v, want RecordNotFoundError", err)
				}
			})

			t.Run("it agrees with a search of the equivalent slice", func(t *testing.T) {
				t.Parallel()

				store := newStore(t)

				rapid.Check(t, func(t *rapid.T) {
					j, err := store.Open(context.Background(), xtesting.UniqueName("journal"))
					if err != nil {
						t.Fatal(err)
					}
					defer j.Close()

					keys := rapid.SliceOfN(rapid.Uint64Range(0, 30), 0, 50).Draw(t, "keys")
					slices.Sort(keys)

					for i, key := range keys {
						if err := j.Append(context.Background(), Position(i), encodeKey(key)); err != nil {
							t.Fatal(err)
						}
					}

					key := rapid.Uint64Range(0, 32).Draw(t, "key")

					res, err := SearchByOrdered(
						context.Background(),
						j,
						Interval{0, Position(len(keys))},
						key,
						decodeKey,
					)
					if err != nil {
						t.Fatal(err)
					}

					r := search.BinarySearchBy(keys, key, func(k uint64) uint64 { return k })

					if res.Found != search.IsFound(r) {
						t.Fatalf("unexpected found: got %t, want %t", res.Found, search.IsFound(r))
					}

					if want := Position(search.InsertionPoint(r)); res.Position != want {
						t.Fatalf("unexpected position: got %d, want %d", res.Position, want)
					}
				})
			})
		})
	})
}

// appendRecords appends n records to j and returns them.
func appendRecords(t *testing.T, j BinaryJournal, n int) [][]byte {
	t.Helper()

	var records [][]byte

	for pos := range Position(n) {
		rec := []byte(fmt.Sprintf("<record-%d>", pos))
		records = append(records, rec)

		if err := j.Append(t.Context(), pos, rec); err != nil {
			t.Fatal(err)
		}
	}

	return records
}

// appendKeys appends records for each key in [begin, end) to j, such that
// the record at position p contains the key p.
func appendKeys(t *testing.T, j BinaryJournal, begin, end uint64) {
	t.Helper()

	for key := begin; key < end; key++ {
		if err := j.Append(t.Context(), Position(key), encodeKey(key)); err != nil {
			t.Fatal(err)
		}
	}
}

func encodeKey(k uint64) []byte {
	data, _ := marshaler.Uint64.Marshal(k)
	return data
}

func decodeKey(rec []byte) uint64 {
	k, err := marshaler.Uint64.Unmarshal(rec)
	if err != nil {
		panic(err)
	}
	return k
}

func identityKey(rec []byte) []byte {
	return rec
}
