// Package bigint stores unsigned 64-bit integers, such as journal positions,
// in PostgreSQL's BIGINT type, which is signed.
//
// The encoding flips the sign bit so that encoded values sort in the same
// order as the original unsigned values. Range queries and ORDER BY clauses
// on encoded columns therefore behave as they would on the unsigned values.
package bigint

import (
	"database/sql"
	"fmt"
)

const signBit = 1 << 63

// Encode returns the BIGINT representation of v.
func Encode[T ~uint64](v T) int64 {
	return int64(uint64(v) ^ signBit)
}

// Decode returns the unsigned value represented by v.
func Decode[T ~uint64](v int64) T {
	return T(uint64(v) ^ signBit)
}

// Scan returns a [sql.Scanner] that decodes a BIGINT column into *target.
func Scan[T ~uint64](target *T) sql.Scanner {
	return scanner[T]{target}
}

type scanner[T ~uint64] struct {
	target *T
}

func (s scanner[T]) Scan(src any) error {
	v, ok := src.(int64)
	if !ok {
		return fmt.Errorf("cannot scan %T into %T", src, s.target)
	}

	*s.target = Decode[T](v)
	return nil
}
