// Package series provides immutable, time-indexed float64 series and
// aligned tabular frames for offline pair analysis. Missing values are
// represented as NaN and propagate through derived series; they are valid
// domain values (rolling warm-up, zero-variance denominators), not errors.
package series

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrMisaligned is returned when two series do not share the same index
	ErrMisaligned = errors.New("series are misaligned")

	// ErrInvalidWindow is returned when a rolling window is not usable
	ErrInvalidWindow = errors.New("invalid rolling window")

	// ErrColumnNotFound is returned when a frame column does not exist
	ErrColumnNotFound = errors.New("column not found")
)

// Series is an ordered, time-indexed sequence of float64 values.
// Index entries are timestamps (Unix nanoseconds) or plain sequence
// positions; the meaning is up to the data source. A Series is never
// mutated after construction: every operation returns a new Series.
type Series struct {
	Name   string
	Index  []int64
	Values []float64
}

// New creates a series from an index and values of equal length.
func New(name string, index []int64, values []float64) (*Series, error) {
	if len(index) != len(values) {
		return nil, fmt.Errorf("%w: index length %d != values length %d", ErrMisaligned, len(index), len(values))
	}
	return &Series{Name: name, Index: index, Values: values}, nil
}

// FromValues creates a series with a positional index 0..len-1.
func FromValues(name string, values []float64) *Series {
	index := make([]int64, len(values))
	for i := range index {
		index[i] = int64(i)
	}
	return &Series{Name: name, Index: index, Values: values}
}

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Missing returns the missing-value sentinel.
func Missing() float64 {
	return math.NaN()
}

// Len returns the number of points in the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// At returns the value at position i.
func (s *Series) At(i int) float64 {
	return s.Values[i]
}

// Derive creates a new series with the given name and values sharing this
// series' index. The value slice must match the index length.
func (s *Series) Derive(name string, values []float64) (*Series, error) {
	return New(name, s.Index, values)
}

// DropMissing returns a new series with all missing points removed,
// keeping the index entries of the surviving points.
func (s *Series) DropMissing() *Series {
	index := make([]int64, 0, len(s.Values))
	values := make([]float64, 0, len(s.Values))
	for i, v := range s.Values {
		if IsMissing(v) {
			continue
		}
		index = append(index, s.Index[i])
		values = append(values, v)
	}
	return &Series{Name: s.Name, Index: index, Values: values}
}

// CountValid returns the number of non-missing points.
func (s *Series) CountValid() int {
	n := 0
	for _, v := range s.Values {
		if !IsMissing(v) {
			n++
		}
	}
	return n
}

// Aligned verifies that two series share the same index domain and
// ordering. Misaligned inputs are a precondition violation for every
// pairwise operation.
func Aligned(a, b *Series) error {
	if a == nil || b == nil {
		return fmt.Errorf("%w: nil series", ErrMisaligned)
	}
	if len(a.Index) != len(b.Index) {
		return fmt.Errorf("%w: %q has %d points, %q has %d", ErrMisaligned, a.Name, len(a.Index), b.Name, len(b.Index))
	}
	for i := range a.Index {
		if a.Index[i] != b.Index[i] {
			return fmt.Errorf("%w: %q and %q differ at position %d", ErrMisaligned, a.Name, b.Name, i)
		}
	}
	return nil
}
