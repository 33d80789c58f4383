package series

import (
	"fmt"
	"sort"
)

// Frame is a tabular collection of named, equal-length columns sharing a
// common index. It is the external input shape for pair analysis: one
// column of aligned price observations per asset.
type Frame struct {
	index   []int64
	columns map[string][]float64
}

// NewFrame creates a frame from an index and named columns. Every column
// must match the index length; ragged input is an alignment violation.
func NewFrame(index []int64, columns map[string][]float64) (*Frame, error) {
	for name, values := range columns {
		if len(values) != len(index) {
			return nil, fmt.Errorf("%w: column %q has %d values, index has %d", ErrMisaligned, name, len(values), len(index))
		}
	}
	cols := make(map[string][]float64, len(columns))
	for name, values := range columns {
		cols[name] = values
	}
	return &Frame{index: index, columns: cols}, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.index)
}

// Index returns the shared row index.
func (f *Frame) Index() []int64 {
	return f.index
}

// Columns returns the column names in sorted order.
func (f *Frame) Columns() []string {
	names := make([]string, 0, len(f.columns))
	for name := range f.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Series returns the named column as a series sharing the frame index.
func (f *Frame) Series(name string) (*Series, error) {
	values, ok := f.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return &Series{Name: name, Index: f.index, Values: values}, nil
}
