// Package sales defines the records plotted by the chart
// and the sources they are read from.
package sales

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoRecords is returned when a collection has no record to plot.
	ErrNoRecords = errors.New("sales: empty record collection")
	// ErrInvalidValue is returned for a negative, NaN or infinite value.
	ErrInvalidValue = errors.New("sales: invalid value")
)

// Record is one measurement: Value is plotted against Category,
// and Group selects the color.
type Record struct {
	Category string  `json:"country"`
	Value    float64 `json:"sales"`
	Group    string  `json:"product"`
}

// Source provides a record collection. Each call returns a fresh slice.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}

// Literal is a Source backed by an in-memory collection.
type Literal []Record

// Records returns a copy of l.
func (l Literal) Records(context.Context) ([]Record, error) {
	return append([]Record(nil), l...), nil
}

// Demo returns the default five records.
func Demo() Literal {
	return Literal{
		{Category: "United States", Value: 100000, Group: "Product A"},
		{Category: "Canada", Value: 80000, Group: "Product B"},
		{Category: "Mexico", Value: 60000, Group: "Product C"},
		{Category: "United Kingdom", Value: 40000, Group: "Product D"},
		{Category: "Germany", Value: 20000, Group: "Product E"},
	}
}

// Validate checks that records is not empty and that every value
// is finite and non-negative.
func Validate(records []Record) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	for i, r := range records {
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) || r.Value < 0 {
			return fmt.Errorf("record %d (%s): %w %v", i, r.Category, ErrInvalidValue, r.Value)
		}
	}
	return nil
}

// Max returns the largest value of records, or 0 for an empty slice.
func Max(records []Record) float64 {
	var m float64
	for i, r := range records {
		if i == 0 || r.Value > m {
			m = r.Value
		}
	}
	return m
}

// Categories returns the categories of records, in order.
// Duplicates are kept.
func Categories(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Category
	}
	return out
}
