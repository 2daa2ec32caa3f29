package sales

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("sales: missing csv column")

// accepted header names, lower case
var columnNames = [3][]string{
	{"country", "category"},
	{"sales", "value"},
	{"product", "group"},
}

// CSVFile reads records from a CSV file with a header row.
// The file is read again on every call to Records.
type CSVFile struct {
	Path string
}

// Records implements Source.
func (f CSVFile) Records(ctx context.Context) ([]Record, error) {
	fi, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer fi.Close()
	return ReadCSV(ctx, fi)
}

// ReadCSV parses records from r. The first row is a header naming the
// country (or category), sales (or value) and product (or group) columns,
// in any order and case.
func ReadCSV(ctx context.Context, r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoRecords
	}
	if err != nil {
		return nil, fmt.Errorf("sales: reading csv header: %w", err)
	}
	var idx [3]int
	for c, names := range columnNames {
		idx[c] = findColumn(header, names)
		if idx[c] < 0 {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, names[0])
		}
	}

	var out []Record
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sales: reading csv: %w", err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[idx[1]]), 64)
		if err != nil {
			return nil, fmt.Errorf("sales: line %d: %w", line, err)
		}
		out = append(out, Record{
			Category: strings.TrimSpace(row[idx[0]]),
			Value:    v,
			Group:    strings.TrimSpace(row[idx[2]]),
		})
	}
	return out, nil
}

func findColumn(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}
