// Package dataset reads the CSV training data and partitions it into the
// stratified train/test splits and per-tree bootstrap-like samples consumed
// by internal/forest.
package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Dataset is a dense row-major matrix of 32-bit floats. The last column of
// each row holds the integer class label, stored as a float.
type Dataset struct {
	Data    []float32
	NumRows int
	NumCols int
}

// NumFeatures returns the number of feature columns, excluding the label.
func (d *Dataset) NumFeatures() int {
	return d.NumCols - 1
}

// Row returns a view of row i as a slice into the underlying matrix. The
// returned slice aliases d.Data; callers that need an owned copy must copy
// it themselves.
func (d *Dataset) Row(i int) []float32 {
	start := i * d.NumCols
	return d.Data[start : start+d.NumCols]
}

// Label returns the integer class label of row i.
func (d *Dataset) Label(i int) int {
	return int(d.Row(i)[d.NumCols-1])
}

// ReadCSV parses a CSV file whose first row is a header and whose remaining
// rows are comma-separated floats, the last column being the integer class
// label encoded as a float. This is the thin I/O collaborator spec.md leaves
// to the implementer; semantics otherwise follow wlattner-rf's parse.go.
func ReadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: opening %s: %w", path, err)
	}
	defer f.Close()

	return readCSV(bufio.NewReader(f))
}

func readCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// header row, discarded
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset: empty csv, expected a header row")
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: reading header: %w", err)
	}

	numCols := len(header)
	var rows []float32

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: reading row: %w", err)
		}
		if len(rec) != numCols {
			return nil, fmt.Errorf("dataset: row has %d columns, expected %d", len(rec), numCols)
		}

		for _, val := range rec {
			fv, err := strconv.ParseFloat(val, 32)
			if err != nil {
				return nil, fmt.Errorf("dataset: parsing value %q: %w", val, err)
			}
			rows = append(rows, float32(fv))
		}
	}

	numRows := 0
	if numCols > 0 {
		numRows = len(rows) / numCols
	}

	return &Dataset{Data: rows, NumRows: numRows, NumCols: numCols}, nil
}

// InferNumClasses returns max(label)+1 over all rows, matching spec.md §6's
// rule for num_classes <= 0.
func (d *Dataset) InferNumClasses() int {
	maxLabel := -1
	for i := 0; i < d.NumRows; i++ {
		if l := d.Label(i); l > maxLabel {
			maxLabel = l
		}
	}
	return maxLabel + 1
}
