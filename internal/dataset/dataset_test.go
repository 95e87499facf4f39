package dataset

import (
	"strings"
	"testing"
)

func TestReadCSVParsesRowsAndLabel(t *testing.T) {
	csv := "f0,f1,label\n1.0,2.0,0\n3.0,4.0,1\n"
	d, err := readCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}

	if d.NumRows != 2 || d.NumCols != 3 {
		t.Fatalf("expected 2 rows x 3 cols, got %d x %d", d.NumRows, d.NumCols)
	}
	if d.NumFeatures() != 2 {
		t.Error("expected 2 feature columns, got:", d.NumFeatures())
	}
	if d.Label(0) != 0 || d.Label(1) != 1 {
		t.Error("unexpected labels:", d.Label(0), d.Label(1))
	}
	if d.Row(1)[0] != 3.0 {
		t.Error("expected row 1 feature 0 to be 3.0, got:", d.Row(1)[0])
	}
}

func TestReadCSVRejectsRaggedRows(t *testing.T) {
	csv := "f0,f1,label\n1.0,2.0,0\n3.0,1\n"
	if _, err := readCSV(strings.NewReader(csv)); err == nil {
		t.Error("expected an error for a row with the wrong column count")
	}
}

func TestInferNumClasses(t *testing.T) {
	d := &Dataset{
		Data:    []float32{0, 0, 1, 2},
		NumRows: 2,
		NumCols: 2,
	}
	if got := d.InferNumClasses(); got != 3 {
		t.Error("expected max(label)+1 == 3, got:", got)
	}
}
