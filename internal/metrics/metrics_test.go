package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestComputePerClassAccuracyPrecisionRecall(t *testing.T) {
	// targets: 0,0,0,1,1,1 ; preds: 0,0,1,1,1,0
	targets := []int{0, 0, 0, 1, 1, 1}
	predictions := []int{0, 0, 1, 1, 1, 0}

	got := Compute(predictions, targets, 2)

	if got[0].Accuracy != 2.0/3.0 {
		t.Error("unexpected class 0 accuracy:", got[0].Accuracy)
	}
	if got[1].Accuracy != 2.0/3.0 {
		t.Error("unexpected class 1 accuracy:", got[1].Accuracy)
	}
	// class 0: true positives = 2 (rows 0,1), false positives = 1 (row 5).
	if got[0].Precision != 2.0/3.0 {
		t.Error("unexpected class 0 precision:", got[0].Precision)
	}
	if got[0].Recall != 2.0/3.0 {
		t.Error("unexpected class 0 recall:", got[0].Recall)
	}
}

func TestComputeHandlesEmptyClass(t *testing.T) {
	targets := []int{0, 0, 0}
	predictions := []int{0, 0, 0}

	got := Compute(predictions, targets, 2)
	if got[1].Accuracy != 0 || got[1].Precision != 0 || got[1].Recall != 0 {
		t.Error("expected an unseen class to report all-zero metrics, got:", got[1])
	}
}

func TestWriteReportFormatsSixDecimalsAndSeparator(t *testing.T) {
	perClass := []PerClass{{Accuracy: 1, Precision: 0.5, Recall: 0.333333333}}

	var buf strings.Builder
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := WriteReport(&buf, perClass, 0, now); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "Accuracy for class 0: 1.000000") {
		t.Error("expected 6-decimal accuracy formatting, got:", out)
	}
	if !strings.Contains(out, "Recall for class 0: 0.333333") {
		t.Error("expected 6-decimal recall formatting, got:", out)
	}
	if !strings.Contains(out, "*********************") {
		t.Error("expected an asterisk separator between classes, got:", out)
	}
	if !strings.Contains(out, "Process that wrote the file: 0") {
		t.Error("expected the writer rank footer, got:", out)
	}
}

func TestWritePredictionsCSV(t *testing.T) {
	var buf strings.Builder
	if err := WritePredictions(&buf, []int{0, 1}, []int{0, 0}); err != nil {
		t.Fatal(err)
	}

	want := "true_label,predicted_label\n0,0\n1,0\n"
	if buf.String() != want {
		t.Errorf("unexpected CSV:\n%s\nwant:\n%s", buf.String(), want)
	}
}
