package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/metrics"
)

func writePredictionsCSV(path string, targets, predictions []int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("rf: creating predictions dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rf: creating predictions file %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := metrics.WritePredictions(w, targets, predictions); err != nil {
		return err
	}
	return w.Flush()
}

func writeMetricsReport(path string, targets, predictions []int, numClasses int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("rf: creating metrics dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rf: creating metrics file %s: %w", path, err)
	}
	defer f.Close()

	perClass := metrics.Compute(predictions, targets, numClasses)

	w := bufio.NewWriter(f)
	if err := metrics.WriteReport(w, perClass, 0, time.Now()); err != nil {
		return err
	}
	return w.Flush()
}
