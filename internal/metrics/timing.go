package metrics

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const timingHeader = "Train Time,Inference Time,Total Time,Processes,Num Threads,Num Trees,Data Size,Speedup,Efficiency"

// baselineProcesses/baselineThreads mark the run configuration every other
// run's speedup/efficiency is measured against, grounded on
// original_source/openmp_mpi/src/utils.c's store_run_params_processes_threads
// ("Baseline is process_count == 2 && num_threads == 1").
const (
	baselineProcesses = 2
	baselineThreads   = 1
)

// RunTiming is one row of the timing CSV.
type RunTiming struct {
	TrainTime     float64
	InferenceTime float64
	Processes     int
	Threads       int
	NumTrees      int
	TrainSize     int
}

// AppendTiming appends one row to the timing CSV at path, computing
// speedup/efficiency against the baseline (processes==2, threads==1) row
// already on disk for the same (NumTrees, TrainSize), if any. The baseline
// row itself always records speedup=efficiency=1.000, matching the
// original's convention.
func AppendTiming(path string, run RunTiming) error {
	fileExisted := true
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fileExisted = false
	}

	totalTime := run.TrainTime + run.InferenceTime
	speedup, efficiency := -1.0, -1.0

	isBaseline := run.Processes == baselineProcesses && run.Threads == baselineThreads

	if fileExisted && !isBaseline {
		if baseline, ok := findBaseline(path, run.NumTrees, run.TrainSize); ok {
			baselineTotal := baseline.TrainTime + baseline.InferenceTime
			if totalTime > 0 {
				speedup = baselineTotal / totalTime
				efficiency = speedup / float64(run.Processes*run.Threads)
			}
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("metrics: opening timing csv %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if !fileExisted {
		fmt.Fprintln(w, timingHeader)
	}

	if isBaseline {
		fmt.Fprintf(w, "%.6f,%.6f,%.6f,%d,%d,%d,%d,1.000,1.000\n",
			run.TrainTime, run.InferenceTime, totalTime, run.Processes, run.Threads, run.NumTrees, run.TrainSize)
	} else if speedup > 0 && efficiency > 0 {
		fmt.Fprintf(w, "%.6f,%.6f,%.6f,%d,%d,%d,%d,%.6f,%.6f\n",
			run.TrainTime, run.InferenceTime, totalTime, run.Processes, run.Threads, run.NumTrees, run.TrainSize, speedup, efficiency)
	} else {
		fmt.Fprintf(w, "%.6f,%.6f,%.6f,%d,%d,%d,%d,-1.000,-1.000\n",
			run.TrainTime, run.InferenceTime, totalTime, run.Processes, run.Threads, run.NumTrees, run.TrainSize)
	}

	return w.Flush()
}

// findBaseline scans path for a (Processes==2, Threads==1) row matching
// numTrees and trainSize.
func findBaseline(path string, numTrees, trainSize int) (RunTiming, bool) {
	f, err := os.Open(path)
	if err != nil {
		return RunTiming{}, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue // header
		}
		fields := strings.Split(scanner.Text(), ",")
		if len(fields) < 7 {
			continue
		}
		trainTime, err1 := strconv.ParseFloat(fields[0], 64)
		inferenceTime, err2 := strconv.ParseFloat(fields[1], 64)
		processes, err3 := strconv.Atoi(fields[3])
		threads, err4 := strconv.Atoi(fields[4])
		trees, err5 := strconv.Atoi(fields[5])
		size, err6 := strconv.Atoi(fields[6])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil || err6 != nil {
			continue
		}

		if processes == baselineProcesses && threads == baselineThreads && trees == numTrees && size == trainSize {
			return RunTiming{
				TrainTime:     trainTime,
				InferenceTime: inferenceTime,
				Processes:     processes,
				Threads:       threads,
				NumTrees:      trees,
				TrainSize:     size,
			}, true
		}
	}

	return RunTiming{}, false
}
