package cluster

import (
	"math/rand"
	"testing"

	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/dataset"
	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/forest"
	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/tree"
)

func syntheticDataset(numRows, numFeatures int) *dataset.Dataset {
	rng := rand.New(rand.NewSource(99))
	numCols := numFeatures + 1
	data := make([]float32, numRows*numCols)
	for i := 0; i < numRows; i++ {
		label := i % 2
		base := float32(label) * 5.0
		for f := 0; f < numFeatures; f++ {
			data[i*numCols+f] = base + float32(rng.Float64())
		}
		data[i*numCols+numFeatures] = float32(label)
	}
	return &dataset.Dataset{Data: data, NumRows: numRows, NumCols: numCols}
}

// TestRunDeterministicAcrossProcessAndThreadCounts mirrors the invariant
// that predictions must not depend on how T trees happen to be chunked
// across processes, nor on how many threads each process's split search
// uses.
func TestRunDeterministicAcrossProcessAndThreadCounts(t *testing.T) {
	full := syntheticDataset(40, 4)

	var baseline []int
	for _, numProcesses := range []int{1, 2, 4} {
		for _, numThreads := range []int{1, 4} {
			cfg := forest.NewConfig(
				forest.NumTrees(5),
				forest.MaxDepth(4),
				forest.MinSamplesSplit(2),
				forest.MaxFeatures(tree.MaxFeatures{Kind: tree.MaxFeaturesSqrt}),
				forest.NumThreads(numThreads),
				forest.TrainTreeProportion(0.8),
				forest.Seed(42),
			)

			result, err := Run(full, RunConfig{
				NumClasses:      2,
				TrainProportion: 0.8,
				NumProcesses:    numProcesses,
				Seed:            42,
				Forest:          cfg,
			})
			if err != nil {
				t.Fatalf("processes=%d threads=%d: %v", numProcesses, numThreads, err)
			}

			if baseline == nil {
				baseline = result.Predictions
				continue
			}

			if len(result.Predictions) != len(baseline) {
				t.Fatalf("processes=%d threads=%d: prediction length mismatch", numProcesses, numThreads)
			}
			for i := range baseline {
				if result.Predictions[i] != baseline[i] {
					t.Errorf("processes=%d threads=%d: prediction[%d] = %d, want %d (baseline)",
						numProcesses, numThreads, i, result.Predictions[i], baseline[i])
				}
			}
		}
	}
}
