// Package cluster renders spec.md §4.6's Forest Coordinator and §5's
// inter-process scheduling model as goroutines communicating only through
// channels, standing in for MPI ranks: no mature Go MPI binding exists in
// the ecosystem, so each "rank" is a goroutine that only ever receives a
// broadcast copy or sends a gather message, never reaches into another
// rank's memory. This generalizes wlattner-rf/forest/classifier.go's
// channel-based worker pool (there used to fan tree-fitting work out to a
// handful of goroutines) to the two-level process/thread model spec.md §5
// describes; the thread-team level of parallelism lives inside
// internal/tree's split search instead.
package cluster

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/dataset"
	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/forest"
	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/tree"
)

// RunConfig bundles everything a Run needs beyond the forest hyperparameters.
type RunConfig struct {
	NumClasses      int
	TrainProportion float64
	NumProcesses    int
	Seed            int64
	Forest          *forest.Config
}

// RankTiming is the wall-clock duration one rank spent in local training
// and in local inference, the quantities barriers straddle per spec.md §5
// so that a clean max-reduction across ranks can be taken afterward.
type RankTiming struct {
	Rank      int
	Train     time.Duration
	Inference time.Duration
}

// Result is everything the coordinator (rank 0) produces after gather,
// ready for internal/metrics to report.
type Result struct {
	Test          *dataset.Dataset
	Trees         []*tree.Node // gathered, in global tree-index order
	Predictions   []int        // aggregated, one per test row
	ProcessTiming []RankTiming
}

// rankOutput is what one rank goroutine sends back to the coordinator —
// the gather of phases 6 and 7 of spec.md §4.6, modeled as a single
// channel send per rank rather than two, since both travel together here.
type rankOutput struct {
	rank   int
	trees  map[int]*tree.Node // global tree index -> grown tree
	preds  ProcessPredictions
	timing RankTiming
}

// Run executes spec.md §4.6's seven phases: broadcast, stratified split,
// local sampling, local training, local inference, gather predictions,
// gather trees. Ranks 0..numProcesses-1 run as concurrent goroutines; rank
// 0 additionally plays coordinator once every rank's goroutine has
// returned (errgroup.Wait is the barrier spec.md §5 requires around the
// timed region).
func Run(full *dataset.Dataset, cfg RunConfig) (*Result, error) {
	numClasses := cfg.NumClasses
	assignment := DistributeTrees(cfg.Forest.NumTrees, cfg.NumProcesses)

	gatherCh := make(chan rankOutput, cfg.NumProcesses)

	g, ctx := errgroup.WithContext(context.Background())
	for rank := 0; rank < cfg.NumProcesses; rank++ {
		rank := rank
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			// phase 1: broadcast dimensions & dataset (private copy per rank)
			localFull := broadcastDataset(full)

			// phase 2: stratified split, computed redundantly per rank
			train, test := dataset.StratifiedSplit(localFull, numClasses, cfg.TrainProportion, cfg.Seed)

			trainStart := time.Now()

			// phases 3 & 4: local sampling + local training
			myTrees := assignment[rank]
			grown := forest.GrowAssigned(train, numClasses, myTrees, cfg.Forest)

			trainElapsed := time.Since(trainStart)

			inferenceStart := time.Now()

			// phase 5: local inference over the full test set
			preds := forest.PredictLocal(grown, test)

			inferenceElapsed := time.Since(inferenceStart)

			treesByIndex := make(map[int]*tree.Node, len(myTrees))
			for i, gIdx := range myTrees {
				treesByIndex[gIdx] = grown[i]
			}

			gatherCh <- rankOutput{
				rank:  rank,
				trees: treesByIndex,
				preds: ProcessPredictions{
					Preds:    preds,
					NumTrees: len(grown),
					TestSize: test.NumRows,
				},
				timing: RankTiming{Rank: rank, Train: trainElapsed, Inference: inferenceElapsed},
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cluster: run: %w", err)
	}
	close(gatherCh)

	// the coordinator (rank 0) only now gathers: every rank's goroutine has
	// already sent and returned, acting as the barrier spec.md §5 requires
	// immediately after the timed region.
	trees := make([]*tree.Node, cfg.Forest.NumTrees)
	processPreds := make([]ProcessPredictions, cfg.NumProcesses)
	timing := make([]RankTiming, cfg.NumProcesses)

	for out := range gatherCh {
		for gIdx, t := range out.trees {
			trees[gIdx] = t
		}
		processPreds[out.rank] = out.preds
		timing[out.rank] = out.timing
	}

	// rank 0 recomputes its own stratified test split to report against;
	// every rank's split is identical by construction (phase 2).
	_, test := dataset.StratifiedSplit(full, numClasses, cfg.TrainProportion, cfg.Seed)

	aggregated := Aggregate(processPreds, numClasses)

	return &Result{
		Test:          test,
		Trees:         trees,
		Predictions:   aggregated,
		ProcessTiming: timing,
	}, nil
}

// MaxTiming reduces per-rank timings to their maximum, per spec.md §5's
// "MPI_Barrier then MPI_Reduce(..., MPI_MAX, ...)" pattern for a clean
// cross-process timing comparison.
func MaxTiming(timing []RankTiming) (train, inference time.Duration) {
	for _, t := range timing {
		if t.Train > train {
			train = t.Train
		}
		if t.Inference > inference {
			inference = t.Inference
		}
	}
	return train, inference
}

func broadcastDataset(d *dataset.Dataset) *dataset.Dataset {
	cp := make([]float32, len(d.Data))
	copy(cp, d.Data)
	return &dataset.Dataset{Data: cp, NumRows: d.NumRows, NumCols: d.NumCols}
}
