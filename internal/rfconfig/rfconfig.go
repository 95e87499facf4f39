// Package rfconfig parses and validates the command-line flags spec.md §6
// names into the typed configuration the rest of the module consumes.
// Configuration errors are reported here and bubble up as a non-nil error,
// per spec.md §7's "reported to standard error; exit 1 before any
// parallel work."
package rfconfig

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/forest"
	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/tree"
)

// Config is the fully parsed, validated run configuration.
type Config struct {
	DatasetPath         string
	NumClasses          int
	NumProcesses        int
	ThreadCount         int
	TrainProportion     float64
	TrainTreeProportion float64
	Seed                int64
	TrainedForestPath   string
	NewForestPath       string
	StorePredictions    string
	StoreMetrics        string

	Forest *forest.Config
}

// Flags is the raw, still-unvalidated set of values pflag populates.
type Flags struct {
	DatasetPath         string
	NumClasses          int
	NumTrees            int
	MaxDepth            int
	MinSamplesSplit     int
	MaxFeatures         string
	TrainProportion     float64
	TrainTreeProportion float64
	Seed                int64
	ThreadCount         int
	NumProcesses        int
	TrainedForestPath   string
	NewForestPath       string
	StorePredictions    string
	StoreMetrics        string
}

// RegisterFlags binds fs to f's fields, matching spec.md §6's flags and
// defaults. fs is typically a cobra command's Flags() set.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}

	fs.StringVar(&f.DatasetPath, "dataset_path", "data/classification_dataset.csv", "CSV input")
	fs.IntVar(&f.NumClasses, "num_classes", 0, "number of classes; <=0 infers from max(label)+1")
	fs.IntVar(&f.NumTrees, "num_trees", 10, "forest size")
	fs.IntVar(&f.MaxDepth, "max_depth", 10, "tree depth bound")
	fs.IntVar(&f.MinSamplesSplit, "min_samples_split", 2, "minimum node size eligible for splitting")
	fs.StringVar(&f.MaxFeatures, "max_features", "sqrt", "sqrt|log2|positive integer")
	fs.Float64Var(&f.TrainProportion, "train_proportion", 0.8, "train fraction for stratified split")
	fs.Float64Var(&f.TrainTreeProportion, "train_tree_proportion", 0.75, "per-tree subsample fraction")
	fs.Int64Var(&f.Seed, "seed", 0, "base RNG seed")
	fs.IntVar(&f.ThreadCount, "thread_count", 1, "threads per process")
	fs.IntVar(&f.NumProcesses, "num_processes", 1, "simulated MPI ranks")
	fs.StringVar(&f.TrainedForestPath, "trained_forest_path", "", "if set, load forest and only run inference")
	fs.StringVar(&f.NewForestPath, "new_forest_path", "output/model", "output forest directory")
	fs.StringVar(&f.StorePredictions, "store_predictions_path", "output/predictions.csv", "CSV of predictions")
	fs.StringVar(&f.StoreMetrics, "store_metrics_path", "output/metrics_output.txt", "metrics text file")

	return f
}

// Validate parses f's string/loosely-typed fields into a Config, per
// spec.md §7's configuration error taxonomy: a bad train_proportion,
// train_tree_proportion, or max_features value is reported and returned as
// an error, never panics or degrades silently.
func Validate(f *Flags) (*Config, error) {
	if f.TrainProportion <= 0 || f.TrainProportion >= 1 {
		return nil, fmt.Errorf("rfconfig: train_proportion must be in (0,1), got %v", f.TrainProportion)
	}
	if f.TrainTreeProportion <= 0 || f.TrainTreeProportion > 1 {
		return nil, fmt.Errorf("rfconfig: train_tree_proportion must be in (0,1], got %v", f.TrainTreeProportion)
	}
	if f.NumTrees < 1 {
		return nil, fmt.Errorf("rfconfig: num_trees must be >= 1, got %d", f.NumTrees)
	}
	if f.NumProcesses < 1 {
		return nil, fmt.Errorf("rfconfig: num_processes must be >= 1, got %d", f.NumProcesses)
	}
	if f.ThreadCount < 1 {
		return nil, fmt.Errorf("rfconfig: thread_count must be >= 1, got %d", f.ThreadCount)
	}
	if f.MinSamplesSplit < 2 {
		return nil, fmt.Errorf("rfconfig: min_samples_split must be >= 2, got %d", f.MinSamplesSplit)
	}

	maxFeatures, err := parseMaxFeatures(f.MaxFeatures)
	if err != nil {
		return nil, err
	}

	fc := forest.NewConfig(
		forest.NumTrees(f.NumTrees),
		forest.MaxDepth(f.MaxDepth),
		forest.MinSamplesSplit(f.MinSamplesSplit),
		forest.MaxFeatures(maxFeatures),
		forest.NumThreads(f.ThreadCount),
		forest.TrainTreeProportion(f.TrainTreeProportion),
		forest.Seed(f.Seed),
	)

	return &Config{
		DatasetPath:         f.DatasetPath,
		NumClasses:          f.NumClasses,
		NumProcesses:        f.NumProcesses,
		ThreadCount:         f.ThreadCount,
		TrainProportion:     f.TrainProportion,
		TrainTreeProportion: f.TrainTreeProportion,
		Seed:                f.Seed,
		TrainedForestPath:   f.TrainedForestPath,
		NewForestPath:       f.NewForestPath,
		StorePredictions:    f.StorePredictions,
		StoreMetrics:        f.StoreMetrics,
		Forest:              fc,
	}, nil
}

// parseMaxFeatures implements spec.md §4.2's tagged max_features parse:
// "sqrt", "log2", or a positive integer, parsed once rather than
// dispatched dynamically at every node visit.
func parseMaxFeatures(s string) (tree.MaxFeatures, error) {
	switch s {
	case "sqrt":
		return tree.MaxFeatures{Kind: tree.MaxFeaturesSqrt}, nil
	case "log2":
		return tree.MaxFeatures{Kind: tree.MaxFeaturesLog2}, nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return tree.MaxFeatures{}, fmt.Errorf("rfconfig: max_features must be \"sqrt\", \"log2\", or a positive integer, got %q", s)
		}
		return tree.MaxFeatures{Kind: tree.MaxFeaturesFixed, Fixed: n}, nil
	}
}
