// Package forest owns a process's local share of the ensemble: the
// functional-options configuration, per-tree sampling and growth, and
// local inference over a held-out test set. See internal/cluster for how
// trees are distributed across processes and predictions are aggregated,
// and internal/serialize for the on-disk/wire tree format.
package forest

import (
	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/dataset"
	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/tree"
)

// treeSeedOffset separates the RNG stream used to draw a tree's training
// sample from the stream consumed while growing it, so that two
// conceptually distinct random choices never share a state. Both are
// derived from the same deterministic (base seed, global tree index) pair,
// so results never depend on process/thread assignment; see DESIGN.md's
// Open Questions entry on per-tree seeding.
const treeSeedOffset = 1_000_000_007

// Config is the immutable, validated forest configuration, generalizing
// wlattner-rf's forestConfiger functional-options pattern to the
// parameters spec.md §6 names.
type Config struct {
	NumTrees            int
	MaxDepth            int
	MinSamplesSplit     int
	MaxFeatures         tree.MaxFeatures
	NumThreads          int
	TrainTreeProportion float64
	Seed                int64
}

// forestConfiger is implemented by *Config; functional options close over
// it the way wlattner-rf/forest's options close over forestConfiger.
type forestConfiger interface {
	setNumTrees(int)
	setMaxDepth(int)
	setMinSamplesSplit(int)
	setMaxFeatures(tree.MaxFeatures)
	setNumThreads(int)
	setTrainTreeProportion(float64)
	setSeed(int64)
}

func (c *Config) setNumTrees(n int)                 { c.NumTrees = n }
func (c *Config) setMaxDepth(n int)                 { c.MaxDepth = n }
func (c *Config) setMinSamplesSplit(n int)          { c.MinSamplesSplit = n }
func (c *Config) setMaxFeatures(m tree.MaxFeatures) { c.MaxFeatures = m }
func (c *Config) setNumThreads(n int)               { c.NumThreads = n }
func (c *Config) setTrainTreeProportion(p float64)  { c.TrainTreeProportion = p }
func (c *Config) setSeed(s int64)                   { c.Seed = s }

// NumTrees sets T, the ensemble size.
func NumTrees(n int) func(forestConfiger) { return func(c forestConfiger) { c.setNumTrees(n) } }

// MaxDepth sets the per-tree depth cap.
func MaxDepth(n int) func(forestConfiger) { return func(c forestConfiger) { c.setMaxDepth(n) } }

// MinSamplesSplit sets the minimum node size eligible for splitting.
func MinSamplesSplit(n int) func(forestConfiger) {
	return func(c forestConfiger) { c.setMinSamplesSplit(n) }
}

// MaxFeatures sets the parsed max_features tagged variant.
func MaxFeatures(m tree.MaxFeatures) func(forestConfiger) {
	return func(c forestConfiger) { c.setMaxFeatures(m) }
}

// NumThreads sets the per-process split-search thread team size.
func NumThreads(n int) func(forestConfiger) { return func(c forestConfiger) { c.setNumThreads(n) } }

// TrainTreeProportion sets the per-tree sampling fraction.
func TrainTreeProportion(p float64) func(forestConfiger) {
	return func(c forestConfiger) { c.setTrainTreeProportion(p) }
}

// Seed sets the base RNG seed.
func Seed(s int64) func(forestConfiger) { return func(c forestConfiger) { c.setSeed(s) } }

// NewConfig returns a Config with the defaults below, as modified by
// options. TrainTreeProportion defaults to 1.0 (each tree samples the whole
// training split); the command-line default of 0.75 is applied by
// internal/rfconfig, which always sets it explicitly. Equivalent to:
//
//	NewConfig(NumTrees(10), MaxDepth(10), MinSamplesSplit(2),
//		MaxFeatures(tree.MaxFeatures{Kind: tree.MaxFeaturesSqrt}),
//		NumThreads(1), TrainTreeProportion(1.0), Seed(0))
func NewConfig(options ...func(forestConfiger)) *Config {
	c := &Config{
		NumTrees:            10,
		MaxDepth:            10,
		MinSamplesSplit:     2,
		MaxFeatures:         tree.MaxFeatures{Kind: tree.MaxFeaturesSqrt},
		NumThreads:          1,
		TrainTreeProportion: 1.0,
		Seed:                0,
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// datasetRows adapts a *dataset.Dataset into the tree.Rows view Grow needs.
func datasetRows(d *dataset.Dataset, indices []int) tree.Rows {
	return tree.Rows{
		Indices:     indices,
		NumFeatures: d.NumFeatures(),
		NumClasses:  0, // filled in by caller, who knows num_classes
		Feature:     func(f, rowIdx int) float32 { return d.Row(rowIdx)[f] },
		Label:       func(rowIdx int) int { return d.Label(rowIdx) },
	}
}

// GrowTree samples globalTreeIndex's training subset out of train and grows
// a single tree from it, per spec.md §4.4/§4.5. globalTreeIndex is the
// tree's position in the full forest-wide sequence [0, T), independent of
// which process or local slot it happens to occupy — see DESIGN.md's notes
// on why per-tree (not per-process) seeding is required for the
// determinism spec.md §5 demands.
func GrowTree(train *dataset.Dataset, numClasses, globalTreeIndex int, cfg *Config) *tree.Node {
	sampleSeed := cfg.Seed + int64(globalTreeIndex)
	growSeed := cfg.Seed + int64(globalTreeIndex) + treeSeedOffset

	sample := dataset.SampleWithoutReplacement(train, cfg.TrainTreeProportion, sampleSeed)

	indices := make([]int, sample.NumRows)
	for i := range indices {
		indices[i] = i
	}

	rows := datasetRows(sample, indices)
	rows.NumClasses = numClasses

	growCfg := tree.GrowConfig{
		MaxDepth:        cfg.MaxDepth,
		MinSamplesSplit: cfg.MinSamplesSplit,
		MaxFeatures:     cfg.MaxFeatures,
		NThreads:        cfg.NumThreads,
		Seed:            growSeed,
	}

	return tree.Grow(rows, growCfg)
}

// GrowAssigned sequentially grows every tree index in globalTreeIndices,
// per spec.md §4.6 phase 4 ("Local training of each assigned tree
// (independent; may be multi-threaded internally per §5)"): trees are
// grown one at a time, each internally parallel only across its own
// split-search thread team, never across trees within a process.
func GrowAssigned(train *dataset.Dataset, numClasses int, globalTreeIndices []int, cfg *Config) []*tree.Node {
	trees := make([]*tree.Node, len(globalTreeIndices))
	for i, gIdx := range globalTreeIndices {
		trees[i] = GrowTree(train, numClasses, gIdx, cfg)
	}
	return trees
}

// PredictLocal runs every local tree over every test row, producing the
// (num_local_trees x test_size) prediction matrix spec.md §4.6 phase 5
// describes, in row-major (tree, sample) order.
func PredictLocal(trees []*tree.Node, test *dataset.Dataset) []int {
	preds := make([]int, len(trees)*test.NumRows)
	for t, n := range trees {
		for i := 0; i < test.NumRows; i++ {
			preds[t*test.NumRows+i] = tree.Predict(n, test.Row(i))
		}
	}
	return preds
}
