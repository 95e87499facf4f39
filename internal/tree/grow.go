package tree

import "math"

// GrowConfig holds the per-tree knobs spec.md §4.4 and §6 name.
type GrowConfig struct {
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     MaxFeatures
	NThreads        int
	Seed            int64
}

// Rows is the minimal view tree.Grow needs over a caller-owned dataset: a
// set of row indices plus accessors into the backing matrix. internal/forest
// supplies this over its per-tree sampled dataset.Dataset.
type Rows struct {
	Indices     []int
	NumFeatures int
	NumClasses  int
	Feature     func(f, rowIdx int) float32
	Label       func(rowIdx int) int
}

type growStackItem struct {
	node          *Node
	rows          []int
	depth         int
	parentEntropy float64
}

// Grow implements spec.md §4.4's Fresh -> Splitting -> (Internal | Leaf)
// state machine over a stack-based DFS, matching wlattner-rf's
// buildStack/stackItem pattern in tree/build.go. Node expansion order is
// left-before-right, so a single per-tree RNG consumed in visiting order
// (rather than one RNG per node) is sufficient for the determinism spec.md
// §5 requires, since that order never varies.
func Grow(rows Rows, cfg GrowConfig) *Node {
	root := &Node{
		FeatureIndex: -1,
		Pred:         -1,
		Entropy:      math.Inf(1),
		Depth:        0,
		NumSamples:   len(rows.Indices),
	}

	rng := newTreeRand(cfg.Seed)

	stack := []growStackItem{{root, rows.Indices, 0, math.Inf(1)}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, nodeRows, depth, parentEntropy := item.node, item.rows, item.depth, item.parentEntropy

		majority, pure := classSummary(nodeRows, rows.Label, rows.NumClasses)

		if len(nodeRows) < cfg.MinSamplesSplit || depth >= cfg.MaxDepth || pure {
			finalizeLeaf(n, majority, nodeRows, rows.Label, rows.NumClasses)
			continue
		}

		best := findBestSplit(nodeRows, rows.NumFeatures, rows.NumClasses, cfg.MaxFeatures, cfg.NThreads, rng, rows.Feature, rows.Label)

		if !best.found || best.entropy >= parentEntropy {
			finalizeLeaf(n, majority, nodeRows, rows.Label, rows.NumClasses)
			continue
		}

		leftRows, rightRows := partition(nodeRows, best.feature, best.threshold, rows.Feature)

		n.FeatureIndex = best.feature
		n.Threshold = best.threshold
		n.Entropy = best.entropy
		n.NumSamples = len(nodeRows)

		left := &Node{FeatureIndex: -1, Pred: -1, Depth: depth + 1}
		right := &Node{FeatureIndex: -1, Pred: -1, Depth: depth + 1}
		n.Left = left
		n.Right = right

		// push right first so left pops first, preserving left-before-right order.
		stack = append(stack, growStackItem{right, rightRows, depth + 1, best.entropy})
		stack = append(stack, growStackItem{left, leftRows, depth + 1, best.entropy})
	}

	return root
}

func finalizeLeaf(n *Node, pred int, rows []int, label func(int) int, numClasses int) {
	n.FeatureIndex = -1
	n.Left = nil
	n.Right = nil
	n.Pred = pred
	n.NumSamples = len(rows)
	n.Entropy = leafEntropy(rows, label, numClasses)
}

// classSummary returns the majority class over rows and whether the
// partition is class-pure (a single class present).
func classSummary(rows []int, label func(int) int, numClasses int) (majority int, pure bool) {
	counts := make([]int, numClasses)
	for _, r := range rows {
		counts[label(r)]++
	}
	majority = argmax(counts)
	seen := 0
	for _, c := range counts {
		if c > 0 {
			seen++
		}
	}
	return majority, seen <= 1
}

func leafEntropy(rows []int, label func(int) int, numClasses int) float64 {
	counts := make([]int, numClasses)
	for _, r := range rows {
		counts[label(r)]++
	}
	return shannonEntropy(counts, len(rows))
}

// partition deep-copies nodeRows into left (feature <= threshold) and right
// (feature > threshold) index slices, preserving source row order within
// each side, per spec.md §4.4.
func partition(rows []int, feature int, threshold float32, getFeature func(f, rowIdx int) float32) (left, right []int) {
	left = make([]int, 0, len(rows))
	right = make([]int, 0, len(rows))
	for _, r := range rows {
		if getFeature(feature, r) <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	return left, right
}
