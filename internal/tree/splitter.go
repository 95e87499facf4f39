package tree

import "math/rand"

// nodeSplit is the §4.3 BestSplit result for one node: the globally best
// (entropy, threshold, feature) across the sampled feature subset, plus the
// left/right sizes and majority-class predictions needed to grow children
// without re-scanning the partition.
type nodeSplit struct {
	found     bool
	feature   int
	threshold float32
	entropy   float64
	leftSize  int
	rightSize int
	leftPred  int
	rightPred int
}

// findBestSplit implements spec.md §4.3: sample m features, sort each
// jointly with the label column, run the §4.1 search, and keep the
// globally best (entropy, threshold, feature) with a secondary tie-break
// on smaller feature index.
//
// rows holds the row indices belonging to this node (a view into the
// tree's training sample); getFeature(f, rowIdx) returns that row's value
// for feature f, and getLabel(rowIdx) its class label.
func findBestSplit(
	rows []int,
	numFeatures, numClasses int,
	maxFeatures MaxFeatures,
	nThreads int,
	rng *rand.Rand,
	getFeature func(f, rowIdx int) float32,
	getLabel func(rowIdx int) int,
) nodeSplit {
	m := maxFeatures.Count(numFeatures)
	features := sampleFeatures(numFeatures, m, rng)

	n := len(rows)
	values := make([]float32, n)
	labels := make([]int, n)
	inx := make([]int, n)

	var best nodeSplit

	for _, f := range features {
		for i, r := range rows {
			values[i] = getFeature(f, r)
			labels[i] = getLabel(r)
			inx[i] = i
		}

		jointSort(values, inx)
		// labels must follow the same permutation as values.
		sortedLabels := make([]int, n)
		for i, srcIdx := range inx {
			sortedLabels[i] = labels[srcIdx]
		}

		cand := bestThresholdParallel(values, sortedLabels, numClasses, nThreads)
		if !cand.found {
			continue
		}

		if !best.found ||
			cand.entropy+entropyTolerance < best.entropy ||
			(absFloat64(cand.entropy-best.entropy) < entropyTolerance && (cand.threshold < best.threshold ||
				(cand.threshold == best.threshold && f < best.feature))) {
			best = nodeSplit{
				found:     true,
				feature:   f,
				threshold: cand.threshold,
				entropy:   cand.entropy,
				leftSize:  cand.leftSize,
				rightSize: cand.rightSize,
				leftPred:  cand.leftPred,
				rightPred: cand.rightPred,
			}
		}
	}

	return best
}

func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
