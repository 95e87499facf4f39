package tree

import "testing"

func rowsFromColumns(features [][]float32, labels []int, numClasses int) Rows {
	indices := make([]int, len(labels))
	for i := range indices {
		indices[i] = i
	}
	return Rows{
		Indices:     indices,
		NumFeatures: len(features),
		NumClasses:  numClasses,
		Feature:     func(f, rowIdx int) float32 { return features[f][rowIdx] },
		Label:       func(rowIdx int) int { return labels[rowIdx] },
	}
}

func TestGrowLinearlySeparableSplitsCleanly(t *testing.T) {
	feature0 := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	labels := []int{0, 0, 0, 1, 1, 1, 1, 1}
	rows := rowsFromColumns([][]float32{feature0}, labels, 2)

	root := Grow(rows, GrowConfig{
		MaxDepth:        10,
		MinSamplesSplit: 2,
		MaxFeatures:     MaxFeatures{Kind: MaxFeaturesFixed, Fixed: 1},
		NThreads:        1,
		Seed:            1,
	})

	if root.IsLeaf() {
		t.Fatal("expected root to split on a linearly separable feature")
	}
	if root.FeatureIndex != 0 {
		t.Error("expected split on feature 0, got:", root.FeatureIndex)
	}
	if root.Threshold != 3.5 {
		t.Error("expected threshold 3.5, got:", root.Threshold)
	}
	if root.Entropy != 0 {
		t.Error("expected a perfectly separating split to have entropy 0, got:", root.Entropy)
	}

	if !root.Left.IsLeaf() || root.Left.Pred != 0 {
		t.Error("expected left child to be a pure leaf predicting class 0, got:", root.Left)
	}
	if !root.Right.IsLeaf() || root.Right.Pred != 1 {
		t.Error("expected right child to be a pure leaf predicting class 1, got:", root.Right)
	}
	if root.Left.NumSamples != 3 || root.Right.NumSamples != 5 {
		t.Error("unexpected child sizes:", root.Left.NumSamples, root.Right.NumSamples)
	}
}

func TestGrowPureNodeStaysLeaf(t *testing.T) {
	feature0 := []float32{1, 2, 3, 4}
	labels := []int{1, 1, 1, 1}
	rows := rowsFromColumns([][]float32{feature0}, labels, 2)

	root := Grow(rows, GrowConfig{
		MaxDepth:        10,
		MinSamplesSplit: 2,
		MaxFeatures:     MaxFeatures{Kind: MaxFeaturesFixed, Fixed: 1},
		NThreads:        1,
		Seed:            1,
	})

	if !root.IsLeaf() {
		t.Fatal("expected a class-pure root to remain a leaf")
	}
	if root.Pred != 1 {
		t.Error("expected leaf prediction 1, got:", root.Pred)
	}
	if root.Entropy != 0 {
		t.Error("expected pure leaf entropy 0, got:", root.Entropy)
	}
}

func TestGrowBelowMinSamplesSplitStaysLeaf(t *testing.T) {
	feature0 := []float32{1, 2}
	labels := []int{0, 1}
	rows := rowsFromColumns([][]float32{feature0}, labels, 2)

	root := Grow(rows, GrowConfig{
		MaxDepth:        10,
		MinSamplesSplit: 3,
		MaxFeatures:     MaxFeatures{Kind: MaxFeaturesFixed, Fixed: 1},
		NThreads:        1,
		Seed:            1,
	})

	if !root.IsLeaf() {
		t.Fatal("expected a node below min_samples_split to stay a leaf")
	}
	if root.NumSamples != 2 {
		t.Error("expected leaf to retain both samples, got:", root.NumSamples)
	}
}

func TestGrowRespectsMaxDepth(t *testing.T) {
	feature0 := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	labels := []int{0, 0, 0, 0, 1, 1, 1, 1}
	rows := rowsFromColumns([][]float32{feature0}, labels, 2)

	root := Grow(rows, GrowConfig{
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MaxFeatures:     MaxFeatures{Kind: MaxFeaturesFixed, Fixed: 1},
		NThreads:        1,
		Seed:            1,
	})

	if !root.IsLeaf() {
		t.Fatal("expected max_depth=0 to force the root to be a leaf")
	}
}

func TestGrowConstantFeatureFailsToSplit(t *testing.T) {
	feature0 := []float32{1, 1, 1, 1}
	labels := []int{0, 1, 0, 1}
	rows := rowsFromColumns([][]float32{feature0}, labels, 2)

	root := Grow(rows, GrowConfig{
		MaxDepth:        10,
		MinSamplesSplit: 2,
		MaxFeatures:     MaxFeatures{Kind: MaxFeaturesFixed, Fixed: 1},
		NThreads:        1,
		Seed:            1,
	})

	if !root.IsLeaf() {
		t.Fatal("expected a node with no valid candidate split to become a leaf")
	}
}
