package tree

import "testing"

func TestPredictDescendsLeftOnLessEqual(t *testing.T) {
	root := &Node{
		FeatureIndex: 0,
		Threshold:    3.5,
		Left:         newLeaf(0, 0, 1, 3),
		Right:        newLeaf(1, 0, 1, 5),
	}

	if got := Predict(root, []float32{3.5}); got != 0 {
		t.Error("expected a value equal to the threshold to route left, got:", got)
	}
	if got := Predict(root, []float32{3.6}); got != 1 {
		t.Error("expected a value above the threshold to route right, got:", got)
	}
}

func TestPredictLeafReturnsOwnPred(t *testing.T) {
	leaf := newLeaf(2, 0, 0, 4)
	if got := Predict(leaf, []float32{100}); got != 2 {
		t.Error("expected a leaf to return its own prediction regardless of row, got:", got)
	}
}
