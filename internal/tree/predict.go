package tree

// Predict descends from n following row's feature comparisons until a leaf
// is reached and returns its majority-class prediction, per spec.md §4.1's
// "<= goes left" routing rule.
func Predict(n *Node, row []float32) int {
	for !n.IsLeaf() {
		if row[n.FeatureIndex] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Pred
}
