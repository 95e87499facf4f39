// Package tree grows and evaluates a single decision tree: entropy-based
// greedy splitting with per-thread parallel split search, feature
// subsampling, and majority-class leaf prediction. See internal/forest for
// the ensemble that owns many of these, and internal/serialize for the
// on-disk binary layout.
package tree

// Node is one node of a grown tree, matching spec.md §3's Node entity.
// Internal nodes have FeatureIndex >= 0 and both children non-nil; leaves
// have FeatureIndex == -1 and both children nil.
type Node struct {
	FeatureIndex int
	Threshold    float32
	Left         *Node
	Right        *Node
	Pred         int
	Entropy      float64
	Depth        int
	NumSamples   int
}

// IsLeaf reports whether n is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// newLeaf builds a leaf node for a partition of the given size, entropy,
// depth, and majority-class prediction.
func newLeaf(pred int, entropy float64, depth, numSamples int) *Node {
	return &Node{
		FeatureIndex: -1,
		Pred:         pred,
		Entropy:      entropy,
		Depth:        depth,
		NumSamples:   numSamples,
	}
}
