// Package serialize implements the portable binary tree layout of spec.md
// §4.8 via encoding/binary, used both for on-disk persistence and for
// shipping trained trees between processes. wlattner-rf serializes with
// encoding/gob (model.go's Save/Load); gob's self-describing wire format
// cannot produce this exact fixed-width, pre-order layout, so this package
// uses encoding/binary directly instead. See DESIGN.md for that
// dependency-drop justification.
package serialize

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/tree"
)

// nodeWire is the fixed, pre-order-recursive on-wire layout spec.md §4.8
// names: 8 signed-32-bit/float32 fields per node, 32 bytes total.
type nodeWire struct {
	Feature    int32
	Threshold  float32
	Pred       int32
	Entropy    float32
	Depth      int32
	NumSamples int32
	HasLeft    int32
	HasRight   int32
}

const nodeWireSize = 32

var byteOrder = binary.LittleEndian

// WriteTree encodes root in pre-order onto w, per spec.md §4.8. Every field
// is written little-endian regardless of the host's byte order, and ReadTree
// decodes with the same fixed order.
func WriteTree(w io.Writer, root *tree.Node) error {
	return writeNode(w, root)
}

func writeNode(w io.Writer, n *tree.Node) error {
	wire := nodeWire{
		Feature:    int32(n.FeatureIndex),
		Threshold:  n.Threshold,
		Pred:       int32(n.Pred),
		Entropy:    float32(n.Entropy),
		Depth:      int32(n.Depth),
		NumSamples: int32(n.NumSamples),
		HasLeft:    boolToInt32(n.Left != nil),
		HasRight:   boolToInt32(n.Right != nil),
	}

	if err := binary.Write(w, byteOrder, &wire); err != nil {
		return fmt.Errorf("serialize: writing node: %w", err)
	}

	if n.Left != nil {
		if err := writeNode(w, n.Left); err != nil {
			return err
		}
	}
	if n.Right != nil {
		if err := writeNode(w, n.Right); err != nil {
			return err
		}
	}

	return nil
}

// ReadTree decodes a pre-order tree previously written by WriteTree.
func ReadTree(r io.Reader) (*tree.Node, error) {
	return readNode(r)
}

func readNode(r io.Reader) (*tree.Node, error) {
	var wire nodeWire
	if err := binary.Read(r, byteOrder, &wire); err != nil {
		return nil, fmt.Errorf("serialize: reading node: %w", err)
	}

	n := &tree.Node{
		FeatureIndex: int(wire.Feature),
		Threshold:    wire.Threshold,
		Pred:         int(wire.Pred),
		Entropy:      float64(wire.Entropy),
		Depth:        int(wire.Depth),
		NumSamples:   int(wire.NumSamples),
	}

	if wire.HasLeft != 0 {
		left, err := readNode(r)
		if err != nil {
			return nil, err
		}
		n.Left = left
	}
	if wire.HasRight != 0 {
		right, err := readNode(r)
		if err != nil {
			return nil, err
		}
		n.Right = right
	}

	return n, nil
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
