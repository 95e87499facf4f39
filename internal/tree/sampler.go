package tree

import "math/rand"

// newTreeRand constructs the per-tree RNG consumed in node-visit order by
// Grow, seeded deterministically from the tree's seed.
func newTreeRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// maxFeaturesKind tags how many features are drawn as split candidates at
// each node, per spec.md §4.2. Parsed once from the max_features flag into
// this tagged variant rather than dispatched dynamically every node visit,
// per spec.md §9's guidance to replace dynamic dispatch with tagged
// variants.
type maxFeaturesKind int

const (
	MaxFeaturesSqrt maxFeaturesKind = iota
	MaxFeaturesLog2
	MaxFeaturesFixed
)

// MaxFeatures is the parsed, validated form of the max_features flag.
type MaxFeatures struct {
	Kind  maxFeaturesKind
	Fixed int // only meaningful when Kind == MaxFeaturesFixed
}

// Count resolves MaxFeatures against the total feature count numFeatures,
// clamped to [1, numFeatures].
func (m MaxFeatures) Count(numFeatures int) int {
	var n int
	switch m.Kind {
	case MaxFeaturesSqrt:
		n = isqrt(numFeatures)
	case MaxFeaturesLog2:
		n = ilog2(numFeatures)
	case MaxFeaturesFixed:
		n = m.Fixed
	}
	if n < 1 {
		n = 1
	}
	if n > numFeatures {
		n = numFeatures
	}
	return n
}

func isqrt(n int) int {
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

func ilog2(n int) int {
	r := 0
	for v := n; v > 1; v >>= 1 {
		r++
	}
	return r
}

// sampleFeatures draws k distinct feature indices out of numFeatures via a
// partial Fisher-Yates shuffle, per spec.md §4.2.
func sampleFeatures(numFeatures, k int, rng *rand.Rand) []int {
	pool := make([]int, numFeatures)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(numFeatures-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
