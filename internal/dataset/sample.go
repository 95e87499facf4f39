package dataset

import "math/rand"

// SampleWithoutReplacement draws floor(len(train)*proportion) distinct rows
// from train via Fisher-Yates + prefix, per spec.md §4.5. Despite the name
// "bootstrap" in common random-forest usage, this system samples without
// replacement; see the glossary in spec.md.
func SampleWithoutReplacement(train *Dataset, proportion float64, seed int64) *Dataset {
	sampleSize := int(float64(train.NumRows) * proportion)

	idx := make([]int, train.NumRows)
	for i := range idx {
		idx[i] = i
	}

	rng := rand.New(rand.NewSource(seed))
	fisherYates(idx, rng)

	return materialize(train, idx[:sampleSize])
}
