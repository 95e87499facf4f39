package dataset

import "math/rand"

// StratifiedSplit partitions d into train/test matrices preserving each
// class's proportion, per spec.md §4.5. Rows are bucketed by label (classes
// visited in ascending order), each bucket shuffled with Fisher-Yates seeded
// deterministically from seed, then the first floor(n_c*trainProportion)
// rows of each bucket go to train and the remainder to test.
func StratifiedSplit(d *Dataset, numClasses int, trainProportion float64, seed int64) (train, test *Dataset) {
	buckets := make([][]int, numClasses)
	for i := 0; i < d.NumRows; i++ {
		label := d.Label(i)
		buckets[label] = append(buckets[label], i)
	}

	rng := rand.New(rand.NewSource(seed))

	trainIdx := make([]int, 0, d.NumRows)
	testIdx := make([]int, 0, d.NumRows)

	for c := 0; c < numClasses; c++ {
		bucket := buckets[c]
		fisherYates(bucket, rng)

		numTrain := int(float64(len(bucket)) * trainProportion)
		trainIdx = append(trainIdx, bucket[:numTrain]...)
		testIdx = append(testIdx, bucket[numTrain:]...)
	}

	return materialize(d, trainIdx), materialize(d, testIdx)
}

func materialize(d *Dataset, idx []int) *Dataset {
	out := &Dataset{
		Data:    make([]float32, len(idx)*d.NumCols),
		NumRows: len(idx),
		NumCols: d.NumCols,
	}
	for i, rowIdx := range idx {
		copy(out.Data[i*d.NumCols:(i+1)*d.NumCols], d.Row(rowIdx))
	}
	return out
}

// fisherYates shuffles a in place, Algorithm P of Knuth Vol. 2.
func fisherYates(a []int, rng *rand.Rand) {
	for i := len(a) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}
