package tree

// jointSort stably sorts values ascending, permuting inx (a parallel
// row-index slice) in lock step, per spec.md §4.3's "sort jointly (stable
// merge sort)". Grounded on original_source/openmp_mpi/src/tree/
// train_utils.c's merge_sort/merge_sort_helper, rendered as a standard
// top-down merge sort rather than the manual array indexing of the C.
func jointSort(values []float32, inx []int) {
	n := len(values)
	if n < 2 {
		return
	}
	valBuf := make([]float32, n)
	inxBuf := make([]int, n)
	mergeSort(values, inx, valBuf, inxBuf, 0, n)
}

func mergeSort(values []float32, inx []int, valBuf []float32, inxBuf []int, lo, hi int) {
	if hi-lo < 2 {
		return
	}
	mid := lo + (hi-lo)/2
	mergeSort(values, inx, valBuf, inxBuf, lo, mid)
	mergeSort(values, inx, valBuf, inxBuf, mid, hi)
	merge(values, inx, valBuf, inxBuf, lo, mid, hi)
}

func merge(values []float32, inx []int, valBuf []float32, inxBuf []int, lo, mid, hi int) {
	copy(valBuf[lo:hi], values[lo:hi])
	copy(inxBuf[lo:hi], inx[lo:hi])

	i, j := lo, mid
	for k := lo; k < hi; k++ {
		switch {
		case i >= mid:
			values[k], inx[k] = valBuf[j], inxBuf[j]
			j++
		case j >= hi:
			values[k], inx[k] = valBuf[i], inxBuf[i]
			i++
		case valBuf[i] <= valBuf[j]:
			values[k], inx[k] = valBuf[i], inxBuf[i]
			i++
		default:
			values[k], inx[k] = valBuf[j], inxBuf[j]
			j++
		}
	}
}
