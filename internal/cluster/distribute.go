package cluster

// DistributeTrees implements spec.md §4.6's contiguous tree-to-process
// assignment: process i gets floor(T/P) + (1 if i < T mod P else 0) trees,
// process 0 getting the first chunk and so on. Grounded on
// original_source/openmp_mpi/src/utils.c's distribute_trees.
func DistributeTrees(numTrees, numProcesses int) [][]int {
	base := numTrees / numProcesses
	rem := numTrees % numProcesses

	assignment := make([][]int, numProcesses)
	next := 0
	for p := 0; p < numProcesses; p++ {
		count := base
		if p < rem {
			count++
		}
		indices := make([]int, count)
		for i := range indices {
			indices[i] = next
			next++
		}
		assignment[p] = indices
	}

	return assignment
}
