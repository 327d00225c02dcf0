package splitter

// Split is the result pair of a strategy run. A successful run satisfies
// len(WorkloadA) == requestedA and len(WorkloadB) == requestedB with the two
// lists disjoint, but strategies return whatever they produced and leave
// quota verification to the caller.
type Split struct {
	// WorkloadA is the node list for workload A.
	WorkloadA []string

	// WorkloadB is the node list for workload B.
	WorkloadB []string
}
