package splitter

import (
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/clusterkit/nodesplit/pkg/topology"
)

// sortedCopy returns the nodes in ascending order without disturbing the
// grouping's own order.
func sortedCopy(nodes []string) []string {
	out := make([]string, len(nodes))
	copy(out, nodes)
	sort.Strings(out)
	return out
}

// sortedAllocated returns the distinct allocated nodes in ascending order,
// including nodes the topology does not know.
func sortedAllocated(allocated []string) []string {
	return sets.List(sets.New(allocated...))
}

// mergeSorted returns every grouped node as one ascending list.
func mergeSorted(groups *topology.Groups) []string {
	all := make([]string, 0, groups.Total())
	for _, sw := range groups.Switches() {
		all = append(all, groups.Nodes(sw)...)
	}
	sort.Strings(all)
	return all
}

// singleSwitchSplit handles an allocation sitting entirely under one leaf
// switch: there is nothing to balance, so the sorted node list is cut at the
// requested sizes. Nodes beyond requestedA+requestedB are left out.
func singleSwitchSplit(groups *topology.Groups, requestedA, requestedB int) Split {
	all := mergeSorted(groups)
	aEnd := min(requestedA, len(all))
	bEnd := min(requestedA+requestedB, len(all))
	return Split{
		WorkloadA: all[:aEnd],
		WorkloadB: all[aEnd:bEnd],
	}
}
