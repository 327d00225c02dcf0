package splitter

import (
	"context"
	"sort"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/clusterkit/nodesplit/internal/logging"
	"github.com/clusterkit/nodesplit/pkg/topology"
)

// CompactSplitter implements the Splitter interface by concentrating workload
// A on the largest switch and its nearest neighbors
type CompactSplitter struct{}

// NewCompactSplitter creates a new CompactSplitter instance.
func NewCompactSplitter() *CompactSplitter {
	return &CompactSplitter{}
}

// Split seeds workload A from the switch holding the most allocated nodes,
// hands up to requestedB of that switch's remainder to workload B, then fills
// A from the other switches in ascending distance from the seed switch.
// Shortfalls draw on the seed switch's reserve for A and on the sorted
// unplaced remainder of the allocation for B.
func (s *CompactSplitter) Split(
	ctx context.Context,
	allocated []string,
	groups *topology.Groups,
	model *topology.Model,
	requestedA, requestedB int,
) (Split, error) {
	logger := logr.FromContextOrDiscard(ctx)

	if groups.Len() == 1 {
		return singleSwitchSplit(groups, requestedA, requestedB), nil
	}

	workloadA := make([]string, 0)
	workloadB := make([]string, 0)

	// The largest switch; ties go to the one seen first in the grouping.
	largest := ""
	most := 0
	for _, sw := range groups.Switches() {
		if n := len(groups.Nodes(sw)); n > most {
			most = n
			largest = sw
		}
	}
	if largest == "" {
		logger.Info("no switch holds any allocated node, returning empty workloads")
		return Split{WorkloadA: workloadA, WorkloadB: workloadB}, nil
	}

	seed := sortedCopy(groups.Nodes(largest))
	logger.V(logging.DEBUG).Info("largest switch selected",
		"switch", largest, "nodes", len(seed))

	workloadA = append(workloadA, seed[0])
	reserve := seed[1:]

	fromSeed := min(requestedB, len(reserve))
	workloadB = append(workloadB, reserve[:fromSeed]...)
	reserve = reserve[fromSeed:]

	// Remaining switches ranked by distance from the seed switch.
	// Enumeration is in identifier order, so the stable sort breaks
	// distance ties by identifier.
	type rankedSwitch struct {
		name     string
		distance int
	}
	ranked := make([]rankedSwitch, 0, groups.Len()-1)
	for _, sw := range groups.SortedSwitches() {
		if sw == largest {
			continue
		}
		ranked = append(ranked, rankedSwitch{
			name:     sw,
			distance: model.Hierarchy.Distance(largest, sw),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].distance < ranked[j].distance
	})

	needed := requestedA - len(workloadA)
	for _, r := range ranked {
		if needed <= 0 {
			break
		}
		nodes := sortedCopy(groups.Nodes(r.name))
		if len(nodes) <= needed {
			workloadA = append(workloadA, nodes...)
			needed -= len(nodes)
			continue
		}
		workloadA = append(workloadA, nodes[:needed]...)
		needed = 0
	}

	// Workload A shortfall comes out of the seed switch's reserve.
	if needed > 0 {
		workloadA = append(workloadA, reserve[:min(needed, len(reserve))]...)
	}

	if shortB := requestedB - len(workloadB); shortB > 0 {
		placed := sets.New[string]()
		placed.Insert(workloadA...)
		placed.Insert(workloadB...)
		unplaced := make([]string, 0)
		for _, node := range sortedAllocated(allocated) {
			if !placed.Has(node) {
				unplaced = append(unplaced, node)
			}
		}
		workloadB = append(workloadB, unplaced[:min(shortB, len(unplaced))]...)
	}

	return Split{WorkloadA: workloadA, WorkloadB: workloadB}, nil
}
