package splitter

import (
	"context"
	"math"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/clusterkit/nodesplit/internal/logging"
	"github.com/clusterkit/nodesplit/pkg/topology"
)

// EvenSplitter implements the Splitter interface by spreading both workloads
// across switches proportionally
type EvenSplitter struct{}

// NewEvenSplitter creates a new EvenSplitter instance.
func NewEvenSplitter() *EvenSplitter {
	return &EvenSplitter{}
}

// Split walks the switches in ascending identifier order and cuts each
// switch's sorted nodes between the workloads in proportion to what each side
// still needs. A switch holding more nodes than both remaining needs combined
// is instead cut by the originally requested ratio, then clamped to the
// needs. Allocated nodes left unassigned, by rounding or because the topology
// does not know them, are sorted and appended to workload B in full; that is
// how B reaches its exact total, while A stays best-effort under rounding.
func (s *EvenSplitter) Split(
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
	totalA, totalB := 0, 0
	assigned := sets.New[string]()

	for _, sw := range groups.SortedSwitches() {
		if totalA >= requestedA && totalB >= requestedB {
			break
		}
		nodes := sortedCopy(groups.Nodes(sw))
		n := len(nodes)
		needA := max(requestedA-totalA, 0)
		needB := max(requestedB-totalB, 0)

		var aCount, bCount int
		if n <= needA+needB {
			switch {
			case needA == 0:
				bCount = min(n, needB)
			case needB == 0:
				aCount = min(n, needA)
			default:
				aCount = min(roundRatio(n, needA, needB), needA)
				bCount = min(n-aCount, needB)
			}
		} else {
			// Oversupply: the cut follows the originally requested
			// ratio, not the remaining need.
			switch {
			case requestedA == 0:
				bCount = min(n, needB)
			case requestedB == 0:
				aCount = min(n, needA)
			default:
				aCount = min(roundRatio(n, requestedA, requestedB), needA)
				bCount = min(n-aCount, needB)
			}
		}

		workloadA = append(workloadA, nodes[:aCount]...)
		workloadB = append(workloadB, nodes[aCount:aCount+bCount]...)
		assigned.Insert(nodes[:aCount+bCount]...)
		totalA += aCount
		totalB += bCount
	}

	leftover := make([]string, 0)
	for _, node := range sortedAllocated(allocated) {
		if !assigned.Has(node) {
			leftover = append(leftover, node)
		}
	}
	if len(leftover) > 0 {
		logger.V(logging.DEBUG).Info("assigning unplaced nodes to workload B",
			"count", len(leftover))
		workloadB = append(workloadB, leftover...)
	}

	return Split{WorkloadA: workloadA, WorkloadB: workloadB}, nil
}

// roundRatio rounds n*a/(a+b) to the nearest integer.
func roundRatio(n, a, b int) int {
	return int(math.Round(float64(n) * float64(a) / float64(a+b)))
}
