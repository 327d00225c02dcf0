package splitter

import (
	"context"
	"fmt"

	"github.com/clusterkit/nodesplit/pkg/topology"
)

// Splitter is an interface that defines the method for partitioning grouped
// nodes between the two workloads
type Splitter interface {
	// Split produces the workload A and workload B node lists. allocated is
	// the full allocation as read from the scheduler (order preserved, may
	// contain duplicates) and groups must be its switch grouping; allocated
	// nodes absent from the grouping can only enter workload B through the
	// unplaced-remainder step.
	Split(
		ctx context.Context,
		allocated []string,
		groups *topology.Groups,
		model *topology.Model,
		requestedA, requestedB int,
	) (Split, error)
}

// Strategy is an enumeration of the different strategies that can be used to
// split an allocation
type Strategy int

// enumeration of Strategy
const (
	EvenStrategy Strategy = iota
	CompactStrategy
)

// String returns the external selector name of the strategy.
func (s Strategy) String() string {
	switch s {
	case EvenStrategy:
		return "even"
	case CompactStrategy:
		return "compact"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps an external selector value to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "even":
		return EvenStrategy, nil
	case "compact":
		return CompactStrategy, nil
	default:
		return 0, fmt.Errorf("unsupported split strategy: %q (want \"even\" or \"compact\")", name)
	}
}

// New is a factory that creates a new Splitter based on the provided strategy
func New(strategy Strategy) (Splitter, error) {
	switch strategy {
	case EvenStrategy:
		return NewEvenSplitter(), nil
	case CompactStrategy:
		return NewCompactSplitter(), nil
	default:
		return nil, fmt.Errorf("unsupported split strategy: %v", strategy)
	}
}
