package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/clusterkit/nodesplit/internal/logging"
	"github.com/clusterkit/nodesplit/pkg/splitter"
	"github.com/clusterkit/nodesplit/pkg/topology"
)

var (
	// ErrInsufficientNodes reports that the requested sizes exceed the
	// allocation. The check counts the allocation as given, duplicates and
	// off-topology nodes included.
	ErrInsufficientNodes = errors.New("insufficient allocated nodes")

	// ErrQuotaMismatch reports that the strategy did not produce exactly
	// the requested sizes. Strategies are best-effort on unfavorable
	// topologies, so the totals are verified after the fact.
	ErrQuotaMismatch = errors.New("workload quota mismatch")
)

// Request carries the parameters of one partitioning run.
type Request struct {
	// Strategy selects the partitioning strategy.
	Strategy splitter.Strategy

	// WorkloadANodes and WorkloadBNodes are the required workload sizes.
	// Both are mandatory and non-negative.
	WorkloadANodes int
	WorkloadBNodes int
}

// Result is the outcome of a successful run.
type Result struct {
	// Split holds the two workload node lists, each exactly the requested
	// size.
	Split splitter.Split

	// MissingFromTopology counts distinct allocated nodes the topology does
	// not know. Informational; the run proceeds without them.
	MissingFromTopology int

	// WorkloadASwitches and WorkloadBSwitches are the sorted unique leaf
	// switches each workload spans.
	WorkloadASwitches []string
	WorkloadBSwitches []string
}

// Planner coordinates precondition check, switch grouping, strategy dispatch
// and quota verification for one partitioning run.
type Planner struct {
	logger logr.Logger
}

// New creates a new Planner instance.
func New(logger logr.Logger) *Planner {
	return &Planner{logger: logger}
}

// Plan partitions allocated between the two workloads according to req. The
// allocation is taken as given: its order is visible to the strategies and
// the precondition counts raw entries.
func (p *Planner) Plan(
	ctx context.Context,
	allocated []string,
	model *topology.Model,
	req Request,
) (*Result, error) {
	if req.WorkloadANodes < 0 || req.WorkloadBNodes < 0 {
		return nil, fmt.Errorf("workload sizes must be non-negative, got %d and %d",
			req.WorkloadANodes, req.WorkloadBNodes)
	}
	requested := req.WorkloadANodes + req.WorkloadBNodes
	if requested > len(allocated) {
		return nil, fmt.Errorf("%w: requested %d, allocation holds %d",
			ErrInsufficientNodes, requested, len(allocated))
	}

	groups, missing := topology.GroupNodes(allocated, model)
	if missing > 0 {
		p.logger.Info("warning: allocated node(s) not found in topology",
			"count", missing)
	}
	for _, sw := range groups.SortedSwitches() {
		p.logger.V(logging.DEBUG).Info("switch group",
			"switch", sw, "nodes", len(groups.Nodes(sw)))
	}

	s, err := splitter.New(req.Strategy)
	if err != nil {
		return nil, err
	}
	split, err := s.Split(logr.NewContext(ctx, p.logger), allocated, groups, model,
		req.WorkloadANodes, req.WorkloadBNodes)
	if err != nil {
		return nil, fmt.Errorf("%v split: %w", req.Strategy, err)
	}

	if len(split.WorkloadA) != req.WorkloadANodes || len(split.WorkloadB) != req.WorkloadBNodes {
		return nil, fmt.Errorf("%w: strategy %v produced %d+%d nodes, requested %d+%d",
			ErrQuotaMismatch, req.Strategy,
			len(split.WorkloadA), len(split.WorkloadB),
			req.WorkloadANodes, req.WorkloadBNodes)
	}

	result := &Result{
		Split:               split,
		MissingFromTopology: missing,
		WorkloadASwitches:   switchesSpanned(split.WorkloadA, model),
		WorkloadBSwitches:   switchesSpanned(split.WorkloadB, model),
	}
	p.logger.V(logging.DEBUG).Info("split computed",
		"strategy", req.Strategy.String(),
		"workloadA", len(result.Split.WorkloadA),
		"workloadB", len(result.Split.WorkloadB),
		"switchesA", result.WorkloadASwitches,
		"switchesB", result.WorkloadBSwitches,
		"missingFromTopology", result.MissingFromTopology)

	return result, nil
}

// switchesSpanned returns the sorted unique leaf switches holding the nodes.
// Off-topology nodes span no switch and are skipped.
func switchesSpanned(nodes []string, model *topology.Model) []string {
	spanned := sets.New[string]()
	for _, node := range nodes {
		if sw, ok := model.NodeSwitch[node]; ok {
			spanned.Insert(sw)
		}
	}
	return sets.List(spanned)
}
