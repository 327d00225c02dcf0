// Package planner orchestrates one partitioning run end to end.
//
// The planner follows a pipeline pattern:
//
//	Allocation → Switch Grouping → Strategy → Quota Check
//	 (source)      (topology)     (splitter)   (planner)
//
// The planner sits at the end, coordinating these components: it verifies
// the precondition (enough allocated nodes for both requested sizes), groups
// the allocation by leaf switch, dispatches the selected strategy and
// verifies that the strategy hit both quotas exactly.
//
// Example usage:
//
//	p := planner.New(logger)
//	result, err := p.Plan(ctx, allocated, model, planner.Request{
//	    Strategy:       splitter.CompactStrategy,
//	    WorkloadANodes: 4,
//	    WorkloadBNodes: 2,
//	})
//	if err != nil {
//	    return err
//	}
//
//	fmt.Println(strings.Join(result.Split.WorkloadA, ","))
//	fmt.Println(strings.Join(result.Split.WorkloadB, ","))
//
// Error Handling:
//
// A run is one-shot; nothing is retried. Failures surface as sentinel errors
// wrapped with context:
//   - ErrInsufficientNodes — the requested sizes exceed the allocation.
//   - ErrQuotaMismatch — the strategy came back with the wrong totals.
//
// Allocated nodes the topology does not know are not an error: they are
// counted in Result.MissingFromTopology, logged as a warning and left for
// the strategies' remainder handling.
package planner
