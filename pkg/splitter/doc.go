// Package splitter implements the partitioning strategies that divide an
// allocated node set between workload A and workload B.
//
// A strategy consumes the allocation, its switch grouping (topology.Groups),
// the switch hierarchy, and the two requested sizes, and produces the two
// node lists. Switch-aware placement works on the grouping alone; allocated
// nodes the topology does not know enter only through workload B's
// unplaced-remainder step. Strategies are pure: they hold no state across
// runs, perform no I/O, and given identical inputs produce byte-identical
// outputs.
//
// # Strategies
//
// Two strategies exist, selected through the Strategy enum and the New
// factory:
//
//   - even spreads both workloads across switches proportionally to the
//     remaining need of each side, so neither workload clusters on one part
//     of the fabric.
//   - compact concentrates workload A on the switch holding the most
//     allocated nodes and its nearest neighbors (by Hierarchy.Distance),
//     pushing workload B to whatever is left.
//
// Both special-case an allocation that sits entirely under one leaf switch:
// with nothing to balance, the sorted node list is cut at the requested
// sizes.
//
// # Quotas
//
// A strategy is not guaranteed to hit the requested sizes exactly on every
// topology; heavy rounding in even, or too few distinguishable nodes, can
// leave a side short. Strategies return what they produced; the caller
// verifies the quotas and treats a mismatch as fatal.
package splitter
