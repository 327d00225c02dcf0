// Package topology models a cluster's switch fabric as parsed from
// SLURM-style topology description text.
//
// The model is built once per run by Build and is read-only afterwards: a
// node to leaf-switch map plus parent/child switch adjacency. GroupNodes
// buckets an allocation by leaf switch, and Hierarchy.Distance gives the
// coarse 0/1/2 locality metric the partitioning strategies rank switches
// with.
//
// # Topology text
//
// Input is line oriented. Two shapes are recognized:
//
//	SwitchName=<id> Level=<int> [Switches=<csv of parents>]
//	Nodes=<hostlist spec>
//
// A switch declaration makes the named switch current; its parent list is
// recorded only for leaf (Level=0) switches. A node list attaches every
// expanded node to the current switch, overwriting earlier attachments
// (topology files may redeclare; the last declaration wins). Both shapes may
// share one physical line. Anything else is skipped.
package topology
