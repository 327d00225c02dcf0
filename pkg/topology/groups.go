/*
Copyright 2025 The clusterkit Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package topology

import (
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Groups holds the allocated nodes found under each leaf switch. Switch
// iteration order is the order switches were first encountered in the
// allocation; downstream tie-breaks depend on it, so Groups never exposes
// raw map iteration. SortedSwitches gives the lexicographic view.
type Groups struct {
	order []string
	nodes map[string][]string
}

// NewGroups returns an empty Groups.
func NewGroups() *Groups {
	return &Groups{nodes: make(map[string][]string)}
}

// Add appends node to the group for sw, registering sw on first use.
func (g *Groups) Add(sw, node string) {
	if _, ok := g.nodes[sw]; !ok {
		g.order = append(g.order, sw)
	}
	g.nodes[sw] = append(g.nodes[sw], node)
}

// Switches returns the switch identifiers in first-encounter order.
func (g *Groups) Switches() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// SortedSwitches returns the switch identifiers in ascending lexicographic
// order.
func (g *Groups) SortedSwitches() []string {
	out := g.Switches()
	sort.Strings(out)
	return out
}

// Nodes returns the nodes grouped under sw, in the order they were added.
func (g *Groups) Nodes(sw string) []string {
	return g.nodes[sw]
}

// Len returns the number of switches holding at least one node.
func (g *Groups) Len() int {
	return len(g.order)
}

// Total returns the number of grouped nodes across all switches.
func (g *Groups) Total() int {
	total := 0
	for _, nodes := range g.nodes {
		total += len(nodes)
	}
	return total
}

// GroupNodes buckets the allocated nodes by their leaf switch. Duplicate
// nodes are dropped on second sight. The second return value counts
// distinct allocated nodes absent from the topology; missing nodes are not
// an error, the caller decides how loudly to report them.
func GroupNodes(allocated []string, model *Model) (*Groups, int) {
	groups := NewGroups()
	seen := sets.New[string]()
	missing := 0
	for _, node := range allocated {
		if seen.Has(node) {
			continue
		}
		seen.Insert(node)
		sw, ok := model.NodeSwitch[node]
		if !ok {
			missing++
			continue
		}
		groups.Add(sw, node)
	}
	return groups, missing
}
