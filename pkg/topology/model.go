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

// Distance values returned by Hierarchy.Distance. The metric encodes a
// two-tier fat-tree assumption: leaves under one parent are close,
// everything else meets at an unmodeled core level.
const (
	DistanceSameSwitch   = 0
	DistanceSharedParent = 1
	DistanceCore         = 2
)

// Hierarchy records parent and child adjacency between switches.
type Hierarchy struct {
	// Parents maps a leaf switch to its declared parent switches, in
	// declaration order. Non-leaf switches have no entry.
	Parents map[string][]string

	// Children maps a switch to the leaf switches declared under it,
	// insertion-ordered. A leaf declared twice under the same parent
	// appears twice; duplicates are tolerated, not deduplicated.
	Children map[string][]string
}

// NewHierarchy returns an empty Hierarchy.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{
		Parents:  make(map[string][]string),
		Children: make(map[string][]string),
	}
}

// AddLeaf records the parent list of a leaf switch verbatim and links the
// leaf as a child of each parent.
func (h *Hierarchy) AddLeaf(leaf string, parents []string) {
	h.Parents[leaf] = parents
	for _, parent := range parents {
		h.Children[parent] = append(h.Children[parent], leaf)
	}
}

// Distance returns the coarse locality distance between two switches: 0 for
// the same switch, 1 when their first-listed parents are equal, 2 otherwise.
// A switch with no recorded parent list has an unknown hierarchy position
// and is treated as maximally distant. Symmetric in its arguments.
func (h *Hierarchy) Distance(s1, s2 string) int {
	if s1 == s2 {
		return DistanceSameSwitch
	}
	p1 := h.Parents[s1]
	p2 := h.Parents[s2]
	if len(p1) == 0 || len(p2) == 0 {
		return DistanceCore
	}
	if p1[0] == p2[0] {
		return DistanceSharedParent
	}
	return DistanceCore
}

// Model is the topology view one partition run works against. Build
// constructs it; nothing mutates it afterwards.
type Model struct {
	// NodeSwitch maps a node name to the leaf switch owning it. A node
	// absent from the map is unknown to the topology.
	NodeSwitch map[string]string

	// Hierarchy is the switch parent/child adjacency.
	Hierarchy *Hierarchy
}
