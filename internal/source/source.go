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

package source

import (
	"fmt"
	"os"
	"strings"

	"github.com/clusterkit/nodesplit/pkg/hostlist"
)

// NodeSource is the interface for pluggable allocation inputs.
// Implementations include FileNodes and LiteralNodes.
type NodeSource interface {
	// Name returns the unique name of this source (e.g., "file", "literal").
	Name() string

	// Nodes returns the allocated node names in input order, with any
	// compressed hostlist syntax expanded.
	Nodes() ([]string, error)
}

// TopologySource is the interface for pluggable topology inputs.
type TopologySource interface {
	// Name returns the unique name of this source.
	Name() string

	// Text returns the raw switch topology text.
	Text() (string, error)
}

// FileNodes reads a whitespace-separated allocation list from a file.
// Individual tokens may use compressed hostlist syntax.
type FileNodes struct {
	Path string
}

func (f FileNodes) Name() string { return "file" }

func (f FileNodes) Nodes() ([]string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading allocated nodes: %w", err)
	}
	return expandTokens(string(data))
}

// LiteralNodes carries the allocation inline, the way the --nodes flag
// supplies it.
type LiteralNodes struct {
	Spec string
}

func (l LiteralNodes) Name() string { return "literal" }

func (l LiteralNodes) Nodes() ([]string, error) {
	return expandTokens(l.Spec)
}

// FileTopology reads switch topology text from a file.
type FileTopology struct {
	Path string
}

func (f FileTopology) Name() string { return "file" }

func (f FileTopology) Text() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("reading topology: %w", err)
	}
	return string(data), nil
}

// expandTokens splits text on whitespace and expands every token; a token
// without bracket syntax passes through verbatim.
func expandTokens(text string) ([]string, error) {
	nodes := make([]string, 0)
	for _, token := range strings.Fields(text) {
		expanded, err := hostlist.ExpandSpec(token)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, expanded...)
	}
	return nodes, nil
}
