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
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/clusterkit/nodesplit/pkg/hostlist"
)

// ErrMalformedTopology reports a switch declaration line that cannot be
// parsed. Unrecognized lines of any other shape are skipped, not errors.
var ErrMalformedTopology = errors.New("malformed topology")

var (
	switchRe  = regexp.MustCompile(`SwitchName=(\S+)\s+Level=(\d+)`)
	parentsRe = regexp.MustCompile(`Switches=(\S+)`)
)

// Build folds topology description text, line by line, into a Model. A
// switch declaration makes its switch current; node lists attach to the
// current switch. Node list expansion errors and unparsable switch
// declarations abort the build.
func Build(text string) (*Model, error) {
	model := &Model{
		NodeSwitch: make(map[string]string),
		Hierarchy:  NewHierarchy(),
	}

	current := ""
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "SwitchName=") {
			m := switchRe.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("%w: unparsable switch declaration %q",
					ErrMalformedTopology, strings.TrimSpace(line))
			}
			current = m[1]
			level, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, fmt.Errorf("%w: switch level in %q: %v",
					ErrMalformedTopology, strings.TrimSpace(line), err)
			}
			if level == 0 {
				if pm := parentsRe.FindStringSubmatch(line); pm != nil {
					model.Hierarchy.AddLeaf(current, strings.Split(pm[1], ","))
				}
			}
		}

		// A node list before any switch declaration has nothing to
		// attach to and is skipped like any unrecognized line.
		if strings.Contains(line, "Nodes=") && current != "" {
			nodes, err := hostlist.Expand(line)
			if err != nil {
				return nil, err
			}
			for _, node := range nodes {
				model.NodeSwitch[node] = current
			}
		}
	}
	return model, nil
}
