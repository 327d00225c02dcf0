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

package e2e

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/clusterkit/nodesplit/internal/logging"
	"github.com/clusterkit/nodesplit/internal/planner"
	"github.com/clusterkit/nodesplit/internal/report"
	"github.com/clusterkit/nodesplit/internal/source"
	"github.com/clusterkit/nodesplit/pkg/splitter"
	"github.com/clusterkit/nodesplit/pkg/topology"
)

// Fixture fabric: hgx-leaf01 and hgx-leaf02 share spine01, pool-leaf07 sits
// behind its own spine. Ten nodes in total.
const topologyFixture = `SwitchName=hgx-leaf01 Level=0 Switches=spine01,spine02 Nodes=hgx-isr1-[001-004]
SwitchName=hgx-leaf02 Level=0 Switches=spine01 Nodes=hgx-isr2-[001-003]
SwitchName=pool-leaf07 Level=0 Switches=spine07 Nodes=pool1-1195,pool1-[2110-2111]
SwitchName=spine01 Level=1 Switches=hgx-leaf01,hgx-leaf02
`

const allocatedFixture = `hgx-isr1-001 hgx-isr1-002 hgx-isr1-003 hgx-isr1-004
hgx-isr2-[001-003]
pool1-1195 pool1-2110 pool1-2111
`

var _ = Describe("nodesplit pipeline", func() {
	var (
		ctx       context.Context
		dir       string
		p         *planner.Planner
		model     *topology.Model
		allocated []string
	)

	loadInputs := func() (*topology.Model, []string) {
		text, err := source.FileTopology{Path: filepath.Join(dir, "topology.conf")}.Text()
		Expect(err).NotTo(HaveOccurred())
		m, err := topology.Build(text)
		Expect(err).NotTo(HaveOccurred())

		nodes, err := source.FileNodes{Path: filepath.Join(dir, "allocated_nodes.txt")}.Nodes()
		Expect(err).NotTo(HaveOccurred())
		return m, nodes
	}

	BeforeEach(func() {
		ctx = context.Background()
		dir = GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "topology.conf"),
			[]byte(topologyFixture), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "allocated_nodes.txt"),
			[]byte(allocatedFixture), 0o644)).To(Succeed())

		model, allocated = loadInputs()
		Expect(allocated).To(HaveLen(10))

		p = planner.New(logging.NewTestLogger())
	})

	Context("compact strategy", func() {
		It("concentrates workload A near the seed switch", func() {
			result, err := p.Plan(ctx, allocated, model, planner.Request{
				Strategy:       splitter.CompactStrategy,
				WorkloadANodes: 5,
				WorkloadBNodes: 3,
			})
			Expect(err).NotTo(HaveOccurred())

			var out bytes.Buffer
			Expect(report.WriteSplit(&out, result.Split)).To(Succeed())
			Expect(out.String()).To(Equal(
				"hgx-isr1-001,hgx-isr2-001,hgx-isr2-002,hgx-isr2-003,pool1-1195\n" +
					"hgx-isr1-002,hgx-isr1-003,hgx-isr1-004\n"))

			Expect(result.WorkloadASwitches).To(Equal(
				[]string{"hgx-leaf01", "hgx-leaf02", "pool-leaf07"}))
			Expect(result.WorkloadBSwitches).To(Equal([]string{"hgx-leaf01"}))
			Expect(result.MissingFromTopology).To(BeZero())
		})
	})

	Context("even strategy", func() {
		It("spreads both workloads across every switch", func() {
			result, err := p.Plan(ctx, allocated, model, planner.Request{
				Strategy:       splitter.EvenStrategy,
				WorkloadANodes: 5,
				WorkloadBNodes: 5,
			})
			Expect(err).NotTo(HaveOccurred())

			var out bytes.Buffer
			Expect(report.WriteSplit(&out, result.Split)).To(Succeed())
			Expect(out.String()).To(Equal(
				"hgx-isr1-001,hgx-isr1-002,hgx-isr2-001,hgx-isr2-002,pool1-1195\n" +
					"hgx-isr1-003,hgx-isr1-004,hgx-isr2-003,pool1-2110,pool1-2111\n"))

			Expect(result.WorkloadASwitches).To(Equal(
				[]string{"hgx-leaf01", "hgx-leaf02", "pool-leaf07"}))
			Expect(result.WorkloadBSwitches).To(Equal(
				[]string{"hgx-leaf01", "hgx-leaf02", "pool-leaf07"}))
		})

		It("writes the YAML summary and the metrics export", func() {
			req := planner.Request{
				Strategy:       splitter.EvenStrategy,
				WorkloadANodes: 5,
				WorkloadBNodes: 5,
			}
			result, err := p.Plan(ctx, allocated, model, req)
			Expect(err).NotTo(HaveOccurred())

			summary := report.NewSummary(req, result)

			var yamlOut bytes.Buffer
			Expect(summary.WriteYAML(&yamlOut)).To(Succeed())
			Expect(yamlOut.String()).To(MatchYAML(`
strategy: even
workloadA:
  requested: 5
  actual: 5
  switches: [hgx-leaf01, hgx-leaf02, pool-leaf07]
workloadB:
  requested: 5
  actual: 5
  switches: [hgx-leaf01, hgx-leaf02, pool-leaf07]
missingFromTopology: 0
`))

			var metricsOut bytes.Buffer
			Expect(summary.WriteMetrics(&metricsOut)).To(Succeed())
			Expect(metricsOut.String()).To(ContainSubstring(
				`nodesplit_workload_nodes{workload="a"} 5`))
			Expect(metricsOut.String()).To(ContainSubstring(
				`nodesplit_switches_spanned{workload="b"} 3`))
			Expect(metricsOut.String()).To(ContainSubstring(
				"nodesplit_missing_from_topology 0"))
		})
	})

	Context("with nodes the topology does not know", func() {
		It("plans around them and reports the count", func() {
			nodes, err := source.LiteralNodes{Spec: "hgx-isr1-[001-004] front-end-9"}.Nodes()
			Expect(err).NotTo(HaveOccurred())
			Expect(nodes).To(HaveLen(5))

			result, err := p.Plan(ctx, nodes, model, planner.Request{
				Strategy:       splitter.CompactStrategy,
				WorkloadANodes: 3,
				WorkloadBNodes: 1,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.MissingFromTopology).To(Equal(1))
			Expect(result.Split.WorkloadA).To(Equal(
				[]string{"hgx-isr1-001", "hgx-isr1-002", "hgx-isr1-003"}))
			Expect(result.Split.WorkloadB).To(Equal([]string{"hgx-isr1-004"}))
		})
	})

	Context("rerunning on the same inputs", func() {
		It("produces identical output bytes", func() {
			var outputs []string
			for i := 0; i < 3; i++ {
				m, nodes := loadInputs()
				result, err := p.Plan(ctx, nodes, m, planner.Request{
					Strategy:       splitter.CompactStrategy,
					WorkloadANodes: 5,
					WorkloadBNodes: 3,
				})
				Expect(err).NotTo(HaveOccurred())

				var out bytes.Buffer
				Expect(report.WriteSplit(&out, result.Split)).To(Succeed())
				outputs = append(outputs, out.String())
			}
			Expect(outputs[1]).To(Equal(outputs[0]))
			Expect(outputs[2]).To(Equal(outputs[0]))
		})
	})

	Context("when the allocation cannot cover the request", func() {
		It("fails without writing anything", func() {
			_, err := p.Plan(ctx, allocated, model, planner.Request{
				Strategy:       splitter.CompactStrategy,
				WorkloadANodes: 8,
				WorkloadBNodes: 3,
			})
			Expect(err).To(MatchError(planner.ErrInsufficientNodes))
		})
	})
})
