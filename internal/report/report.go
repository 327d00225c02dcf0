// Package report renders the outcome of a partitioning run: the two-line
// workload output every caller consumes, an optional YAML summary and an
// optional gauge export in prometheus text exposition format for textfile
// collectors.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"gopkg.in/yaml.v3"

	"github.com/clusterkit/nodesplit/internal/planner"
	"github.com/clusterkit/nodesplit/pkg/splitter"
)

// WriteSplit writes the output contract: exactly two lines, line one the
// comma-separated nodes of workload A, line two those of workload B.
func WriteSplit(w io.Writer, split splitter.Split) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n",
		strings.Join(split.WorkloadA, ","),
		strings.Join(split.WorkloadB, ","))
	if err != nil {
		return fmt.Errorf("writing split: %w", err)
	}
	return nil
}

// Summary condenses one run for the YAML summary file and the metrics
// export. It is only produced for runs the planner accepted, so Actual
// matches Requested on both sides.
type Summary struct {
	// Strategy is the selector name of the strategy that ran.
	Strategy string `yaml:"strategy"`

	// WorkloadA and WorkloadB describe the two sides of the split.
	WorkloadA Workload `yaml:"workloadA"`
	WorkloadB Workload `yaml:"workloadB"`

	// MissingFromTopology counts distinct allocated nodes the topology
	// does not know.
	MissingFromTopology int `yaml:"missingFromTopology"`
}

// Workload describes one side of the split.
type Workload struct {
	// Requested and Actual are the node counts asked for and produced.
	Requested int `yaml:"requested"`
	Actual    int `yaml:"actual"`

	// Switches is the sorted unique leaf switches the workload spans.
	// Nodes unknown to the topology span no switch.
	Switches []string `yaml:"switches"`
}

// NewSummary builds the Summary of a completed run.
func NewSummary(req planner.Request, result *planner.Result) Summary {
	return Summary{
		Strategy: req.Strategy.String(),
		WorkloadA: Workload{
			Requested: req.WorkloadANodes,
			Actual:    len(result.Split.WorkloadA),
			Switches:  result.WorkloadASwitches,
		},
		WorkloadB: Workload{
			Requested: req.WorkloadBNodes,
			Actual:    len(result.Split.WorkloadB),
			Switches:  result.WorkloadBSwitches,
		},
		MissingFromTopology: result.MissingFromTopology,
	}
}

// WriteYAML marshals the summary to w.
func (s Summary) WriteYAML(w io.Writer) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// WriteMetrics writes the run's gauges to w in prometheus text exposition
// format. The run is one-shot, so a fresh registry is gathered once and the
// result is suitable for a node-exporter textfile collector.
func (s Summary) WriteMetrics(w io.Writer) error {
	workloadNodes := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "nodesplit_workload_nodes",
		Help: "Nodes assigned to the workload.",
	}, []string{"workload"})
	switchesSpanned := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "nodesplit_switches_spanned",
		Help: "Distinct leaf switches the workload spans.",
	}, []string{"workload"})
	missing := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "nodesplit_missing_from_topology",
		Help: "Allocated nodes absent from the topology.",
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(workloadNodes, switchesSpanned, missing)

	workloadNodes.WithLabelValues("a").Set(float64(s.WorkloadA.Actual))
	workloadNodes.WithLabelValues("b").Set(float64(s.WorkloadB.Actual))
	switchesSpanned.WithLabelValues("a").Set(float64(len(s.WorkloadA.Switches)))
	switchesSpanned.WithLabelValues("b").Set(float64(len(s.WorkloadB.Switches)))
	missing.Set(float64(s.MissingFromTopology))

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return fmt.Errorf("encoding metric family %q: %w", family.GetName(), err)
		}
	}
	return nil
}
