// nodesplit partitions a SLURM allocation into two workloads along the
// cluster's switch topology.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/clusterkit/nodesplit/internal/config"
	"github.com/clusterkit/nodesplit/internal/logging"
	"github.com/clusterkit/nodesplit/internal/planner"
	"github.com/clusterkit/nodesplit/internal/report"
	"github.com/clusterkit/nodesplit/internal/source"
	"github.com/clusterkit/nodesplit/pkg/splitter"
	"github.com/clusterkit/nodesplit/pkg/topology"
)

// Build-time variables, set via -ldflags.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "nodesplit",
		Short: "Partition a SLURM allocation into two workloads along switch topology",
		Long: `nodesplit partitions a SLURM allocation into two workloads using the
cluster's switch topology. It reads the allocated node list and the topology
text (scontrol show topology format), groups the nodes by their leaf switch
and cuts the allocation with the selected strategy:

  even     spread both workloads proportionally across every switch
  compact  concentrate workload A on as few nearby switches as possible

The result is written as two comma-separated lines: workload A, then
workload B.`,
		Example: `  nodesplit --topology-file topology.txt --allocated-nodes-file nodes.txt \
    --workload-a-nodes 12 --workload-b-nodes 4 --strategy compact`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := config.NewViper()
			if configFile != "" {
				v.SetConfigFile(configFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config file: %w", err)
				}
			}
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("binding flags: %w", err)
			}

			cfg := config.Load(v)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "optional YAML config file")
	flags.String(config.KeyAllocatedNodesFile, "", "file holding the allocated node list, whitespace separated, hostlist syntax allowed")
	flags.String(config.KeyNodes, "", "literal allocated node list, e.g. \"node-[01-04] gpu-07\"")
	flags.String(config.KeyTopologyFile, "", "file holding the switch topology (scontrol show topology format)")
	flags.String(config.KeyStrategy, splitter.CompactStrategy.String(), "partitioning strategy, \"even\" or \"compact\"")
	flags.Int(config.KeyWorkloadANodes, 0, "number of nodes for workload A (required)")
	flags.Int(config.KeyWorkloadBNodes, 0, "number of nodes for workload B (required)")
	flags.String(config.KeyOutputFile, "", "write the two workload lines here instead of stdout")
	flags.String(config.KeySummaryFile, "", "write a YAML run summary here")
	flags.String(config.KeyMetricsFile, "", "write run gauges here in prometheus text exposition format")
	flags.String(config.KeyLogLevel, "info", "log level: error, warn, info, debug or trace")
	flags.Bool(config.KeyLogDev, false, "use the development log encoding")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nodesplit %s (commit %s, built %s)\n", version, commit, buildDate)
		},
	}
}

// run executes one partitioning run end to end: load inputs, plan the split,
// write the outputs.
func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}

	strategy, err := splitter.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}

	var nodeSource source.NodeSource = source.FileNodes{Path: cfg.AllocatedNodesFile}
	if cfg.Nodes != "" {
		nodeSource = source.LiteralNodes{Spec: cfg.Nodes}
	}
	topologySource := source.FileTopology{Path: cfg.TopologyFile}

	logger.Info("loading inputs",
		"nodeSource", nodeSource.Name(),
		"topologyFile", cfg.TopologyFile,
		"strategy", strategy.String())

	allocated, err := nodeSource.Nodes()
	if err != nil {
		return err
	}
	text, err := topologySource.Text()
	if err != nil {
		return err
	}
	model, err := topology.Build(text)
	if err != nil {
		return err
	}

	req := planner.Request{
		Strategy:       strategy,
		WorkloadANodes: cfg.WorkloadANodes,
		WorkloadBNodes: cfg.WorkloadBNodes,
	}
	result, err := planner.New(logger).Plan(ctx, allocated, model, req)
	if err != nil {
		return err
	}

	if cfg.OutputFile == "" {
		if err := report.WriteSplit(os.Stdout, result.Split); err != nil {
			return err
		}
	} else if err := writeTo(cfg.OutputFile, func(w io.Writer) error {
		return report.WriteSplit(w, result.Split)
	}); err != nil {
		return err
	}

	summary := report.NewSummary(req, result)
	if cfg.SummaryFile != "" {
		if err := writeTo(cfg.SummaryFile, summary.WriteYAML); err != nil {
			return err
		}
	}
	if cfg.MetricsFile != "" {
		if err := writeTo(cfg.MetricsFile, summary.WriteMetrics); err != nil {
			return err
		}
	}

	logger.Info("run complete",
		"workloadANodes", len(result.Split.WorkloadA),
		"workloadBNodes", len(result.Split.WorkloadB),
		"missingFromTopology", result.MissingFromTopology)
	return nil
}

// writeTo writes through fn into path, creating or truncating it.
func writeTo(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
