// Package config materializes one run's settings from CLI flags, NODESPLIT_*
// environment variables and an optional YAML config file, in that precedence
// order, through a shared viper instance.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/clusterkit/nodesplit/pkg/splitter"
)

// Viper keys. They match the CLI flag names one to one, so pflag bindings,
// environment variables and config files all address the same setting.
const (
	KeyAllocatedNodesFile = "allocated-nodes-file"
	KeyNodes              = "nodes"
	KeyTopologyFile       = "topology-file"
	KeyStrategy           = "strategy"
	KeyWorkloadANodes     = "workload-a-nodes"
	KeyWorkloadBNodes     = "workload-b-nodes"
	KeyOutputFile         = "output-file"
	KeySummaryFile        = "summary-file"
	KeyMetricsFile        = "metrics-file"
	KeyLogLevel           = "log-level"
	KeyLogDev             = "log-dev"
)

// EnvPrefix is the prefix of the environment overrides, e.g.
// NODESPLIT_TOPOLOGY_FILE for topology-file.
const EnvPrefix = "nodesplit"

// sizeUnset marks a workload size the caller never provided. Zero is a legal
// size, so the sizes cannot default to it.
const sizeUnset = -1

// Config carries the effective settings of one partitioning run.
type Config struct {
	// AllocatedNodesFile is the path of the allocated-nodes text. Exactly one
	// of AllocatedNodesFile and Nodes must be set.
	AllocatedNodesFile string `yaml:"allocated-nodes-file"`

	// Nodes is a literal allocation, possibly in compressed hostlist syntax.
	Nodes string `yaml:"nodes"`

	// TopologyFile is the path of the switch topology text. Required.
	TopologyFile string `yaml:"topology-file"`

	// Strategy selects the partitioning strategy, "even" or "compact".
	Strategy string `yaml:"strategy"`

	// WorkloadANodes and WorkloadBNodes are the required workload sizes.
	// Both are mandatory and non-negative.
	WorkloadANodes int `yaml:"workload-a-nodes"`
	WorkloadBNodes int `yaml:"workload-b-nodes"`

	// OutputFile receives the two workload lines; empty means stdout.
	OutputFile string `yaml:"output-file"`

	// SummaryFile, when set, receives a YAML summary of the run.
	SummaryFile string `yaml:"summary-file"`

	// MetricsFile, when set, receives the run's gauges in prometheus text
	// exposition format (textfile-collector convention).
	MetricsFile string `yaml:"metrics-file"`

	// LogLevel is one of "error", "warn", "info", "debug", "trace".
	LogLevel string `yaml:"log-level"`

	// LogDev switches the logger to development encoding.
	LogDev bool `yaml:"log-dev"`
}

// NewViper builds the viper instance the entry point shares with tests:
// defaults registered and environment overrides live, with dashes in keys
// mapping to underscores in variable names. The caller binds its flag set
// and optional config file on top.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the defaulted settings on v. The workload sizes
// default to a sentinel so Validate can tell omitted from an explicit zero.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStrategy, splitter.CompactStrategy.String())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogDev, false)
	v.SetDefault(KeyWorkloadANodes, sizeUnset)
	v.SetDefault(KeyWorkloadBNodes, sizeUnset)
}

// Load reads the effective configuration out of v.
func Load(v *viper.Viper) *Config {
	return &Config{
		AllocatedNodesFile: v.GetString(KeyAllocatedNodesFile),
		Nodes:              v.GetString(KeyNodes),
		TopologyFile:       v.GetString(KeyTopologyFile),
		Strategy:           v.GetString(KeyStrategy),
		WorkloadANodes:     v.GetInt(KeyWorkloadANodes),
		WorkloadBNodes:     v.GetInt(KeyWorkloadBNodes),
		OutputFile:         v.GetString(KeyOutputFile),
		SummaryFile:        v.GetString(KeySummaryFile),
		MetricsFile:        v.GetString(KeyMetricsFile),
		LogLevel:           v.GetString(KeyLogLevel),
		LogDev:             v.GetBool(KeyLogDev),
	}
}

// Validate checks for invalid or missing configuration values.
func (c *Config) Validate() error {
	if _, err := splitter.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if c.TopologyFile == "" {
		return fmt.Errorf("%s is required", KeyTopologyFile)
	}
	switch {
	case c.AllocatedNodesFile == "" && c.Nodes == "":
		return fmt.Errorf("one of %s or %s is required", KeyAllocatedNodesFile, KeyNodes)
	case c.AllocatedNodesFile != "" && c.Nodes != "":
		return fmt.Errorf("%s and %s are mutually exclusive", KeyAllocatedNodesFile, KeyNodes)
	}
	if c.WorkloadANodes == sizeUnset {
		return fmt.Errorf("%s is required", KeyWorkloadANodes)
	}
	if c.WorkloadBNodes == sizeUnset {
		return fmt.Errorf("%s is required", KeyWorkloadBNodes)
	}
	if c.WorkloadANodes < 0 {
		return fmt.Errorf("%s must be >= 0, got %d", KeyWorkloadANodes, c.WorkloadANodes)
	}
	if c.WorkloadBNodes < 0 {
		return fmt.Errorf("%s must be >= 0, got %d", KeyWorkloadBNodes, c.WorkloadBNodes)
	}
	return nil
}
