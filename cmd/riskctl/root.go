package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/config"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/di"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/rebalancing"
	"github.com/Gonzalodlm/proyecto-L-v2/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// app carries the global flags and the lazily wired engine
type app struct {
	catalogPath  string
	sumTolerance float64
	threshold    float64
	riskFreeRate float64
	logLevel     string
	format       string

	log       zerolog.Logger
	container *di.Container
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "riskctl",
		Short:         "Risk profiling and portfolio construction engine CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.format = strings.ToLower(a.format)
			if a.format != formatJSON && a.format != formatYAML {
				return fmt.Errorf("unsupported output format %q (want json or yaml)", a.format)
			}
			// Logs go to stderr so stdout stays machine-readable
			a.log = logger.New(logger.Config{
				Level:  a.logLevel,
				Pretty: true,
				Output: cmd.ErrOrStderr(),
			})
			logger.SetGlobalLogger(a.log)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.catalogPath, "catalog", os.Getenv("CATALOG_PATH"), "catalog YAML file (default: embedded catalog)")
	flags.Float64Var(&a.sumTolerance, "sum-tolerance", 0, "allocation sum tolerance (default: catalog value)")
	flags.Float64Var(&a.threshold, "threshold", rebalancing.DefaultThreshold, "default rebalancing drift threshold")
	flags.Float64Var(&a.riskFreeRate, "risk-free-rate", 0, "default annual risk-free rate")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVarP(&a.format, "output", "o", formatJSON, "output format (json or yaml)")

	root.AddCommand(
		scoreCmd(a, false),
		scoreCmd(a, true),
		composeCmd(a),
		analyzeCmd(a),
		rebalanceCmd(a),
		metricsCmd(a),
		compareCmd(a),
		catalogCmd(a),
		versionCmd(),
	)
	return root
}

// engine wires the container on first use
func (a *app) engine() (*di.Container, error) {
	if a.container != nil {
		return a.container, nil
	}
	cfg := &config.Config{
		CatalogPath:    a.catalogPath,
		DriftThreshold: a.threshold,
		RiskFreeRate:   a.riskFreeRate,
		SumTolerance:   a.sumTolerance,
	}
	container, err := di.Wire(cfg, a.log)
	if err != nil {
		return nil, err
	}
	a.container = container
	return container, nil
}

// readInput decodes a JSON or YAML document from path ("-" for stdin) into v.
// YAML is first normalized to JSON so that request types keep a single set
// of field names.
func readInput(cmd *cobra.Command, path string, v interface{}) error {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}
	if doc == nil {
		return errors.New("input is empty")
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(normalized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}

// writeOutput renders v in the selected format on stdout
func (a *app) writeOutput(cmd *cobra.Command, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	out := cmd.OutOrStdout()

	if a.format == formatYAML {
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		blockStyle(&node)
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return enc.Close()
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	pretty.WriteByte('\n')
	_, err = out.Write(pretty.Bytes())
	return err
}

// blockStyle drops the flow and quoting styles a JSON source leaves on nodes
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the riskctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "riskctl %s\n", version)
			return err
		},
	}
}
