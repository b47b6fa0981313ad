package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahertel/kintrace/pkg/family"
	"github.com/ahertel/kintrace/pkg/kin"
	"github.com/ahertel/kintrace/pkg/render"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	input  string // dataset file path
	sample bool   // use the embedded sample dataset
	output string // output file path (stdout if empty)
}

// newGraphCmd creates the graph command for exporting the relationship graph.
// The graph is written as Graphviz DOT without any lineage marking, useful
// for inspecting how the dataset connects before choosing a root.
func newGraphCmd() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [dataset]",
		Short: "Build and export the relationship graph as DOT",
		Long: `Graph builds the undirected relationship graph from a family dataset and
writes it in Graphviz DOT format. Every person becomes a node; every
parent-child relation becomes an edge.

Examples:
  kintrace graph family.json
  kintrace graph --sample -o family.dot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.input = args[0]
			}
			return runGraph(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "dataset file (JSON or TOML)")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "use the embedded sample dataset")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runGraph loads the dataset, builds the graph, and writes it as DOT.
func runGraph(ctx context.Context, opts *graphOpts) error {
	logger := loggerFromContext(ctx)

	records, err := loadRecords(opts.input, opts.sample)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	g := kin.Build(records)
	prog.done(fmt.Sprintf("Built graph with %d people and %d kinships", g.PersonCount(), g.EdgeCount()))

	dot := render.ToDOT(g, nil, render.Options{})

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := fmt.Fprint(out, dot); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Wrote relationship graph")
		printFile(opts.output)
		printStats(g.PersonCount(), g.EdgeCount(), false)
	}
	return nil
}

// loadRecords reads a dataset from the given path, or returns the embedded
// sample. Exactly one source must be provided.
func loadRecords(input string, sample bool) ([]family.Record, error) {
	if sample {
		return family.Sample(), nil
	}
	if input == "" {
		return nil, fmt.Errorf("dataset file or --sample is required")
	}
	return family.DecodeFile(input)
}
