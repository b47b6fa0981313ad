package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahertel/kintrace/pkg/pipeline"
)

// traceOpts holds the command-line flags for the trace command.
type traceOpts struct {
	input   string // dataset file path (JSON or TOML)
	sample  bool   // use the embedded sample dataset
	output  string // output file path (stdout if empty)
	noCache bool   // disable result caching
	refresh bool   // bypass cached results
}

// newTraceCmd creates the trace command, the core operation of kintrace.
// It marks every father, mother, and child on the shortest path between the
// root person and the rest of the family with a leading "*".
//
// The root may be given as the first argument; without it an interactive
// picker lists the dataset's people. The dataset comes from the second
// argument, --input, or --sample.
func newTraceCmd() *cobra.Command {
	var opts traceOpts

	cmd := &cobra.Command{
		Use:   "trace [root] [dataset]",
		Short: "Mark the direct lineage from a root person",
		Long: `Trace builds the relationship graph from a family dataset, finds the
shortest path from the root person to every reachable relative, and writes the
records back with direct-lineage names marked with "*".

A root that does not appear in the dataset is not an error: the records are
written back unchanged and a warning is logged.

Examples:
  kintrace trace Bob family.json            # Trace from Bob
  kintrace trace Bob --sample               # Trace the embedded sample
  kintrace trace --sample                   # Pick the root interactively
  kintrace trace Bob family.toml -o out.json`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ""
			if len(args) > 0 {
				root = args[0]
			}
			if len(args) > 1 {
				opts.input = args[1]
			}
			return runTrace(cmd.Context(), root, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "dataset file (JSON or TOML)")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "use the embedded sample dataset")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached results")

	return cmd
}

// runTrace executes the trace pipeline and writes the annotated dataset.
// When no root is given, it loads the dataset first and opens the
// interactive person picker.
func runTrace(ctx context.Context, root string, opts *traceOpts) error {
	logger := loggerFromContext(ctx)

	runner := newRunner(ctx, opts.noCache)
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Input:     opts.input,
		UseSample: opts.sample,
		Root:      root,
		Formats:   []string{pipeline.FormatJSON},
		Refresh:   opts.refresh,
	}

	if root == "" {
		records, err := runner.Load(ctx, pipeOpts)
		if err != nil {
			return err
		}
		picked, err := pickRoot(records)
		if err != nil {
			return err
		}
		if picked == "" {
			printInfo("No root selected")
			return nil
		}
		pipeOpts.Root = picked
		pipeOpts.Records = records
	}

	logger.Infof("Tracing lineage from %s", pipeOpts.Root)

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Traced %d of %d people", result.Stats.ReachedCount, result.Stats.PersonCount))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(result.Artifacts[pipeline.FormatJSON]); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Wrote annotated records")
		printFile(opts.output)
		printStats(result.Stats.PersonCount, result.Stats.KinshipCount, result.CacheInfo.TraceHit)
		printNextStep("Render the lineage", fmt.Sprintf("kintrace render %s %s -f svg", pipeOpts.Root, opts.input))
	}
	if !result.RootFound {
		printWarning("Root %q not found, records written unmarked", pipeOpts.Root)
	}
	return nil
}
