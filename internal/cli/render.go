package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ahertel/kintrace/pkg/errors"
	"github.com/ahertel/kintrace/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input     string   // dataset file path
	sample    bool     // use the embedded sample dataset
	output    string   // output file (single format) or base path (multiple)
	formats   []string // output formats: "dot", "svg", "png"
	highlight bool     // emphasize lineage edges
	noCache   bool     // disable result caching
	refresh   bool     // bypass cached results
}

// newRenderCmd creates the render command for visualizing the lineage.
// It traces from the root and draws the relationship graph with the
// direct-lineage path emphasized.
//
// Default settings:
//   - format: svg
//   - highlight: true (lineage edges drawn bold, others dimmed)
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{highlight: true}

	cmd := &cobra.Command{
		Use:   "render <root> [dataset]",
		Short: "Render the lineage as DOT, SVG, or PNG",
		Long: `Render traces the lineage from the root person and draws the relationship
graph. The root node and the shortest-path lineage edges are emphasized;
relations off the lineage are dimmed.

Examples:
  kintrace render Bob family.json                 # SVG next to the dataset
  kintrace render Bob --sample -f png -o tree.png
  kintrace render Bob family.json -f dot,svg,png  # All formats`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				opts.input = args[1]
			}
			opts.formats = parseFormats(formatsStr)
			return runRenderCmd(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "dataset file (JSON or TOML)")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "use the embedded sample dataset")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", opts.highlight, "emphasize lineage edges")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached results")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// runRenderCmd executes the pipeline with graph output formats and writes
// each rendered artifact to its own file.
func runRenderCmd(ctx context.Context, root string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering lineage from %s", root)

	runner := newRunner(ctx, opts.noCache)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Tracing lineage from %s", root))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Input:     opts.input,
		UseSample: opts.sample,
		Root:      root,
		Formats:   opts.formats,
		Highlight: opts.highlight,
		Refresh:   opts.refresh,
	})
	if err != nil {
		spinner.StopWithError("Render failed: " + errors.UserMessage(err))
		return err
	}
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}
	spinner.StopWithSuccess(fmt.Sprintf("Traced %d of %d people",
		result.Stats.ReachedCount, result.Stats.PersonCount))

	if !result.RootFound {
		printWarning("Root %q not found, rendering without lineage", root)
	}

	base := renderBasePath(opts.output, opts.input, root)
	for _, format := range opts.formats {
		path := fmt.Sprintf("%s.%s", base, format)
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(result.Artifacts[format]); err != nil {
			out.Close()
			return err
		}
		out.Close()
		printFile(path)
	}

	printStats(result.Stats.PersonCount, result.Stats.KinshipCount, result.CacheInfo.RenderHit)
	return nil
}

// renderBasePath derives the base output path for rendered artifacts.
// It prefers the explicit output (extension stripped), then the dataset
// path, then the root person's name.
func renderBasePath(output, input, root string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	if input != "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return strings.ToLower(root)
}
