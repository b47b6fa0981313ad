// Package pipeline provides the core lineage pipeline for Kintrace.
//
// This package implements the complete load → trace → render pipeline that
// can be used by CLI and scripted components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode family records from a dataset file or the built-in sample
//  2. Trace: Build the kinship graph and run a breadth-first trace from the
//     root person, then annotate records with lineage markers
//  3. Render: Generate output in various formats (JSON, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "family.json",
//	    Root:    "Bob",
//	    Formats: []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	annotated := result.Artifacts["json"]
//
// Run individual stages:
//
//	// Load only
//	records, err := runner.Load(ctx, opts)
//
//	// Trace with existing records
//	trace, err := runner.Trace(ctx, records, opts)
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ahertel/kintrace/pkg/cache"
	"github.com/ahertel/kintrace/pkg/errors"
	"github.com/ahertel/kintrace/pkg/family"
	"github.com/ahertel/kintrace/pkg/kin"
	"github.com/ahertel/kintrace/pkg/lineage"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Scripts
// =============================================================================

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the lineage pipeline.
// This struct supports JSON serialization for scripted use.
type Options struct {
	// Load options
	Input     string          `json:"input,omitempty"`  // Dataset file path (JSON or TOML)
	Records   []family.Record `json:"-"`                // Pre-loaded records (skips file I/O)
	UseSample bool            `json:"sample,omitempty"` // Use the built-in sample dataset
	Refresh   bool            `json:"refresh,omitempty"`

	// Trace options
	Root string `json:"root"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Highlight bool     `json:"highlight,omitempty"` // Emphasize lineage edges in graph output

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"` // Overrides the runner's logger for this call

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Records is the annotated dataset. When the root person is not found,
	// these are the unmarked canonical records.
	Records []family.Record

	// Graph is the kinship graph built from the dataset.
	Graph *kin.Graph

	// Predecessors maps each reachable person to their predecessor on the
	// shortest path to the root. Empty when the root was not found.
	Predecessors lineage.Predecessors

	// RootFound reports whether the root person exists in the dataset.
	RootFound bool

	// DatasetHash is the content hash of the canonical dataset.
	DatasetHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PersonCount  int
	KinshipCount int
	ReachedCount int
	LoadTime     time.Duration
	TraceTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the decoded dataset came from cache
	TraceHit  bool // Whether the trace result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForTrace(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading a dataset.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" && o.Records == nil && !o.UseSample {
		return fmt.Errorf("input file, records, or sample is required")
	}
	if o.Input != "" {
		if err := errors.ValidateDatasetPath(o.Input); err != nil {
			return err
		}
	}
	return nil
}

// ValidateForTrace checks required fields for tracing.
func (o *Options) ValidateForTrace() error {
	if o.Root == "" {
		return fmt.Errorf("root person is required")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// NeedsGraphOutput returns true when any requested format is a graph
// rendering rather than the annotated dataset itself.
func (o *Options) NeedsGraphOutput() bool {
	for _, f := range o.Formats {
		if f == FormatDOT || f == FormatSVG || f == FormatPNG {
			return true
		}
	}
	return false
}

// TraceKeyOpts returns cache key options for the trace stage.
func (o *Options) TraceKeyOpts() cache.TraceKeyOpts {
	return cache.TraceKeyOpts{
		Root: o.Root,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Highlight: o.Highlight,
	}
}
