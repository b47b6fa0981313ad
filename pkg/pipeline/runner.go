package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ahertel/kintrace/pkg/cache"
	"github.com/ahertel/kintrace/pkg/family"
	"github.com/ahertel/kintrace/pkg/kin"
	"github.com/ahertel/kintrace/pkg/lineage"
	"github.com/ahertel/kintrace/pkg/observability"
	"github.com/ahertel/kintrace/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// traceEnvelope is the serialized trace stage result used for caching.
type traceEnvelope struct {
	Records      []family.Record      `json:"records"`
	Predecessors lineage.Predecessors `json:"predecessors,omitempty"`
	RootFound    bool                 `json:"root_found"`
}

// Execute runs the complete load → trace → render pipeline with caching.
//
// A missing root person is a soft failure: the run completes with
// Result.RootFound set to false and the records passed through unmarked.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	runID := uuid.NewString()[:8]
	logger := r.logger(opts).With("run", runID)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	records, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.CacheInfo.LoadHit = loadHit
	result.DatasetHash = datasetHash(records)

	logger.Info("loaded dataset",
		"people", len(records),
		"duration", result.Stats.LoadTime)

	// Stage 2: Trace
	traceStart := time.Now()
	annotated, preds, traceHit, err := r.TraceWithCacheInfo(ctx, records, opts)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	result.Records = annotated
	result.Predecessors = preds
	result.RootFound = preds != nil
	result.Graph = kin.Build(records)
	result.Stats.TraceTime = time.Since(traceStart)
	result.Stats.PersonCount = result.Graph.PersonCount()
	result.Stats.KinshipCount = result.Graph.EdgeCount()
	result.Stats.ReachedCount = len(preds)
	result.CacheInfo.TraceHit = traceHit

	if result.RootFound {
		logger.Info("traced lineage",
			"root", opts.Root,
			"reached", result.Stats.ReachedCount,
			"duration", result.Stats.TraceTime)
	} else {
		logger.Warn("root person not found, passing records through unmarked",
			"root", opts.Root)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo decodes the dataset with caching and returns cache hit info.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) ([]family.Record, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}

	source := opts.Input
	if opts.Records != nil {
		source = "records"
	} else if opts.UseSample {
		source = "sample"
	}
	observability.Pipeline().OnLoadStart(ctx, source)
	start := time.Now()

	// Pre-loaded and sample datasets skip the cache entirely.
	if opts.Records != nil {
		records := family.Normalize(opts.Records)
		if err := family.Validate(records); err != nil {
			observability.Pipeline().OnLoadComplete(ctx, source, 0, time.Since(start), err)
			return nil, false, err
		}
		observability.Pipeline().OnLoadComplete(ctx, source, len(records), time.Since(start), nil)
		return records, false, nil
	}
	if opts.UseSample {
		records := family.Sample()
		observability.Pipeline().OnLoadComplete(ctx, source, len(records), time.Since(start), nil)
		return records, false, nil
	}

	raw, err := os.ReadFile(opts.Input)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, source, 0, time.Since(start), err)
		return nil, false, fmt.Errorf("read dataset: %w", err)
	}
	cacheKey := r.Keyer.DatasetKey(cache.Hash(raw))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var records []family.Record
			if err := json.Unmarshal(data, &records); err == nil {
				observability.Cache().OnCacheHit(ctx, "dataset")
				observability.Pipeline().OnLoadComplete(ctx, source, len(records), time.Since(start), nil)
				return records, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "dataset")
	}

	records, err := family.Decode(bytes.NewReader(raw), family.DetectFormat(opts.Input))
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, source, 0, time.Since(start), err)
		return nil, false, err
	}

	// Cache the decoded result
	if data, err := json.Marshal(records); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDataset)
		observability.Cache().OnCacheSet(ctx, "dataset", len(data))
	}

	observability.Pipeline().OnLoadComplete(ctx, source, len(records), time.Since(start), nil)
	return records, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) ([]family.Record, error) {
	records, _, err := r.LoadWithCacheInfo(ctx, opts)
	return records, err
}

// TraceWithCacheInfo builds the kinship graph, traces from the root, and
// annotates the records, with caching.
//
// The returned predecessors are nil when the root person is not in the
// dataset; the records then come back as unmarked canonical copies.
func (r *Runner) TraceWithCacheInfo(ctx context.Context, records []family.Record, opts Options) ([]family.Record, lineage.Predecessors, bool, error) {
	if err := opts.ValidateForTrace(); err != nil {
		return nil, nil, false, err
	}

	cacheKey := r.Keyer.TraceKey(datasetHash(records), opts.TraceKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var env traceEnvelope
			if err := json.Unmarshal(data, &env); err == nil {
				observability.Cache().OnCacheHit(ctx, "trace")
				if !env.RootFound {
					return env.Records, nil, true, nil
				}
				return env.Records, env.Predecessors, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "trace")
	}

	g := kin.Build(records)
	observability.Pipeline().OnTraceStart(ctx, opts.Root, g.PersonCount())
	start := time.Now()

	preds, err := lineage.Trace(g, opts.Root)
	if err != nil && !errors.Is(err, lineage.ErrRootNotFound) {
		observability.Pipeline().OnTraceComplete(ctx, opts.Root, 0, time.Since(start), err)
		return nil, nil, false, err
	}
	annotated := lineage.Annotate(records, preds)
	observability.Pipeline().OnTraceComplete(ctx, opts.Root, len(preds), time.Since(start), nil)

	// Cache the result
	env := traceEnvelope{
		Records:      annotated,
		Predecessors: preds,
		RootFound:    preds != nil,
	}
	if data, err := json.Marshal(env); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLTrace)
		observability.Cache().OnCacheSet(ctx, "trace", len(data))
	}

	return annotated, preds, false, nil // Cache miss
}

// Trace is a convenience wrapper that calls TraceWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Trace(ctx context.Context, records []family.Record, opts Options) ([]family.Record, lineage.Predecessors, error) {
	annotated, preds, _, err := r.TraceWithCacheInfo(ctx, records, opts)
	return annotated, preds, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	env := traceEnvelope{
		Records:      res.Records,
		Predecessors: res.Predecessors,
		RootFound:    res.RootFound,
	}
	envData, err := json.Marshal(env)
	if err != nil {
		return nil, false, fmt.Errorf("serialize trace for cache key: %w", err)
	}
	traceHash := cache.Hash(envData)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(traceHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	} else {
		allCached = false
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := r.renderAll(ctx, res, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(traceHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res *Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return artifacts, err
}

// renderAll produces every requested format from the trace result.
func (r *Runner) renderAll(ctx context.Context, res *Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	g := res.Graph
	if g == nil && opts.NeedsGraphOutput() {
		g = kin.Build(res.Records)
	}

	var dot string
	dotOpts := render.Options{Root: opts.Root, Highlight: opts.Highlight}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			if err := family.Encode(&buf, res.Records); err != nil {
				return nil, fmt.Errorf("encode records: %w", err)
			}
			artifacts[format] = buf.Bytes()
		case FormatDOT:
			if dot == "" {
				dot = render.ToDOT(g, res.Predecessors, dotOpts)
			}
			artifacts[format] = []byte(dot)
		case FormatSVG:
			if dot == "" {
				dot = render.ToDOT(g, res.Predecessors, dotOpts)
			}
			data, err := render.ToSVG(ctx, dot)
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[format] = data
		case FormatPNG:
			if dot == "" {
				dot = render.ToDOT(g, res.Predecessors, dotOpts)
			}
			data, err := render.ToPNG(ctx, dot)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = data
		}
	}

	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// datasetHash computes the content hash of the canonical dataset.
func datasetHash(records []family.Record) string {
	data, err := json.Marshal(records)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// logger returns the per-call logger from opts, falling back to the
// runner's own.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
