// Package pkg provides the core libraries for Kintrace lineage tracing.
//
// # Overview
//
// Kintrace marks the direct lineage through a family tree: it builds an
// undirected relationship graph from family records, finds the shortest path
// from a chosen root person to every relative, and annotates the records so
// the lineage is visible at a glance. The pkg directory is organized into
// these areas:
//
//  1. [family] - Data model, dataset decoding/encoding, validation
//  2. [kin] - The undirected relationship graph
//  3. [lineage] - Breadth-first tracing and record annotation
//  4. [pipeline] - Orchestration (load → trace → render) with caching
//  5. [cache] - File, Redis, and null cache backends
//  6. [render] - DOT, SVG, and PNG output
//
// # Architecture
//
// The typical data flow through Kintrace:
//
//	Dataset (JSON/TOML)
//	         ↓
//	family.Decode → kin.Build → lineage.Trace → lineage.Annotate
//	         ↓
//	render (JSON records, DOT/SVG/PNG graph)
//
// Supporting packages: [errors] for structured error codes, [buildinfo] for
// version metadata, [observability] for optional instrumentation hooks.
package pkg
