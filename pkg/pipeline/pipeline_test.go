package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ahertel/kintrace/pkg/family"
)

// quietLogger returns a logger that discards all output.
func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// ===== Validation =====

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"invalid", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"json", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

// ===== Options =====

func TestOptionsValidateForLoad(t *testing.T) {
	// Missing all sources
	opts := Options{}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Missing input should fail")
	}

	// Input file
	opts = Options{Input: "family.json"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Input file should pass: %v", err)
	}

	// Sample dataset
	opts = Options{UseSample: true}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Sample should pass: %v", err)
	}

	// Pre-loaded records
	opts = Options{Records: []family.Record{{Name: "Ada"}}}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Records should pass: %v", err)
	}

	// Path traversal is rejected
	opts = Options{Input: "../secrets/family.json"}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Traversal path should fail")
	}
}

func TestOptionsValidateForTrace(t *testing.T) {
	opts := Options{UseSample: true}
	if err := opts.ValidateForTrace(); err == nil {
		t.Error("Missing root should fail")
	}

	opts.Root = "Bob"
	if err := opts.ValidateForTrace(); err != nil {
		t.Errorf("Valid root should pass: %v", err)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats should be [json], got %v", opts.Formats)
	}
}

func TestRunnerPerCallLogger(t *testing.T) {
	var buf bytes.Buffer
	runner := NewRunner(nil, nil, quietLogger())
	opts := Options{
		UseSample: true,
		Root:      "Bob",
		Logger:    log.New(&buf),
	}

	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(buf.String(), "loaded dataset") {
		t.Errorf("per-call logger saw no pipeline output: %q", buf.String())
	}
}

func TestOptionsNeedsGraphOutput(t *testing.T) {
	tests := []struct {
		formats []string
		want    bool
	}{
		{[]string{"json"}, false},
		{[]string{"dot"}, true},
		{[]string{"json", "svg"}, true},
		{nil, false},
	}

	for _, tt := range tests {
		opts := Options{Formats: tt.formats}
		if got := opts.NeedsGraphOutput(); got != tt.want {
			t.Errorf("NeedsGraphOutput(%v) = %v, want %v", tt.formats, got, tt.want)
		}
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{UseSample: true, Root: "Bob"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalFormats := opts.Formats

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if len(opts.Formats) != len(originalFormats) {
		t.Error("Formats changed on second call")
	}
}

func TestOptionsValidateAndSetDefaultsRejectsBadFormat(t *testing.T) {
	opts := Options{UseSample: true, Root: "Bob", Formats: []string{"pdf"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Unsupported format should fail")
	}
}

// ===== Runner =====

func TestRunnerExecuteSample(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		UseSample: true,
		Root:      "Bob",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !result.RootFound {
		t.Error("Root Bob should be found in sample")
	}
	if result.Stats.PersonCount != 14 {
		t.Errorf("PersonCount = %d, want 14", result.Stats.PersonCount)
	}
	if result.Stats.KinshipCount != 20 {
		t.Errorf("KinshipCount = %d, want 20", result.Stats.KinshipCount)
	}
	if result.Stats.ReachedCount != 14 {
		t.Errorf("ReachedCount = %d, want 14", result.Stats.ReachedCount)
	}
	if result.DatasetHash == "" {
		t.Error("DatasetHash should be set")
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("Default format json should be rendered")
	}
}

func TestRunnerExecuteAnnotatesRecords(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		UseSample: true,
		Root:      "Bob",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var bob family.Record
	for _, rec := range result.Records {
		if rec.Name == "Bob" {
			bob = rec
		}
	}
	if bob.Name == "" {
		t.Fatal("Bob missing from result records")
	}
	if bob.Father != "*Charlie" {
		t.Errorf("Bob.Father = %q, want %q", bob.Father, "*Charlie")
	}
	if bob.Mother != "*Eve" {
		t.Errorf("Bob.Mother = %q, want %q", bob.Mother, "*Eve")
	}
}

func TestRunnerExecuteRootNotFound(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		UseSample: true,
		Root:      "Zelda",
	})
	if err != nil {
		t.Fatalf("Execute should soft-fail, got error: %v", err)
	}

	if result.RootFound {
		t.Error("RootFound should be false for Zelda")
	}
	if result.Stats.ReachedCount != 0 {
		t.Errorf("ReachedCount = %d, want 0", result.Stats.ReachedCount)
	}
	for _, rec := range result.Records {
		for _, name := range append([]string{rec.Father, rec.Mother}, rec.Children...) {
			if strings.HasPrefix(name, family.Marker) {
				t.Fatalf("record %q carries marker %q despite missing root", rec.Name, name)
			}
		}
	}
}

func TestRunnerExecuteJSONArtifact(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		UseSample: true,
		Root:      "Bob",
		Formats:   []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &decoded); err != nil {
		t.Fatalf("json artifact should be valid JSON: %v", err)
	}
	if len(decoded) != 14 {
		t.Errorf("json artifact has %d records, want 14", len(decoded))
	}
}

func TestRunnerExecuteDOTArtifact(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		UseSample: true,
		Root:      "Bob",
		Formats:   []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.HasPrefix(dot, "graph family {") {
		t.Errorf("dot artifact should start with graph header, got %q", dot[:min(len(dot), 40)])
	}
	if !strings.Contains(dot, "Bob") {
		t.Error("dot artifact should contain root node")
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	if _, err := runner.Execute(context.Background(), Options{Root: "Bob"}); err == nil {
		t.Error("Missing input should fail")
	}
	if _, err := runner.Execute(context.Background(), Options{UseSample: true}); err == nil {
		t.Error("Missing root should fail")
	}
}

func TestRunnerTraceStage(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	records := family.Sample()
	annotated, preds, err := runner.Trace(context.Background(), records, Options{Root: "Bob"})
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}
	if preds == nil {
		t.Fatal("Predecessors should be non-nil for a found root")
	}
	if len(annotated) != len(records) {
		t.Errorf("annotated count = %d, want %d", len(annotated), len(records))
	}

	// Missing root yields nil predecessors and unmarked records.
	_, preds, err = runner.Trace(context.Background(), records, Options{Root: "Zelda"})
	if err != nil {
		t.Fatalf("Trace should soft-fail: %v", err)
	}
	if preds != nil {
		t.Error("Predecessors should be nil for a missing root")
	}
}

func TestRunnerLoadRecords(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	records, err := runner.Load(context.Background(), Options{
		Records: []family.Record{
			{Name: "Ada", Father: family.Unknown, Children: []string{"Grace"}},
			{Name: "Grace"},
		},
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Load returned %d records, want 2", len(records))
	}
	if records[0].Father != "" {
		t.Errorf("Unknown father should normalize to empty, got %q", records[0].Father)
	}
}

func TestRunnerLoadInvalidRecords(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	_, err := runner.Load(context.Background(), Options{
		Records: []family.Record{{Name: "Ada"}, {Name: "Ada"}},
	})
	if err == nil {
		t.Error("Duplicate names should fail validation")
	}
}
