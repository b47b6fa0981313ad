package cache

// Keyer generates cache keys for each pipeline stage.
// Implementations must be deterministic: identical inputs produce identical
// keys across processes.
type Keyer interface {
	// DatasetKey generates a key for a decoded dataset.
	// contentHash is the hash of the raw dataset bytes.
	DatasetKey(contentHash string) string

	// TraceKey generates a key for a traced lineage.
	TraceKey(datasetHash string, opts TraceKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(traceHash string, opts ArtifactKeyOpts) string
}

// TraceKeyOpts are the options that differentiate trace cache entries.
type TraceKeyOpts struct {
	Root string `json:"root"`
}

// ArtifactKeyOpts are the options that differentiate artifact cache entries.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	Highlight bool   `json:"highlight"`
}

// DefaultKeyer is the standard key generator.
// Keys embed a stage prefix plus a hash of all distinguishing inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DatasetKey generates a key for a decoded dataset.
func (k *DefaultKeyer) DatasetKey(contentHash string) string {
	return hashKey("dataset", contentHash)
}

// TraceKey generates a key for a traced lineage.
func (k *DefaultKeyer) TraceKey(datasetHash string, opts TraceKeyOpts) string {
	return hashKey("trace", datasetHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(traceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", traceHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
