package cache

// Keyer builds cache keys.
type Keyer interface {
	// SummaryKey identifies the summary of a group definition.
	SummaryKey(fingerprint string, opts SummaryKeyOpts) string

	// ArtifactKey identifies a rendered artifact of a group definition.
	ArtifactKey(fingerprint string, opts ArtifactKeyOpts) string
}

// SummaryKeyOpts holds the options that change a computed summary.
type SummaryKeyOpts struct {
	// ElementLimit caps the number of listed elements; 0 lists none.
	ElementLimit int `json:"element_limit,omitempty"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Elements bool   `json:"elements,omitempty"`
}

// DefaultKeyer hashes key options so that keys stay short and opaque.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SummaryKey returns "summary:" followed by a hash of the fingerprint and options.
func (DefaultKeyer) SummaryKey(fingerprint string, opts SummaryKeyOpts) string {
	return hashKey("summary", fingerprint, opts)
}

// ArtifactKey returns "artifact:" followed by a hash of the fingerprint and options.
func (DefaultKeyer) ArtifactKey(fingerprint string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", fingerprint, opts)
}

var _ Keyer = DefaultKeyer{}
