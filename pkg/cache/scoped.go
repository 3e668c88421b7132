package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one Redis instance.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SummaryKey generates a prefixed summary key.
func (k *ScopedKeyer) SummaryKey(fingerprint string, opts SummaryKeyOpts) string {
	return k.prefix + k.inner.SummaryKey(fingerprint, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(fingerprint string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(fingerprint, opts)
}
