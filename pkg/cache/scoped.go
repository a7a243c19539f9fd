package cache

// ScopedKeyer prefixes every key of an inner Keyer, so callers sharing one
// store (a Redis instance, say) keep separate namespaces:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "team:core:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ViewKey implements Keyer.
func (k *ScopedKeyer) ViewKey(pathsHash string, opts ViewKeyOpts) string {
	return k.prefix + k.inner.ViewKey(pathsHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(viewHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(viewHash, format)
}
