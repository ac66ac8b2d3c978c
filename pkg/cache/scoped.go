package cache

// ScopedKeyer wraps a Keyer with a prefix so that several runners sharing
// one cache keep separate namespaces:
//
//	previewKeyer := NewScopedKeyer(NewDefaultKeyer(), "preview:")
//	printKeyer := NewScopedKeyer(NewDefaultKeyer(), "print:")
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

// SheetKey generates a prefixed key for sheet caching.
func (k *ScopedKeyer) SheetKey(sourceKey string, opts SheetKeyOpts) string {
	return k.prefix + k.inner.SheetKey(sourceKey, opts)
}
