package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// A server hosting several projects gives each its own scope so layout
// hashes from different trees can never collide in a shared backend.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "project:frontend:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TreeKey generates a prefixed key for scan result caching.
func (k *ScopedKeyer) TreeKey(root string, opts any) string {
	return k.prefix + k.inner.TreeKey(root, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(treeHash string) string {
	return k.prefix + k.inner.LayoutKey(treeHash)
}

// EdgeKey generates a prefixed key for import edge caching.
func (k *ScopedKeyer) EdgeKey(treeHash string) string {
	return k.prefix + k.inner.EdgeKey(treeHash)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, format)
}
