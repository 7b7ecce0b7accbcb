package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation. This
// is useful for the serve command, where different callers' placement runs
// need separate cache namespaces.
//
// Example usage:
//
//	// Caller-specific keys for one API client
//	callerKeyer := NewScopedKeyer(NewDefaultKeyer(), "caller:abc123:")
//
//	// Global keys for unscoped CLI use
//	globalKeyer := NewDefaultKeyer()
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

// RunKey generates a prefixed key for a full placement run.
func (k *ScopedKeyer) RunKey(dbHash string, opts RunKeyOpts) string {
	return k.prefix + k.inner.RunKey(dbHash, opts)
}

// LegalizeKey generates a prefixed key for a legalization-only result.
func (k *ScopedKeyer) LegalizeKey(dbHash string) string {
	return k.prefix + k.inner.LegalizeKey(dbHash)
}

// PinAssignKey generates a prefixed key for a pin-assignment-only result.
func (k *ScopedKeyer) PinAssignKey(dbHash string) string {
	return k.prefix + k.inner.PinAssignKey(dbHash)
}
