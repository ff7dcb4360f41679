package docvar

// KeyProvider answers whether a key belongs to the application-defined set of
// system variables. Implementations are expected to resolve against the live
// registry on every call; docvar never caches the answer, so a key promoted
// or demoted between saves is always re-resolved on the next decorate or
// extract pass.
type KeyProvider interface {
	// IsSystem reports whether key (already normalized) is a system variable.
	IsSystem(key string) bool
	// SystemKeys returns all system keys currently registered.
	SystemKeys() []string
}

// StaticKeys is a fixed-set KeyProvider, used in tests and anywhere the
// system-key set has already been materialized.
type StaticKeys map[string]struct{}

// NewStaticKeys builds a StaticKeys provider from a list of raw keys,
// normalizing each one.
func NewStaticKeys(keys ...string) StaticKeys {
	s := make(StaticKeys, len(keys))
	for _, k := range keys {
		if nk := NormalizeKey(k); nk != "" {
			s[nk] = struct{}{}
		}
	}
	return s
}

// IsSystem implements KeyProvider.
func (s StaticKeys) IsSystem(key string) bool {
	_, ok := s[key]
	return ok
}

// SystemKeys implements KeyProvider. Order is not specified.
func (s StaticKeys) SystemKeys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}
