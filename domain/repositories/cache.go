package repositories

import "github.com/suaralabs/suara/domain"

// AudioCache maps synthesized text to a stored audio artifact with
// time-based expiry. Implementations must be safe for concurrent use.
type AudioCache interface {
	// Key derives the deterministic cache key for a piece of text.
	// Identical text always maps to the same key.
	Key(text string) string
	// Get returns the cached artifact for key. Expired or unreadable
	// entries behave as a miss and are never returned.
	Get(key string) (domain.Audio, bool)
	// Put stores or replaces the entry for key, stamping the current time.
	Put(key string, audio domain.Audio) error
	// Path resolves key to the artifact's servable location relative to
	// the cache root.
	Path(key string) string
}
