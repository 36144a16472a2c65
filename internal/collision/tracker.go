package collision

import (
	"fmt"

	"github.com/arloliu/foamio/errs"
	"github.com/arloliu/foamio/internal/hash"
)

// Tracker records patch names and rejects duplicates.
//
// Names are keyed by their xxHash64; a hash hit is confirmed against the stored
// name so two distinct names sharing a hash are both accepted.
type Tracker struct {
	names map[uint64][]string // Hash → names with that hash
}

// NewTracker creates a new patch name tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64][]string),
	}
}

// Track records name.
//
// Returns:
//   - error: ErrStructural for an empty name, ErrDuplicatePatch if name was already tracked
func (t *Tracker) Track(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty patch name", errs.ErrStructural)
	}

	h := hash.ID(name)
	for _, existing := range t.names[h] {
		if existing == name {
			return fmt.Errorf("%w: %q", errs.ErrDuplicatePatch, name)
		}
	}

	t.names[h] = append(t.names[h], name)

	return nil
}
