// Package collision detects distinct metric names hashing to the same
// 64-bit ID.
package collision

import (
	"fmt"

	"github.com/verakit/vera/errs"
)

// Tracker records the fully-qualified name registered for each ID so that a
// second, different name arriving under the same ID can be rejected. Unlike
// a content-addressed store there is no recovery path here: the ID index is
// a lookup accelerator, and a colliding entry would silently shadow another
// metric.
type Tracker struct {
	names map[uint64]string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{names: make(map[uint64]string)}
}

// Track registers a name under its ID. Re-registering the same name is
// allowed and reports false; a different name under an occupied ID returns
// ErrHashCollision.
func (t *Tracker) Track(name string, id uint64) (added bool, err error) {
	existing, occupied := t.names[id]
	if occupied {
		if existing != name {
			return false, fmt.Errorf("%w: %q and %q both hash to 0x%016x",
				errs.ErrHashCollision, existing, name, id)
		}

		return false, nil
	}
	t.names[id] = name

	return true, nil
}

// Forget removes the entry for id, if any.
func (t *Tracker) Forget(id uint64) {
	delete(t.names, id)
}

// Name returns the name registered under id.
func (t *Tracker) Name(id uint64) (string, bool) {
	name, ok := t.names[id]
	return name, ok
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}
