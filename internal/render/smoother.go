package render

import (
	"time"

	"github.com/ayusman/chhaya/internal/detector"
)

// StaleAfter is how long a hand may go unseen before its smoothing state is
// evicted. A hand that reappears after eviction starts from scratch instead
// of averaging against an ancient shape.
const StaleAfter = 2 * time.Second

// handState is the persistent per-hand smoothing record.
type handState struct {
	points  []detector.Point3D
	updated time.Time
}

// Smoother maintains one exponential-moving-average filter per tracked hand,
// keyed by normalized handedness. It suppresses frame-to-frame landmark
// jitter that would otherwise make the silhouette shimmer.
//
// A Smoother is owned by a single Renderer and must not be shared; it does
// no internal locking.
type Smoother struct {
	states map[Hand]*handState

	// now is swappable so tests can drive the eviction clock.
	now func() time.Time
}

// NewSmoother creates an empty Smoother.
func NewSmoother() *Smoother {
	return &Smoother{
		states: make(map[Hand]*handState),
		now:    time.Now,
	}
}

// Apply folds this frame's raw landmarks into the per-hand filter state and
// returns the stabilized sequence. The first sighting of a key, or a change
// in point count (topology change), resets the filter and returns the raw
// points unsmoothed. alpha is the EMA weight of the new sample in (0,1].
//
// Two hands reported under the same key in one frame collide: the later one
// overwrites the earlier one's state. Upstream guarantees at most one hand
// per label, so this is accepted rather than rejected.
//
// The returned slice aliases internal state and is only valid until the next
// Apply call for the same key; callers must not mutate it.
func (s *Smoother) Apply(key Hand, raw []detector.Point3D, alpha float64) []detector.Point3D {
	state, ok := s.states[key]
	if !ok || len(state.points) != len(raw) {
		initial := make([]detector.Point3D, len(raw))
		copy(initial, raw)
		s.states[key] = &handState{points: initial, updated: s.now()}
		return initial
	}

	for i := range raw {
		state.points[i].X = alpha*raw[i].X + (1-alpha)*state.points[i].X
		state.points[i].Y = alpha*raw[i].Y + (1-alpha)*state.points[i].Y
		state.points[i].Z = alpha*raw[i].Z + (1-alpha)*state.points[i].Z
	}
	state.updated = s.now()

	return state.points
}

// Evict removes every hand whose state has not been refreshed within maxAge.
// It returns the number of hands removed. The renderer runs this once per
// frame, after compositing, so a vanished hand's shape may linger for up to
// one eviction window before its state is dropped.
func (s *Smoother) Evict(maxAge time.Duration) int {
	cutoff := s.now().Add(-maxAge)
	removed := 0
	for key, state := range s.states {
		if state.updated.Before(cutoff) {
			delete(s.states, key)
			removed++
		}
	}
	return removed
}

// Tracked returns the number of hands with live smoothing state.
func (s *Smoother) Tracked() int {
	return len(s.states)
}

// Reset discards all smoothing state.
func (s *Smoother) Reset() {
	s.states = make(map[Hand]*handState)
}
