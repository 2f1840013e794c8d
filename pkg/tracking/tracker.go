// Package tracking assigns stable identities to person detections across
// frames using nearest-centroid matching.
package tracking

import (
	"math"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/vision"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/log"
)

// Config holds tunable parameters for identity tracking.
type Config struct {
	// MatchThreshold is the maximum center distance in pixels for a
	// detection to reuse an existing identity.
	MatchThreshold float64

	// MaxDisappeared is how many consecutive frames an identity may be
	// unseen before it is evicted.
	MaxDisappeared int
}

// DefaultConfig returns the recommended tracking parameters.
func DefaultConfig() Config {
	return Config{
		MatchThreshold: 100.0,
		MaxDisappeared: 30,
	}
}

// track is one tracked identity. Tracks live in a slice ordered by creation
// so matching iterates deterministically; a map would make tie-breaks
// depend on iteration order.
type track struct {
	id          int
	box         vision.BoundingBox
	disappeared int // consecutive frames since last match
}

// Tracker owns the identity table. It is not safe for concurrent use; the
// control loop is its only caller.
type Tracker struct {
	config Config
	tracks []*track
	nextID int
}

// New creates an identity tracker.
func New(config Config) *Tracker {
	return &Tracker{
		config: config,
		nextID: 1,
	}
}

// Assign matches detections against tracked identities and returns the
// detections with identities attached. Every identity not matched this frame
// ages by one; identities unseen longer than MaxDisappeared are evicted.
// An empty input ages all identities and returns an empty slice.
func (t *Tracker) Assign(detections []vision.BoundingBox) []vision.BoundingBox {
	// Age everything first so this frame's matches reset from a clean slate.
	alive := t.tracks[:0]
	for _, tr := range t.tracks {
		tr.disappeared++
		if tr.disappeared > t.config.MaxDisappeared {
			log.Debug("identity evicted", "id", tr.id, "unseen_frames", tr.disappeared)
			continue
		}
		alive = append(alive, tr)
	}
	t.tracks = alive

	assigned := make([]vision.BoundingBox, 0, len(detections))
	for _, det := range detections {
		tr := t.match(det)
		if tr == nil {
			tr = &track{id: t.nextID}
			t.nextID++
			t.tracks = append(t.tracks, tr)
			log.Debug("identity created", "id", tr.id)
		}

		det.ID = tr.id
		tr.box = det
		tr.disappeared = 0
		assigned = append(assigned, det)
	}

	return assigned
}

// match returns the closest live track within the match threshold, or nil.
// The first track encountered wins ties.
func (t *Tracker) match(det vision.BoundingBox) *track {
	cx, cy := det.Center()

	var closest *track
	minDist := math.Inf(1)

	for _, tr := range t.tracks {
		tx, ty := tr.box.Center()
		dist := math.Hypot(float64(cx-tx), float64(cy-ty))
		if dist < minDist {
			minDist = dist
			closest = tr
		}
	}

	if closest == nil || minDist >= t.config.MatchThreshold {
		return nil
	}
	return closest
}

// Active returns a snapshot of the currently tracked boxes with identities.
func (t *Tracker) Active() []vision.BoundingBox {
	out := make([]vision.BoundingBox, 0, len(t.tracks))
	for _, tr := range t.tracks {
		out = append(out, tr.box)
	}
	return out
}

// Len returns the number of live identities.
func (t *Tracker) Len() int {
	return len(t.tracks)
}

// Reset drops all identities but keeps the identity counter monotonic.
func (t *Tracker) Reset() {
	t.tracks = nil
}
