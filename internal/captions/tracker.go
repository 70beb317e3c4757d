package captions

// Change describes an active-cue transition. HasPrevious is false only
// for the first transition away from "no active cue"; index 0 is a
// perfectly valid previous index and is reported as such.
type Change struct {
	Previous    int
	HasPrevious bool
	Current     int
}

// Tracker follows the active cue as playback time advances. It emits a
// change only when the resolved index actually differs from the one it
// already tracks, so repeated samples at the same time are idempotent.
type Tracker struct {
	index   *Index
	current int
	active  bool
}

func NewTracker(ix *Index) *Tracker {
	return &Tracker{index: ix}
}

// Update resolves the active cue for the given canonical time and
// reports whether that changed the tracked index. No cues loaded means
// no change ever.
func (tr *Tracker) Update(timeMs int64) (Change, bool) {
	next, ok := tr.index.Search(timeMs)
	if !ok {
		return Change{}, false
	}
	if tr.active && next == tr.current {
		return Change{}, false
	}
	change := Change{
		Previous:    tr.current,
		HasPrevious: tr.active,
		Current:     next,
	}
	tr.current = next
	tr.active = true
	return change, true
}

// Active returns the tracked cue index, if any.
func (tr *Tracker) Active() (int, bool) {
	return tr.current, tr.active
}

// Reset forgets the tracked cue, e.g. when a new track is loaded.
func (tr *Tracker) Reset() {
	tr.current = 0
	tr.active = false
}
