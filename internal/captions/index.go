package captions

// Index answers point lookups over a track's start times: which cue is
// active at a given playback time.
type Index struct {
	starts []int64
}

// NewIndex builds a lookup index over the track. A nil or empty track
// yields an index whose searches all miss.
func NewIndex(t *Track) *Index {
	if t == nil {
		return &Index{}
	}
	return &Index{starts: t.starts}
}

func (ix *Index) Len() int {
	return len(ix.starts)
}

// Search returns the greatest cue index whose start time is at or
// before timeMs. When timeMs precedes the first cue the result clamps
// to 0: the earliest cue is considered active until its own start time
// passes. When several cues share a start time the latest one wins.
// Returns false only when no cues are loaded.
func (ix *Index) Search(timeMs int64) (int, bool) {
	if len(ix.starts) == 0 {
		return 0, false
	}
	lo, hi := 0, len(ix.starts)-1
	for lo < hi {
		// Upper midpoint so equal start times resolve to the
		// highest index.
		mid := lo + (hi-lo+1)/2
		if ix.starts[mid] <= timeMs {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, true
}
