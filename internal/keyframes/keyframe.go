// Package keyframes stores sparse, frame-indexed animation samples and answers
// floor and exact-frame queries against them.
//
// Lookups go through a cursor that remembers where the previous query
// resolved. Sequential forward access (playback) resolves from the cursor in
// O(1); anything else falls back to a binary search over the sorted sequence.
// The cursor is a performance hint only and never changes a result.
package keyframes

// Keyframe is a single sample of a timeline.
type Keyframe[T any] struct {
	Frame int    `yaml:"frame"`
	Value T      `yaml:"value"`
	Tag   string `yaml:"tag,omitempty"` // Free-form keyframe type from the importer
}

// Floor is the result of a floor lookup.
type Floor[T any] struct {
	// Index is the resolved position, or the insertion point (0) when no
	// keyframe qualifies.
	Index    int
	Keyframe Keyframe[T]
	Found    bool
	// IsLast reports that Keyframe is the last sample, so there is no next
	// sample to bracket against.
	IsLast bool
	// Searched reports that the lookup fell back to a binary search instead
	// of resolving from the cursor.
	Searched bool
}

// Stats counts how lookups were resolved.
type Stats struct {
	CursorHits uint64
	Searches   uint64
}

// HitRatio returns the share of lookups answered by the cursor.
func (s Stats) HitRatio() float64 {
	total := s.CursorHits + s.Searches
	if total == 0 {
		return 0
	}
	return float64(s.CursorHits) / float64(total)
}

// View is the read side shared by a Timeline and its Readers.
type View[T any] interface {
	FloorLookup(frame int) Floor[T]
	ExactLookup(frame int) (Keyframe[T], bool)
	GetAtIndex(i int) Keyframe[T]
	Len() int
}
