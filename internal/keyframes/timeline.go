package keyframes

import (
	"cmp"
	"slices"
)

const noCursor = -1

// Timeline is an ordered, frame-unique sequence of keyframes.
//
// A Timeline has a single writer and is not safe for concurrent use. Readers
// created with NewReader may query concurrently with each other as long as
// nothing mutates the timeline meanwhile.
type Timeline[T any] struct {
	impl                  []Keyframe[T]
	cursor                int
	hasAtLeastOneKeyframe bool
	stats                 Stats
}

// NewTimeline creates an empty timeline.
func NewTimeline[T any](initialCapacity int) *Timeline[T] {
	return &Timeline[T]{
		impl:   make([]Keyframe[T], 0, initialCapacity),
		cursor: noCursor,
	}
}

// Len returns the number of keyframes.
func (t *Timeline[T]) Len() int {
	return len(t.impl)
}

// HasAtLeastOneKeyframe reports whether a keyframe has ever been written and
// not since cleared by SetAllKeyframes.
func (t *Timeline[T]) HasAtLeastOneKeyframe() bool {
	return t.hasAtLeastOneKeyframe
}

// MaxFrame returns the frame of the last keyframe, or 0 when empty.
func (t *Timeline[T]) MaxFrame() int {
	if len(t.impl) == 0 {
		return 0
	}
	return t.impl[len(t.impl)-1].Frame
}

// Stats returns the lookup counters accumulated by this timeline's own
// cursor. Readers keep their own.
func (t *Timeline[T]) Stats() Stats {
	return t.stats
}

// Definitions returns a copy of the sorted keyframes.
func (t *Timeline[T]) Definitions() []Keyframe[T] {
	return slices.Clone(t.impl)
}

// GetAtIndex returns the keyframe at position i. It panics if i is out of
// range.
func (t *Timeline[T]) GetAtIndex(i int) Keyframe[T] {
	return t.impl[i]
}

// Set stores value at frame with no tag.
func (t *Timeline[T]) Set(frame int, value T) {
	t.set(frame, value, "")
}

// SetKeyframe inserts a keyframe, or overwrites the one already at frame.
func (t *Timeline[T]) SetKeyframe(frame int, value T, tag string) {
	t.set(frame, value, tag)
}

// set returns the floor lookup it mutated against, so tests can observe how
// the insertion point was found.
func (t *Timeline[T]) set(frame int, value T, tag string) Floor[T] {
	t.hasAtLeastOneKeyframe = true

	floor := t.FloorLookup(frame)
	kf := Keyframe[T]{Frame: frame, Value: value, Tag: tag}

	switch {
	case floor.Found && floor.Keyframe.Frame == frame:
		t.impl[floor.Index] = kf
		t.cursor = floor.Index
	case floor.IsLast || len(t.impl) == 0:
		t.impl = append(t.impl, kf)
		t.cursor = len(t.impl) - 1
	case floor.Found:
		t.impl = slices.Insert(t.impl, floor.Index+1, kf)
		t.cursor = floor.Index + 1
	default:
		t.impl = slices.Insert(t.impl, 0, kf)
		t.cursor = 0
	}

	return floor
}

// SetAllKeyframes replaces the timeline with one keyframe per value, at
// frames 0, 1, 2, ...
func (t *Timeline[T]) SetAllKeyframes(values []T) {
	impl := make([]Keyframe[T], len(values))
	for i, v := range values {
		impl[i] = Keyframe[T]{Frame: i, Value: v}
	}

	t.impl = impl
	t.hasAtLeastOneKeyframe = len(impl) > 0
	t.cursor = len(impl) - 1
}

// FloorLookup returns the keyframe with the greatest frame not above frame.
func (t *Timeline[T]) FloorLookup(frame int) Floor[T] {
	return floorLookup(t.impl, &t.cursor, &t.stats, frame)
}

// ExactLookup returns the keyframe at exactly frame.
func (t *Timeline[T]) ExactLookup(frame int) (Keyframe[T], bool) {
	return exact(t.FloorLookup(frame), frame)
}

// NewReader returns a read-only view with its own cursor, seeded from the
// timeline's.
func (t *Timeline[T]) NewReader() *Reader[T] {
	return &Reader[T]{timeline: t, cursor: t.cursor}
}

func exact[T any](floor Floor[T], frame int) (Keyframe[T], bool) {
	if floor.Found && floor.Keyframe.Frame == frame {
		return floor.Keyframe, true
	}
	return Keyframe[T]{}, false
}

func floorLookup[T any](keys []Keyframe[T], cursor *int, stats *Stats, frame int) Floor[T] {
	count := len(keys)
	if count == 0 {
		*cursor = 0
		return Floor[T]{}
	}

	// Sequential playback lands on the cursor or the entry right after it.
	if c := *cursor; c >= 0 && c < count {
		kf := keys[c]
		if frame >= kf.Frame {
			isLast := c == count-1
			if isLast || frame == kf.Frame {
				stats.CursorHits++
				return Floor[T]{Index: c, Keyframe: kf, Found: true, IsLast: isLast}
			}

			next := keys[c+1]
			if next.Frame > frame {
				stats.CursorHits++
				return Floor[T]{Index: c, Keyframe: kf, Found: true}
			}
			if next.Frame == frame {
				stats.CursorHits++
				*cursor = c + 1
				return Floor[T]{Index: c + 1, Keyframe: next, Found: true, IsLast: c+1 == count-1}
			}
		}
	}

	stats.Searches++
	p, hit := slices.BinarySearchFunc(keys, frame, func(kf Keyframe[T], f int) int {
		return cmp.Compare(kf.Frame, f)
	})

	switch {
	case hit:
		*cursor = p
		return Floor[T]{Index: p, Keyframe: keys[p], Found: true, IsLast: p == count-1, Searched: true}
	case p == count:
		*cursor = count - 1
		return Floor[T]{Index: count - 1, Keyframe: keys[count-1], Found: true, IsLast: true, Searched: true}
	case p == 0:
		*cursor = 0
		return Floor[T]{Searched: true}
	default:
		*cursor = p - 1
		return Floor[T]{Index: p - 1, Keyframe: keys[p-1], Found: true, Searched: true}
	}
}
