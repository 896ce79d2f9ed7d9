package keyframes

// Reader is a read-only view of a Timeline with a private cursor. Give each
// concurrent playback consumer its own Reader.
type Reader[T any] struct {
	timeline *Timeline[T]
	cursor   int
	stats    Stats
}

func (r *Reader[T]) Len() int {
	return len(r.timeline.impl)
}

func (r *Reader[T]) GetAtIndex(i int) Keyframe[T] {
	return r.timeline.impl[i]
}

func (r *Reader[T]) Stats() Stats {
	return r.stats
}

func (r *Reader[T]) FloorLookup(frame int) Floor[T] {
	return floorLookup(r.timeline.impl, &r.cursor, &r.stats, frame)
}

func (r *Reader[T]) ExactLookup(frame int) (Keyframe[T], bool) {
	return exact(r.FloorLookup(frame), frame)
}
