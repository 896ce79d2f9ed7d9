package keyframes

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kf(frame int, value string) Keyframe[string] {
	return Keyframe[string]{Frame: frame, Value: value}
}

func TestAddToEnd(t *testing.T) {
	impl := NewTimeline[string](0)

	for i := 0; i < 5; i++ {
		floor := impl.set(i, fmt.Sprint(i), "")
		assert.False(t, floor.Searched, "append of frame %d searched", i)
	}

	assert.Equal(t, []Keyframe[string]{
		kf(0, "0"), kf(1, "1"), kf(2, "2"), kf(3, "3"), kf(4, "4"),
	}, impl.Definitions())
	assert.Equal(t, uint64(0), impl.Stats().Searches)
}

func TestReplace(t *testing.T) {
	impl := NewTimeline[string](0)

	assert.False(t, impl.set(1, "first", "").Searched)
	assert.False(t, impl.set(1, "second", "").Searched)
	assert.Equal(t, 1, impl.Len())
	assert.False(t, impl.set(1, "third", "").Searched)

	assert.Equal(t, []Keyframe[string]{kf(1, "third")}, impl.Definitions())
}

func TestReplaceKeepsLength(t *testing.T) {
	impl := NewTimeline[string](0)
	impl.Set(0, "a")
	impl.Set(5, "b")
	impl.Set(9, "c")

	impl.SetKeyframe(5, "b2", "step")

	require.Equal(t, 3, impl.Len())
	got, ok := impl.ExactLookup(5)
	require.True(t, ok)
	assert.Equal(t, Keyframe[string]{Frame: 5, Value: "b2", Tag: "step"}, got)
}

func TestInsertAtFront(t *testing.T) {
	impl := NewTimeline[string](0)

	assert.False(t, impl.set(4, "4", "").Searched)
	assert.False(t, impl.set(5, "5", "").Searched)
	assert.True(t, impl.set(2, "2", "").Searched)
	assert.True(t, impl.set(1, "1", "").Searched)
	assert.True(t, impl.set(0, "0", "").Searched)

	assert.Equal(t, []Keyframe[string]{
		kf(0, "0"), kf(1, "1"), kf(2, "2"), kf(4, "4"), kf(5, "5"),
	}, impl.Definitions())
}

func TestInsertInMiddle(t *testing.T) {
	impl := NewTimeline[string](0)

	impl.Set(0, "0")
	impl.Set(9, "9")
	impl.Set(5, "5")
	impl.Set(2, "2")
	impl.Set(7, "7")

	assert.Equal(t, []Keyframe[string]{
		kf(0, "0"), kf(2, "2"), kf(5, "5"), kf(7, "7"), kf(9, "9"),
	}, impl.Definitions())
}

func TestHugeRange(t *testing.T) {
	unsorted := NewTimeline[string](0)
	unsorted.Set(1000, "1000")
	unsorted.Set(2, "2")
	unsorted.Set(123, "123")

	sorted := NewTimeline[string](0)
	sorted.Set(2, "2")
	sorted.Set(123, "123")
	sorted.Set(1000, "1000")

	want := []Keyframe[string]{kf(2, "2"), kf(123, "123"), kf(1000, "1000")}
	assert.Equal(t, want, unsorted.Definitions())
	assert.Equal(t, want, sorted.Definitions())
}

func TestGetAtIndex(t *testing.T) {
	impl := NewTimeline[string](0)
	impl.Set(0, "first")
	impl.Set(2, "second")
	impl.Set(4, "third")

	assert.Equal(t, kf(0, "first"), impl.GetAtIndex(0))
	assert.Equal(t, kf(2, "second"), impl.GetAtIndex(1))
	assert.Equal(t, kf(4, "third"), impl.GetAtIndex(2))

	assert.Panics(t, func() { impl.GetAtIndex(3) })
	assert.Panics(t, func() { impl.GetAtIndex(-1) })
}

func TestFloorLookup(t *testing.T) {
	impl := NewTimeline[string](0)
	impl.Set(0, "first")
	impl.Set(2, "second")
	impl.Set(4, "third")

	tests := []struct {
		frame  int
		found  bool
		want   Keyframe[string]
		isLast bool
	}{
		{frame: -1, found: false},
		{frame: 0, found: true, want: kf(0, "first")},
		{frame: 1, found: true, want: kf(0, "first")},
		{frame: 2, found: true, want: kf(2, "second")},
		{frame: 3, found: true, want: kf(2, "second")},
		{frame: 4, found: true, want: kf(4, "third"), isLast: true},
		{frame: 5, found: true, want: kf(4, "third"), isLast: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("frame %d", tt.frame), func(t *testing.T) {
			floor := impl.FloorLookup(tt.frame)
			require.Equal(t, tt.found, floor.Found)
			if !tt.found {
				assert.Equal(t, 0, floor.Index)
				assert.Equal(t, Keyframe[string]{}, floor.Keyframe)
				return
			}
			assert.Equal(t, tt.want, floor.Keyframe)
			assert.Equal(t, tt.isLast, floor.IsLast)
		})
	}
}

func TestExactLookup(t *testing.T) {
	impl := NewTimeline[string](0)
	impl.Set(0, "first")
	impl.Set(2, "second")

	_, ok := impl.ExactLookup(-1)
	assert.False(t, ok)
	_, ok = impl.ExactLookup(1)
	assert.False(t, ok)
	_, ok = impl.ExactLookup(3)
	assert.False(t, ok)

	got, ok := impl.ExactLookup(2)
	require.True(t, ok)
	assert.Equal(t, kf(2, "second"), got)
}

func TestFloorLookupIndices(t *testing.T) {
	impl := NewTimeline[string](0)
	impl.Set(0, "0")
	impl.Set(1, "1")

	tests := []struct {
		frame  int
		index  int
		isLast bool
	}{
		{-1, 0, false},
		{0, 0, false},
		{1, 1, true},
		{2, 1, true},
	}

	for _, tt := range tests {
		floor := impl.FloorLookup(tt.frame)
		assert.Equal(t, tt.index, floor.Index, "frame %d", tt.frame)
		assert.Equal(t, tt.isLast, floor.IsLast, "frame %d", tt.frame)
	}
}

func TestFloorLookupWhenEmpty(t *testing.T) {
	impl := NewTimeline[string](0)

	for _, frame := range []int{-1, 0, 10} {
		floor := impl.FloorLookup(frame)
		assert.False(t, floor.Found)
		assert.Equal(t, 0, floor.Index)
		assert.False(t, floor.IsLast)
		assert.False(t, floor.Searched)
	}
}

func TestFindManyIndices(t *testing.T) {
	impl := NewTimeline[string](0)

	const s, n = 2, 25
	for f := 0; f < n; f += s {
		impl.Set(f, fmt.Sprint(f))
	}

	for i := 0; i < n; i++ {
		want := i - (i % s)

		floor := impl.FloorLookup(i)
		require.True(t, floor.Found, "frame %d", i)
		assert.Equal(t, want/s, floor.Index)
		assert.Equal(t, want, floor.Keyframe.Frame)
		assert.Equal(t, i == n-1, floor.IsLast, "frame %d", i)
	}
}

func TestSequentialPlaybackUsesCursor(t *testing.T) {
	impl := NewTimeline[int](0)
	for f := 0; f <= 100; f += 5 {
		impl.Set(f, f)
	}
	before := impl.Stats()

	// Reset the cursor with one out-of-order query, then play forward.
	impl.FloorLookup(0)
	for f := 0; f <= 120; f++ {
		floor := impl.FloorLookup(f)
		require.False(t, floor.Searched, "frame %d searched", f)
	}

	after := impl.Stats()
	assert.Equal(t, before.Searches+1, after.Searches)
	assert.Equal(t, 1.0, Stats{CursorHits: 4}.HitRatio())
	assert.Zero(t, Stats{}.HitRatio())
}

func TestBackwardsQuerySearches(t *testing.T) {
	impl := NewTimeline[int](0)
	impl.SetAllKeyframes([]int{10, 11, 12, 13})

	floor := impl.FloorLookup(1)
	assert.True(t, floor.Searched)
	assert.Equal(t, 11, floor.Keyframe.Value)

	// The search moved the cursor, so the next frame is a cursor hit.
	floor = impl.FloorLookup(2)
	assert.False(t, floor.Searched)
	assert.Equal(t, 12, floor.Keyframe.Value)
}

func TestSetAllKeyframes(t *testing.T) {
	impl := NewTimeline[string](0)
	impl.Set(40, "old")

	impl.SetAllKeyframes([]string{"a", "b", "c"})
	assert.True(t, impl.HasAtLeastOneKeyframe())
	assert.Equal(t, []Keyframe[string]{kf(0, "a"), kf(1, "b"), kf(2, "c")}, impl.Definitions())
	assert.Equal(t, 2, impl.MaxFrame())

	// The cursor sits on the last index, so appending is a cursor hit.
	assert.False(t, impl.set(3, "d", "").Searched)

	impl.SetAllKeyframes(nil)
	assert.False(t, impl.HasAtLeastOneKeyframe())
	assert.Equal(t, 0, impl.Len())
	assert.Equal(t, 0, impl.MaxFrame())

	impl.Set(7, "again")
	assert.True(t, impl.HasAtLeastOneKeyframe())
}

func TestDefinitionsIsACopy(t *testing.T) {
	impl := NewTimeline[string](0)
	impl.Set(0, "a")

	defs := impl.Definitions()
	defs[0].Value = "mutated"

	assert.Equal(t, "a", impl.GetAtIndex(0).Value)
}

func TestRandomInsertionStaysSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	impl := NewTimeline[int](0)
	seen := map[int]int{}

	for i := 0; i < 2000; i++ {
		frame := rng.Intn(500) - 100
		impl.Set(frame, i)
		seen[frame] = i
	}

	defs := impl.Definitions()
	require.Len(t, defs, len(seen))
	for i := 0; i+1 < len(defs); i++ {
		require.Less(t, defs[i].Frame, defs[i+1].Frame)
	}
	for _, d := range defs {
		assert.Equal(t, seen[d.Frame], d.Value, "last write wins at frame %d", d.Frame)
	}
}

func TestCursorNeverChangesResults(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	impl := NewTimeline[int](0)
	for f := 0; f < 300; f += 3 {
		impl.Set(f, f)
	}

	for i := 0; i < 1000; i++ {
		frame := rng.Intn(320) - 10
		got := impl.FloorLookup(frame)

		fresh := impl.NewReader()
		fresh.cursor = noCursor
		want := fresh.FloorLookup(frame)

		require.Equal(t, want.Found, got.Found, "frame %d", frame)
		require.Equal(t, want.Index, got.Index, "frame %d", frame)
		require.Equal(t, want.IsLast, got.IsLast, "frame %d", frame)
	}
}

func TestReadersHaveIndependentCursors(t *testing.T) {
	impl := NewTimeline[int](0)
	for f := 0; f < 1000; f++ {
		impl.Set(f, f*2)
	}

	var wg sync.WaitGroup
	readers := make([]*Reader[int], 4)
	for i := range readers {
		readers[i] = impl.NewReader()
		wg.Add(1)
		go func(r *Reader[int]) {
			defer wg.Done()
			for f := 0; f < 1000; f++ {
				floor := r.FloorLookup(f)
				if !floor.Found || floor.Keyframe.Value != f*2 {
					t.Errorf("frame %d: got %+v", f, floor)
					return
				}
			}
		}(readers[i])
	}
	wg.Wait()

	for _, r := range readers {
		// One search at most to leave the writer's seed position.
		assert.LessOrEqual(t, r.Stats().Searches, uint64(1))
		assert.Equal(t, 1000, r.Len())
	}

	got, ok := readers[0].ExactLookup(10)
	require.True(t, ok)
	assert.Equal(t, 20, got.Value)
	assert.Equal(t, 0, readers[0].GetAtIndex(0).Value)
}
