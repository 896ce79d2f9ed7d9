package system

import (
	"math"
	"runtime"
	"testing"
)

func TestFloatPoolReuse(t *testing.T) {
	pool := NewFloatPool()

	buf := pool.Get(4)
	if len(*buf) != 0 || cap(*buf) != 4 {
		t.Fatalf("Get(4) = len %d cap %d", len(*buf), cap(*buf))
	}

	*buf = append(*buf, 1, 2, 3)
	pool.Put(buf)

	again := pool.Get(4)
	if len(*again) != 0 {
		t.Errorf("Reused buffer not reset: %v", *again)
	}
	if cap(*again) != 4 {
		t.Errorf("Expected capacity 4, got %d", cap(*again))
	}

	// Unknown capacities and nil are ignored.
	odd := make([]float64, 0, 7)
	pool.Put(&odd)
	pool.Put(nil)
}

func TestGlobalPool(t *testing.T) {
	buf := GetFloats(3)
	*buf = append(*buf, 1, 2, 3)
	PutFloats(buf)

	if got := GetFloats(3); len(*got) != 0 {
		t.Errorf("Expected empty buffer, got %v", *got)
	}
}

func TestSnapshot(t *testing.T) {
	stats, err := Snapshot()
	if stats.Goroutines < 1 || stats.HeapAlloc == 0 {
		t.Errorf("Runtime figures missing: %+v", stats)
	}
	if err != nil {
		if runtime.GOOS == "linux" || runtime.GOOS == "darwin" {
			t.Fatalf("Snapshot failed: %v", err)
		}
		t.Skipf("process stats unavailable: %v", err)
	}
	if stats.RSS == 0 {
		t.Errorf("Expected non-zero RSS: %+v", stats)
	}

	later := stats
	later.CPUUser += 1
	if d := later.Sub(stats); math.Abs(d.CPUTotal()-1) > 1e-9 {
		t.Errorf("Sub: got %v", d.CPUTotal())
	}
	t.Logf("Process: %s", stats)
}
