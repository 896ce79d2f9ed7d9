package system

import (
	"sync"
)

// FloatPool reuses []float64 buffers to keep the garbage collector out of
// playback.
type FloatPool struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = NewFloatPool()

func NewFloatPool() *FloatPool {
	return &FloatPool{
		pools: make(map[int]*sync.Pool),
	}
}

// GetFloats returns an empty buffer with capacity size from the shared pool.
func GetFloats(size int) *[]float64 {
	return globalPool.Get(size)
}

// PutFloats hands a buffer back to the shared pool.
func PutFloats(buf *[]float64) {
	globalPool.Put(buf)
}

func (p *FloatPool) Get(size int) *[]float64 {
	p.mu.RLock()
	pool, exists := p.pools[size]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[size]
		if !exists {
			pool = &sync.Pool{
				New: func() any {
					buf := make([]float64, 0, size)
					return &buf
				},
			}
			p.pools[size] = pool
		}
		p.mu.Unlock()
	}

	buf := pool.Get().(*[]float64)
	*buf = (*buf)[:0]
	return buf
}

// Put keeps only buffers whose capacity Get has handed out before.
func (p *FloatPool) Put(buf *[]float64) {
	if buf == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.pools[cap(*buf)]
	p.mu.RUnlock()

	if exists {
		pool.Put(buf)
	}
}
