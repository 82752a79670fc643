// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

import (
	"sync"
	"time"
)

// PoolStats is a snapshot of BatchPool's counters.
type PoolStats struct {
	PoolSize    int
	ActiveCount int
	HitCount    uint64
	MissCount   uint64
}

// HitRate returns hits / (hits + misses) across the pool's lifetime, or 0
// if acquire has never been called.
func (s PoolStats) HitRate() float64 {
	total := s.HitCount + s.MissCount
	if total == 0 {
		return 0
	}
	return float64(s.HitCount) / float64(total)
}

// BatchPool is a recyclable allocator for fixed-capacity batch buffers,
// shared by InputStage (acquire) and OutputStage (release).
//
// A single mutex guarding a LIFO free list (acquire hands out the most
// recently released batch) is the whole implementation:
// the spec is explicit that lock-free isn't required here, and every
// field below is already serialized by mu, so none of them need to be
// atomic. The pipeline's two genuinely lock-free boundaries are the
// SPMC/MPSC queues from code.hybscloud.com/lfq, not this pool.
type BatchPool struct {
	mu   sync.Mutex
	cond *sync.Cond

	batchSize  int
	maxPool    int
	free       []*Batch
	active     int
	totalAlloc int
	hits       uint64
	misses     uint64

	closed bool

	shrinkFloor    int
	shrinkInterval time.Duration
	shrinkStop     chan struct{}
	shrinkDone     chan struct{}
}

// newBatchPool creates a pool pre-allocating initialSize batches of
// batchSize capacity, never growing its free list past maxPoolSize.
func newBatchPool(batchSize, initialSize, maxPoolSize int) *BatchPool {
	p := &BatchPool{
		batchSize: batchSize,
		maxPool:   maxPoolSize,
		free:      make([]*Batch, 0, initialSize),
	}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < initialSize; i++ {
		p.free = append(p.free, newBatch(batchSize))
		p.totalAlloc++
	}
	return p
}

// acquire returns an empty batch. If the free list is empty AND the
// pool's active count has already reached maxInFlight, acquire blocks
// until a release happens; this is the pipeline's single backpressure
// point. If the free list is empty but active is still under
// maxInFlight, acquire allocates a fresh batch (a miss) rather than
// waiting, since growing the live-batch count is still within budget.
func (p *BatchPool) acquire(maxInFlight int) *Batch {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.free) == 0 && p.active >= maxInFlight && !p.closed {
		p.cond.Wait()
	}

	var b *Batch
	if n := len(p.free); n > 0 {
		b = p.free[n-1]
		p.free = p.free[:n-1]
		p.hits++
	} else {
		b = newBatch(p.batchSize)
		p.totalAlloc++
		p.misses++
	}
	p.active++
	return b
}

// release clears batch and returns it to the free list, unless the pool
// is already at max_pool_size, in which case the batch is dropped (left
// for GC). Always wakes any goroutine blocked in acquire, since a release
// always frees up in-flight capacity regardless of where the batch ends
// up.
func (p *BatchPool) release(b *Batch) {
	b.reset()

	p.mu.Lock()
	p.active--
	if len(p.free) < p.maxPool {
		p.free = append(p.free, b)
	}
	p.mu.Unlock()

	p.cond.Broadcast()
}

// stats returns a snapshot of the pool's counters.
func (p *BatchPool) stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PoolStats{
		PoolSize:    len(p.free),
		ActiveCount: p.active,
		HitCount:    p.hits,
		MissCount:   p.misses,
	}
}

// startShrink launches a background goroutine that, every interval, trims
// the free list down to floor batches. It never touches active batches:
// shrinking only ever pops from the free list, which by construction
// holds no batch currently owned by a stage.
func (p *BatchPool) startShrink(floor int, interval time.Duration) {
	p.shrinkFloor = floor
	p.shrinkInterval = interval
	p.shrinkStop = make(chan struct{})
	p.shrinkDone = make(chan struct{})

	go func() {
		defer close(p.shrinkDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.shrinkOnce()
			case <-p.shrinkStop:
				return
			}
		}
	}()
}

func (p *BatchPool) shrinkOnce() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.free) > p.shrinkFloor {
		p.free = p.free[:len(p.free)-1]
	}
}

// stopShrink stops the background shrink goroutine, if one was started,
// and waits for it to exit.
func (p *BatchPool) stopShrink() {
	if p.shrinkStop == nil {
		return
	}
	close(p.shrinkStop)
	<-p.shrinkDone
}

// closePool marks the pool closed, waking every goroutine blocked in
// acquire so pipeline shutdown can proceed even if max_in_flight is still
// saturated.
func (p *BatchPool) closePool() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
}
