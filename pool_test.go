// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchPoolAcquireReusesReleasedBatches(t *testing.T) {
	p := newBatchPool(10, 1, 10)
	b1 := p.acquire(4)
	p.release(b1)

	b2 := p.acquire(4)
	assert.Same(t, b1, b2, "a released batch should be handed back out before allocating a new one")

	stats := p.stats()
	assert.Equal(t, uint64(2), stats.HitCount)
	assert.Equal(t, uint64(0), stats.MissCount)
}

func TestBatchPoolAcquireCountsMissesWhenFreeListEmpty(t *testing.T) {
	p := newBatchPool(10, 0, 10)
	p.acquire(4)
	stats := p.stats()
	assert.Equal(t, uint64(1), stats.MissCount)
}

func TestBatchPoolAcquireBlocksAtMaxInFlight(t *testing.T) {
	p := newBatchPool(10, 0, 10)
	const maxInFlight = 2

	b1 := p.acquire(maxInFlight)
	b2 := p.acquire(maxInFlight)

	unblocked := make(chan *Batch, 1)
	go func() {
		unblocked <- p.acquire(maxInFlight)
	}()

	select {
	case <-unblocked:
		t.Fatal("acquire should have blocked at max_in_flight")
	case <-time.After(50 * time.Millisecond):
	}

	p.release(b1)

	select {
	case b3 := <-unblocked:
		require.NotNil(t, b3)
	case <-time.After(time.Second):
		t.Fatal("acquire did not unblock after a release")
	}

	assert.Equal(t, 2, p.stats().ActiveCount)
	p.release(b2)
}

func TestBatchPoolReleaseDropsBeyondMaxPoolSize(t *testing.T) {
	p := newBatchPool(10, 0, 1)
	b1 := p.acquire(10)
	b2 := p.acquire(10)

	p.release(b1)
	p.release(b2)

	assert.Equal(t, 1, p.stats().PoolSize, "free list must never exceed max_pool_size")
}

func TestBatchPoolStatsActiveCountReturnsToZero(t *testing.T) {
	p := newBatchPool(10, 0, 10)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := p.acquire(8)
			time.Sleep(time.Millisecond)
			p.release(b)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, p.stats().ActiveCount)
}

func TestBatchPoolShrinkNeverTouchesActiveBatches(t *testing.T) {
	p := newBatchPool(10, 5, 10)
	active := p.acquire(10)

	p.startShrink(0, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	p.stopShrink()

	assert.Equal(t, 0, p.stats().PoolSize)
	assert.Equal(t, 1, p.stats().ActiveCount)
	p.release(active)
}

func TestBatchPoolCloseUnblocksWaitingAcquires(t *testing.T) {
	p := newBatchPool(10, 0, 10)
	p.acquire(1)

	done := make(chan struct{})
	go func() {
		p.acquire(1)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	p.closePool()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("closePool should unblock a waiting acquire")
	}
}

func TestPoolStatsHitRate(t *testing.T) {
	s := PoolStats{HitCount: 3, MissCount: 1}
	assert.InDelta(t, 0.75, s.HitRate(), 0.0001)

	empty := PoolStats{}
	assert.Equal(t, float64(0), empty.HitRate())
}
