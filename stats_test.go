// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBatchStatsAdd(t *testing.T) {
	a := BatchStats{Total: 10, Passed: 8, Filtered: 1, Errored: 1, InputTime: time.Second, BytesObserved: 100}
	b := BatchStats{Total: 5, Passed: 5, BytesObserved: 50}
	a.add(b)
	assert.Equal(t, 15, a.Total)
	assert.Equal(t, 13, a.Passed)
	assert.Equal(t, int64(150), a.BytesObserved)
}

func TestStatsCollectorFoldsMultipleBatches(t *testing.T) {
	c := newStatsCollector("run-1")
	c.fold(BatchStats{Total: 10, Passed: 9, Filtered: 1, BytesObserved: 1024 * 1024})
	c.fold(BatchStats{Total: 20, Passed: 20, BytesObserved: 1024 * 1024})

	stats := c.finish(PoolStats{HitCount: 3, MissCount: 1})
	assert.Equal(t, "run-1", stats.RunID)
	assert.Equal(t, 30, stats.TotalRecords)
	assert.Equal(t, 29, stats.PassedRecords)
	assert.Equal(t, 1, stats.FilteredRecords)
	assert.InDelta(t, 0.75, stats.PoolHitRate(), 0.0001)
	assert.GreaterOrEqual(t, stats.WallTime, time.Duration(0))
}

func TestStatsCollectorEmptyRunHasZeroThroughput(t *testing.T) {
	c := newStatsCollector("run-empty")
	stats := c.finish(PoolStats{})
	assert.Equal(t, 0, stats.TotalRecords)
	assert.Equal(t, float64(0), stats.ThroughputRecordsPerSecond)
	assert.Equal(t, float64(0), stats.ThroughputMegabytesPerSecond)
}
