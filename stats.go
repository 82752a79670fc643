// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

import "time"

// BatchStats is a per-batch accumulator, folded into PipelineStats by
// OutputStage.
type BatchStats struct {
	Total    int
	Passed   int
	Filtered int
	Modified int
	Errored  int

	// InputTime, ProcessingTime, and OutputTime are this batch's
	// contribution to each stage's wall time.
	InputTime      time.Duration
	ProcessingTime time.Duration
	OutputTime     time.Duration

	// BytesObserved is the sum of len(Sequence)+len(Quality) across every
	// record InputStage read into this batch, used to compute throughput
	// from actual bytes rather than an assumed read length.
	BytesObserved int64
}

// add folds other into s in place.
func (s *BatchStats) add(other BatchStats) {
	s.Total += other.Total
	s.Passed += other.Passed
	s.Filtered += other.Filtered
	s.Modified += other.Modified
	s.Errored += other.Errored
	s.InputTime += other.InputTime
	s.ProcessingTime += other.ProcessingTime
	s.OutputTime += other.OutputTime
	s.BytesObserved += other.BytesObserved
}

// PipelineStats is the aggregate result of one PipelineRunner.Run call:
// the contract callers observe.
type PipelineStats struct {
	RunID string

	TotalRecords    int
	PassedRecords   int
	FilteredRecords int
	ModifiedRecords int
	ErroredRecords  int

	InputTime      time.Duration
	ProcessingTime time.Duration
	OutputTime     time.Duration
	WallTime       time.Duration

	ThroughputRecordsPerSecond   float64
	ThroughputMegabytesPerSecond float64

	Pool PoolStats
}

// PoolHitRate returns Pool.HitRate(), the contract name spec names
// explicitly ("pool_hit_rate = hits / (hits + misses) across the whole
// run").
func (s PipelineStats) PoolHitRate() float64 {
	return s.Pool.HitRate()
}

// statsCollector accumulates BatchStats folded in one at a time by
// OutputStage's single goroutine. No synchronization is needed beyond
// that single-writer discipline: per spec, "the aggregate PipelineStats
// struct is updated only by OutputStage's single thread".
type statsCollector struct {
	runID   string
	agg     BatchStats
	wall    time.Duration
	started time.Time
}

func newStatsCollector(runID string) *statsCollector {
	return &statsCollector{runID: runID, started: time.Now()}
}

func (c *statsCollector) fold(b BatchStats) {
	c.agg.add(b)
}

func (c *statsCollector) finish(pool PoolStats) PipelineStats {
	wall := time.Since(c.started)
	stats := PipelineStats{
		RunID:           c.runID,
		TotalRecords:    c.agg.Total,
		PassedRecords:   c.agg.Passed,
		FilteredRecords: c.agg.Filtered,
		ModifiedRecords: c.agg.Modified,
		ErroredRecords:  c.agg.Errored,
		InputTime:       c.agg.InputTime,
		ProcessingTime:  c.agg.ProcessingTime,
		OutputTime:      c.agg.OutputTime,
		WallTime:        wall,
		Pool:            pool,
	}
	if seconds := wall.Seconds(); seconds > 0 {
		stats.ThroughputRecordsPerSecond = float64(c.agg.Total) / seconds
		stats.ThroughputMegabytesPerSecond = float64(c.agg.BytesObserved) / (1024 * 1024) / seconds
	}
	return stats
}
