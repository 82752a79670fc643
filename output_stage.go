// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

import (
	"context"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"github.com/rs/zerolog"
)

// outputStage is the pipeline's single consumer: it drains stageResults
// from the processing->output queue, which may arrive in any order, and
// writes them to writer in strict ascending seq_no order by parking
// out-of-order arrivals in a reorder buffer keyed by seq_no.
//
// Only one goroutine ever calls run, which is what lets statsCollector
// fold BatchStats without synchronization.
type outputStage struct {
	writer  RecordWriter
	pool    *BatchPool
	in      *lfq.MPSC[*stageResult]
	collect *statsCollector
	log     zerolog.Logger

	pending   map[uint64]*stageResult
	nextWrite uint64
}

// run drains in until ProcessingStage is done and the reorder buffer is
// empty, or until it observes a WriteFailure, a structural dequeue
// failure, or cooperative cancellation. On a failure or cancellation, any
// batches still parked in the reorder buffer are released to the pool
// unwritten rather than written out of order.
func (s *outputStage) run(ctx context.Context, drainWhenProcessingDone func() bool) error {
	s.pending = make(map[uint64]*stageResult)
	s.nextWrite = 0
	backoff := iox.Backoff{}

	for {
		if err := s.flushReady(); err != nil {
			s.releasePending()
			return err
		}

		if ctx.Err() != nil {
			s.releasePending()
			return nil
		}

		// Read the done flag before dequeuing: if ProcessingStage had
		// already finished, every result it enqueued is visible here.
		processingDone := drainWhenProcessingDone()
		result, err := s.in.Dequeue()
		if err != nil {
			if !lfq.IsWouldBlock(err) {
				s.releasePending()
				return newError(WriteFailure, "processing->output queue dequeue failed", err)
			}
			if processingDone && len(s.pending) == 0 {
				return nil
			}
			if ctx.Err() != nil {
				s.releasePending()
				return nil
			}
			backoff.Wait()
			continue
		}
		backoff.Reset()

		s.pending[result.batch.SeqNo] = result
	}
}

// flushReady writes every batch currently available in ascending seq_no
// order starting at nextWrite, stopping at the first gap.
func (s *outputStage) flushReady() error {
	for {
		result, ok := s.pending[s.nextWrite]
		if !ok {
			return nil
		}
		delete(s.pending, s.nextWrite)

		start := time.Now()
		outcome := s.writer.WriteBatch(result.batch)
		writeElapsed := time.Since(start)

		if outcome.Status == WriteIoError {
			s.pool.release(result.batch)
			return newError(WriteFailure, "writer returned an error", outcome.Err)
		}

		result.stats.OutputTime = writeElapsed
		s.collect.fold(result.stats)
		s.pool.release(result.batch)
		s.nextWrite++
	}
}

// releasePending returns every batch still parked in the reorder buffer
// to the pool, unwritten. Called only on cancellation or structural
// failure, where writing out of order would violate the ordering
// guarantee.
func (s *outputStage) releasePending() {
	for seq, result := range s.pending {
		s.pool.release(result.batch)
		delete(s.pending, seq)
	}
}
