// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

import (
	"context"
	"fmt"
	"sync"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"github.com/rs/zerolog"
)

// stageResult pairs a processed batch with the BatchStats its worker
// accumulated, the unit that crosses the MPSC queue into OutputStage.
type stageResult struct {
	batch *Batch
	stats BatchStats
}

// processingStage runs threadCount worker goroutines, each pulling batches
// from in, running every record through the predicate chain then the
// mutator chain, and pushing the result to out. Workers are interchangeable:
// any worker may process any batch, which is exactly what makes results
// arrive at OutputStage out of seq_no order and is why OutputStage's
// reorder buffer exists.
type processingStage struct {
	predicates  []Predicate
	mutators    []Mutator
	in          *lfq.SPMC[*Batch]
	out         *lfq.MPSC[*stageResult]
	threadCount int
	log         zerolog.Logger
}

// run launches threadCount workers and blocks until every one exits.
// Workers exit once InputStage is done and the in queue has run dry, when
// ctx is cancelled, or on a structural failure; the first structural
// failure cancels the remaining workers and is returned. Per-record
// processor failures never reach this return value; they are folded into
// BatchStats.
func (s *processingStage) run(ctx context.Context, drainWhenInputDone func() bool) error {
	n := s.threadCount
	if n <= 0 {
		n = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			if err := s.worker(ctx, workerID, drainWhenInputDone); err != nil {
				errs <- err
				cancel()
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *processingStage) worker(ctx context.Context, workerID int, drainWhenInputDone func() bool) error {
	backoff := iox.Backoff{}

	for {
		// Read the done flag before dequeuing: if InputStage had already
		// finished, every batch it enqueued is visible to this Dequeue.
		inputDone := drainWhenInputDone()
		batch, err := s.in.Dequeue()
		if err != nil {
			if !lfq.IsWouldBlock(err) {
				return newError(ProcessorFailureStructural, "input->processing queue dequeue failed", err)
			}
			if ctx.Err() != nil {
				return nil
			}
			if inputDone {
				// InputStage is done and the queue is empty: nothing more
				// will ever arrive for this worker.
				return nil
			}
			backoff.Wait()
			continue
		}
		backoff.Reset()

		start := time.Now()
		stats, procErr := s.processBatch(batch)
		if procErr != nil {
			return procErr
		}
		stats.InputTime = batch.inputElapsed
		stats.BytesObserved = batch.bytesObserved
		stats.ProcessingTime = time.Since(start)

		result := &stageResult{batch: batch, stats: stats}
		for {
			err := s.out.Enqueue(&result)
			if err == nil {
				break
			}
			if !lfq.IsWouldBlock(err) {
				return newError(ProcessorFailureStructural, "processing->output queue enqueue failed", err)
			}
			if ctx.Err() != nil {
				return nil
			}
			iox.Backoff{}.Wait()
		}
	}
}

// processBatch runs the predicate then mutator chain over every record in
// batch, isolating per-record panics and errors so one bad record never
// takes down the worker, then compacts the batch to its surviving records.
func (s *processingStage) processBatch(batch *Batch) (stats BatchStats, err error) {
	records := batch.Records()
	stats.Total = len(records)

	for i := range records {
		r := &records[i]
		passed, panicked := s.evaluatePredicates(r)
		if panicked {
			r.errored = true
			stats.Errored++
			continue
		}
		if !passed {
			r.filtered = true
			stats.Filtered++
			continue
		}
		modified, failed := s.applyMutators(r)
		if failed {
			r.errored = true
			stats.Errored++
			continue
		}
		if modified {
			stats.Modified++
		}
		stats.Passed++
	}

	batch.compact()
	return stats, nil
}

// evaluatePredicates runs the predicate chain with short-circuit AND. A
// predicate that panics is not the same as one that legitimately returns
// false: the former marks the record errored, the latter filtered.
func (s *processingStage) evaluatePredicates(r *Record) (passed bool, panicked bool) {
	for _, p := range s.predicates {
		result, panicked := s.safeEvaluate(p, r)
		if panicked {
			return false, true
		}
		if !result {
			return false, false
		}
	}
	return true, false
}

func (s *processingStage) safeEvaluate(p Predicate, r *Record) (result bool, panicked bool) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error().Interface("panic", rec).Msg("predicate panicked; marking record errored")
			result = false
			panicked = true
		}
	}()
	return p.Evaluate(r), false
}

// applyMutators runs the mutator chain in order, stopping at the first
// Failed outcome or error. A mutator that panics is treated the same as a
// Failed outcome: the record is marked errored, not the worker crashed.
func (s *processingStage) applyMutators(r *Record) (modified bool, failed bool) {
	for _, m := range s.mutators {
		outcome, err := s.safeApply(m, r)
		if err != nil || outcome == Failed {
			s.log.Debug().Err(err).Msg("mutator failed; marking record errored")
			return modified, true
		}
		if outcome == Modified {
			modified = true
		}
	}
	return modified, false
}

func (s *processingStage) safeApply(m Mutator, r *Record) (outcome MutationOutcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error().Interface("panic", rec).Msg("mutator panicked; marking record errored")
			outcome = Failed
			err = fmt.Errorf("mutator panicked: %v", rec)
		}
	}()
	return m.Apply(r)
}
