// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

import (
	"context"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/lfq"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"
)

// PipelineRunner wires a BatchPool, InputStage, ProcessingStage worker
// pool, and OutputStage around a pair of bounded queues, and runs them to
// completion exactly once.
type PipelineRunner struct {
	cfg        Config
	reader     RecordReader
	writer     RecordWriter
	predicates []Predicate
	mutators   []Mutator
	log        zerolog.Logger
	metrics    *Metrics
}

// NewPipelineRunner validates cfg and constructs a runner. reader and
// writer are the external collaborators the pipeline drives; predicates
// and mutators are applied in the order given.
func NewPipelineRunner(cfg Config, reader RecordReader, writer RecordWriter, predicates []Predicate, mutators []Mutator, log zerolog.Logger, metrics *Metrics) (*PipelineRunner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &PipelineRunner{
		cfg:        cfg,
		reader:     reader,
		writer:     writer,
		predicates: predicates,
		mutators:   mutators,
		log:        log,
		metrics:    metrics,
	}, nil
}

// Run drives the full pipeline to completion: InputStage reads until EOF
// or failure, a ProcessingStage worker pool processes batches in
// parallel, and OutputStage restores seq_no order and writes results. It
// returns the first structural failure observed by any stage (wrapped
// with go.uber.org/multierr if more than one stage fails concurrently
// during cancellation unwind), or nil plus the run's PipelineStats on a
// clean finish.
func (r *PipelineRunner) Run(ctx context.Context) (PipelineStats, error) {
	runID := uuid.NewString()
	log := r.log.With().Str("run_id", runID).Logger()

	pool := newBatchPool(r.cfg.BatchSize, r.cfg.PoolInitialSize, r.cfg.PoolMaxSize)
	if r.cfg.EnablePoolShrink {
		pool.startShrink(r.cfg.PoolShrinkFloor, r.cfg.ShrinkInterval)
		defer pool.stopShrink()
	}
	defer pool.closePool()

	inQueue := lfq.NewSPMC[*Batch](r.cfg.MaxInFlight)
	outQueue := lfq.NewMPSC[*stageResult](r.cfg.MaxInFlight)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var inputDone atomix.Bool
	var processingDone atomix.Bool

	in := &inputStage{
		reader:    r.reader,
		pool:      pool,
		out:       inQueue,
		batchSize: r.cfg.BatchSize,
		maxFlight: r.cfg.MaxInFlight,
		log:       log,
	}
	proc := &processingStage{
		predicates:  r.predicates,
		mutators:    r.mutators,
		in:          inQueue,
		out:         outQueue,
		threadCount: r.cfg.resolvedThreadCount(),
		log:         log,
	}
	collector := newStatsCollector(runID)
	out := &outputStage{
		writer:  r.writer,
		pool:    pool,
		in:      outQueue,
		collect: collector,
		log:     log,
	}

	var wg sync.WaitGroup
	var inputErr, processingErr, outputErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		defer inputDone.StoreRelease(true)
		if err := in.run(runCtx); err != nil {
			inputErr = err
			cancel()
		}
	}()
	go func() {
		defer wg.Done()
		defer processingDone.StoreRelease(true)
		if err := proc.run(runCtx, func() bool { return inputDone.LoadAcquire() }); err != nil {
			processingErr = err
			cancel()
		}
	}()
	go func() {
		defer wg.Done()
		if err := out.run(runCtx, func() bool { return processingDone.LoadAcquire() }); err != nil {
			outputErr = err
			cancel()
		}
	}()

	wg.Wait()

	stats := collector.finish(pool.stats())
	if r.metrics != nil {
		r.metrics.observe(stats)
	}

	err := multierr.Combine(inputErr, processingErr, outputErr)
	if err != nil {
		log.Error().Err(err).Msg("pipeline run failed")
		return stats, err
	}
	if ctx.Err() != nil {
		return stats, newError(Cancelled, "run cancelled", ctx.Err())
	}
	log.Info().
		Int("total_records", stats.TotalRecords).
		Int("passed_records", stats.PassedRecords).
		Int("filtered_records", stats.FilteredRecords).
		Int("errored_records", stats.ErroredRecords).
		Dur("wall_time", stats.WallTime).
		Msg("pipeline run complete")
	return stats, nil
}
