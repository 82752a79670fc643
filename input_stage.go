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

// inputStage serially reads batched records from reader and hands them
// to the ProcessingStage worker pool via out. It is the pipeline's single
// producer: exactly one goroutine ever calls run, which is what makes the
// SPMC queue below a legal fit and is the source of the whole pipeline's
// order guarantee together with outputStage's single-consumer reorder
// buffer.
type inputStage struct {
	reader    RecordReader
	pool      *BatchPool
	out       *lfq.SPMC[*Batch]
	batchSize int
	maxFlight int
	log       zerolog.Logger
}

// run reads until EOF or error, stamping each batch with a monotonically
// increasing seq_no starting at 0. It returns the first ReadFailure it
// observes, or nil on clean EOF or cooperative cancellation.
func (s *inputStage) run(ctx context.Context) error {
	var nextSeq uint64
	backoff := iox.Backoff{}

	for {
		if ctx.Err() != nil {
			return nil
		}

		start := time.Now()
		batch := s.pool.acquire(s.maxFlight)

		outcome := s.reader.ReadInto(batch)
		switch outcome.Status {
		case Eof:
			// spec: "if zero records were read... release the empty
			// batch, emit an end-of-stream signal downstream, stop."
			s.pool.release(batch)
			return nil
		case ParseError:
			s.pool.release(batch)
			return newError(ReadFailure, "reader returned a parse error", outcome.Err)
		}

		batch.SeqNo = nextSeq
		nextSeq++
		batch.inputElapsed = time.Since(start)
		batch.bytesObserved = observedBytes(batch)

		for {
			err := s.out.Enqueue(&batch)
			if err == nil {
				backoff.Reset()
				break
			}
			if !lfq.IsWouldBlock(err) {
				s.pool.release(batch)
				return newError(ReadFailure, "input->processing queue enqueue failed", err)
			}
			if ctx.Err() != nil {
				s.pool.release(batch)
				return nil
			}
			backoff.Wait()
		}
	}
}

// observedBytes sums sequence and quality lengths across batch's records,
// giving ProcessingStage's BatchStats a real byte count to compute
// throughput from instead of an assumed record length.
func observedBytes(batch *Batch) int64 {
	var n int64
	for _, r := range batch.Records() {
		n += int64(len(r.Sequence)) + int64(len(r.Quality))
	}
	return n
}
