// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

import (
	"math"
	"time"
)

// unassignedSeqNo is the sentinel seq_no a batch carries between release
// and the next acquire's stamp, per spec's pool-clearing invariant.
const unassignedSeqNo = math.MaxUint64

// Batch is an ordered sequence of records moving through the pipeline as
// one unit, plus the bookkeeping InputStage and OutputStage need to
// restore input order.
type Batch struct {
	// SeqNo is assigned by InputStage, starting at 0 and incrementing by
	// exactly 1 per batch with no gaps. OutputStage uses it to restore
	// input order across a ProcessingStage worker pool that may finish
	// batches out of order.
	SeqNo uint64

	records  []Record
	capacity int

	// backing is the reusable byte arena borrowed records in this batch
	// alias into. It is reset (length truncated to 0, capacity kept) on
	// release, never reallocated unless growth is required.
	backing []byte

	// inputElapsed and bytesObserved are stamped by InputStage and read
	// by ProcessingStage when it assembles this batch's BatchStats, so
	// InputStage's wall time and observed byte count survive the handoff
	// across the SPMC queue.
	inputElapsed  time.Duration
	bytesObserved int64
}

// newBatch allocates a batch with room for capacity records and an
// initial backing arena sized for a typical FASTQ record.
func newBatch(capacity int) *Batch {
	const averageRecordBytes = 256
	return &Batch{
		SeqNo:    unassignedSeqNo,
		records:  make([]Record, 0, capacity),
		capacity: capacity,
		backing:  make([]byte, 0, capacity*averageRecordBytes),
	}
}

// NewBatch allocates a standalone batch outside of a BatchPool, for a
// RecordReader implementation's own tests to fill and inspect directly.
func NewBatch(capacity int) *Batch {
	return newBatch(capacity)
}

// Len returns the number of records currently held by the batch.
func (b *Batch) Len() int {
	return len(b.records)
}

// Cap returns the batch's fixed record capacity (batch_size).
func (b *Batch) Cap() int {
	return b.capacity
}

// Records returns the batch's current records for in-place inspection or
// mutation by ProcessingStage. The returned slice is only valid until the
// next call to AppendBorrowed or compact.
func (b *Batch) Records() []Record {
	return b.records
}

// Full reports whether the batch has reached batch_size records.
func (b *Batch) Full() bool {
	return len(b.records) >= b.capacity
}

// AppendBorrowed appends a new record borrowing name/sequence/quality/
// separator from the batch's backing arena. A RecordReader implementation
// (internal/fastqio's, or any other) writes bytes into the arena via
// AppendToBacking and passes the returned ranges back here.
func (b *Batch) AppendBorrowed(name, sequence, quality, separator []byte) {
	b.records = append(b.records, Record{
		Name:      name,
		Sequence:  sequence,
		Quality:   quality,
		Separator: separator,
	})
}

// growBacking ensures the backing arena has at least n additional free
// bytes, growing geometrically (doubling) like bytes.Buffer, and returns
// the arena so the reader can append into it. Growth copies the arena into
// a new array; byte slices borrowed before the growth keep referencing the
// old array, whose contents are left unchanged, so they still read back
// correctly but no longer alias the current arena.
func (b *Batch) growBacking(n int) []byte {
	if cap(b.backing)-len(b.backing) >= n {
		return b.backing
	}
	newCap := cap(b.backing)*2 + n
	grown := make([]byte, len(b.backing), newCap)
	copy(grown, b.backing)
	b.backing = grown
	return b.backing
}

// AppendToBacking appends data to the batch's backing arena and returns
// the slice it now occupies within the (possibly grown) arena, for a
// RecordReader to borrow into a Record's fields.
func (b *Batch) AppendToBacking(data []byte) []byte {
	b.backing = b.growBacking(len(data))
	start := len(b.backing)
	b.backing = append(b.backing, data...)
	return b.backing[start : start+len(data)]
}

// reset clears the batch to the empty, pool-fresh state: length 0,
// seq_no unassigned, backing arena truncated (capacity retained) per the
// pool's clearing invariant. Called by BatchPool.release.
func (b *Batch) reset() {
	for i := range b.records {
		b.records[i].reset()
	}
	b.records = b.records[:0]
	b.backing = b.backing[:0]
	b.SeqNo = unassignedSeqNo
	b.inputElapsed = 0
	b.bytesObserved = 0
}

// compact performs a stable in-place partition, keeping only records
// whose filtered and errored flags are both false, preserving their
// original relative order. This implements spec's "compacts surviving
// records in place (stable partition)".
func (b *Batch) compact() {
	write := 0
	for read := range b.records {
		if b.records[read].filtered || b.records[read].errored {
			continue
		}
		if write != read {
			b.records[write] = b.records[read]
		}
		write++
	}
	for i := write; i < len(b.records); i++ {
		b.records[i].reset()
	}
	b.records = b.records[:write]
}
