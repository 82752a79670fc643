// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

// ReadStatus classifies the result of a single RecordReader.ReadInto
// call.
type ReadStatus int

const (
	// FilledAtLeastOne means the batch now holds one or more records
	// read from the stream.
	FilledAtLeastOne ReadStatus = iota
	// Eof means the stream is exhausted and no records were read.
	Eof
	// ParseError means the stream yielded malformed data; Err on the
	// returned ReadOutcome carries the details.
	ParseError
)

// ReadOutcome is the result of one RecordReader.ReadInto call.
type ReadOutcome struct {
	Status ReadStatus
	Err    error
}

// RecordReader is the external collaborator InputStage consumes. It is
// not implemented by this package: InputStage only depends on the
// interface, and the concrete gzip-aware FASTQ reader lives in
// internal/fastqio.
type RecordReader interface {
	// ReadInto fills batch with up to batch.Cap() records, appending
	// their bytes into the batch's backing arena so borrowed records
	// stay zero-copy. It must not block indefinitely if the underlying
	// stream is still open, but may block on I/O.
	ReadInto(batch *Batch) ReadOutcome
}

// WriteStatus classifies the result of a single RecordWriter.WriteBatch
// call.
type WriteStatus int

const (
	// WriteOK means every surviving record in the batch was written.
	WriteOK WriteStatus = iota
	// WriteIoError means the underlying sink failed.
	WriteIoError
)

// WriteOutcome is the result of one RecordWriter.WriteBatch call.
type WriteOutcome struct {
	Status WriteStatus
	Err    error
}

// RecordWriter is the external collaborator OutputStage consumes.
type RecordWriter interface {
	// WriteBatch writes every surviving record of batch, in the batch's
	// current order, to the sink.
	WriteBatch(batch *Batch) WriteOutcome
}
