// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fastqio is the gzip-aware FASTQ RecordReader/RecordWriter
// InputStage and OutputStage drive through the fastqtools.RecordReader
// and fastqtools.RecordWriter interfaces. Compression is chosen by the
// caller for both: NewReader's and NewWriter's gzipped flag selects a
// pgzip reader or writer; the input is not inspected for a gzip magic
// number.
package fastqio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/klauspost/compress/pgzip"

	fastqtools "github.com/LessUp/fastqtools"
)

// Reader is a fastqtools.RecordReader over a four-line-per-record FASTQ
// stream, optionally gzip-compressed.
type Reader struct {
	scanner *bufio.Scanner
	closer  io.Closer
	atEOF   bool
}

// NewReader wraps src as a FASTQ Reader. If gzipped is true, src is
// decompressed with pgzip before scanning.
func NewReader(src io.Reader, gzipped bool) (*Reader, error) {
	var closer io.Closer
	if gzipped {
		gr, err := pgzip.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("fastqio: opening gzip stream: %w", err)
		}
		src = gr
		closer = gr
	}
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{scanner: scanner, closer: closer}, nil
}

// Close releases the underlying gzip reader, if one was opened.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// ReadInto fills batch with up to batch.Cap() records, borrowing each
// record's bytes from the batch's backing arena so the common path never
// allocates per record.
func (r *Reader) ReadInto(batch *fastqtools.Batch) fastqtools.ReadOutcome {
	if r.atEOF {
		return fastqtools.ReadOutcome{Status: fastqtools.Eof}
	}

	for !batch.Full() {
		ok, err := r.readOneInto(batch)
		if err != nil {
			return fastqtools.ReadOutcome{Status: fastqtools.ParseError, Err: err}
		}
		if !ok {
			r.atEOF = true
			break
		}
	}

	if batch.Len() == 0 {
		return fastqtools.ReadOutcome{Status: fastqtools.Eof}
	}
	return fastqtools.ReadOutcome{Status: fastqtools.FilledAtLeastOne}
}

// readOneInto reads one four-line record into batch. It returns
// (false, nil) on clean EOF before any line of the record was read.
func (r *Reader) readOneInto(batch *fastqtools.Batch) (bool, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return false, fmt.Errorf("fastqio: reading name line: %w", err)
		}
		return false, nil
	}
	nameLine := r.scanner.Bytes()
	if len(nameLine) == 0 || nameLine[0] != '@' {
		return false, fmt.Errorf("fastqio: expected '@' at start of name line, got %q", truncate(nameLine))
	}
	name := batch.AppendToBacking(nameLine)

	if !r.scanner.Scan() {
		return false, fmt.Errorf("fastqio: truncated record: missing sequence line")
	}
	sequence := batch.AppendToBacking(r.scanner.Bytes())

	if !r.scanner.Scan() {
		return false, fmt.Errorf("fastqio: truncated record: missing separator line")
	}
	sepLine := r.scanner.Bytes()
	if len(sepLine) == 0 || sepLine[0] != '+' {
		return false, fmt.Errorf("fastqio: expected '+' separator line, got %q", truncate(sepLine))
	}
	separator := batch.AppendToBacking(sepLine)

	if !r.scanner.Scan() {
		return false, fmt.Errorf("fastqio: truncated record: missing quality line")
	}
	quality := batch.AppendToBacking(r.scanner.Bytes())

	if len(sequence) != len(quality) {
		return false, fmt.Errorf("fastqio: sequence/quality length mismatch: %d vs %d", len(sequence), len(quality))
	}
	if !fastqtools.ValidateSequence(sequence) {
		return false, fmt.Errorf("fastqio: sequence contains a byte outside the A/C/G/T/N alphabet: %q", sequence)
	}

	batch.AppendBorrowed(name, sequence, quality, separator)
	return true, nil
}

func truncate(b []byte) []byte {
	const max = 64
	if len(b) > max {
		return b[:max]
	}
	return b
}
