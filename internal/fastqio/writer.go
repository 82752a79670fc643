// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqio

import (
	"bufio"
	"io"

	"github.com/klauspost/compress/pgzip"

	fastqtools "github.com/LessUp/fastqtools"
)

// Writer is a fastqtools.RecordWriter that serializes a batch's surviving
// records back into four-line FASTQ form.
type Writer struct {
	bw     *bufio.Writer
	gw     *pgzip.Writer
	closer io.Closer
}

// NewWriter wraps dst as a FASTQ Writer. If gzipped is true, output is
// compressed with pgzip before reaching dst.
func NewWriter(dst io.Writer, gzipped bool) *Writer {
	if !gzipped {
		return &Writer{bw: bufio.NewWriter(dst)}
	}
	gw := pgzip.NewWriter(dst)
	return &Writer{bw: bufio.NewWriter(gw), gw: gw, closer: gw}
}

// Close flushes the buffered writer and, if compression was enabled,
// closes the underlying gzip writer.
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		return err
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

// WriteBatch writes every surviving record of batch, in the batch's
// current order, as four lines each: name, sequence, separator, quality.
func (w *Writer) WriteBatch(batch *fastqtools.Batch) fastqtools.WriteOutcome {
	for _, r := range batch.Records() {
		if err := w.writeRecord(&r); err != nil {
			return fastqtools.WriteOutcome{Status: fastqtools.WriteIoError, Err: err}
		}
	}
	return fastqtools.WriteOutcome{Status: fastqtools.WriteOK}
}

func (w *Writer) writeRecord(r *fastqtools.Record) error {
	if _, err := w.bw.Write(r.Name); err != nil {
		return err
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return err
	}
	if _, err := w.bw.Write(r.Sequence); err != nil {
		return err
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return err
	}
	if _, err := w.bw.Write(r.Separator); err != nil {
		return err
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return err
	}
	if _, err := w.bw.Write(r.Quality); err != nil {
		return err
	}
	return w.bw.WriteByte('\n')
}
