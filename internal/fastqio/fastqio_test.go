// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fastqtools "github.com/LessUp/fastqtools"
)

func TestReaderParsesFourLineRecords(t *testing.T) {
	data := "@read1\nACGT\n+\nIIII\n@read2\nTTTT\n+\nJJJJ\n"
	r, err := NewReader(strings.NewReader(data), false)
	require.NoError(t, err)

	batch := fastqtools.NewBatch(10)
	outcome := r.ReadInto(batch)
	require.Equal(t, fastqtools.FilledAtLeastOne, outcome.Status)
	require.Equal(t, 2, batch.Len())
	assert.Equal(t, "@read1", string(batch.Records()[0].Name))
	assert.Equal(t, "ACGT", string(batch.Records()[0].Sequence))
	assert.Equal(t, "TTTT", string(batch.Records()[1].Sequence))
}

func TestReaderReportsEOFOnEmptyStream(t *testing.T) {
	r, err := NewReader(strings.NewReader(""), false)
	require.NoError(t, err)

	batch := fastqtools.NewBatch(10)
	outcome := r.ReadInto(batch)
	assert.Equal(t, fastqtools.Eof, outcome.Status)
}

func TestReaderRejectsMissingAtPrefix(t *testing.T) {
	r, err := NewReader(strings.NewReader("read1\nACGT\n+\nIIII\n"), false)
	require.NoError(t, err)

	batch := fastqtools.NewBatch(10)
	outcome := r.ReadInto(batch)
	assert.Equal(t, fastqtools.ParseError, outcome.Status)
	assert.Error(t, outcome.Err)
}

func TestReaderRejectsSequenceQualityLengthMismatch(t *testing.T) {
	r, err := NewReader(strings.NewReader("@r1\nACGT\n+\nII\n"), false)
	require.NoError(t, err)

	batch := fastqtools.NewBatch(10)
	outcome := r.ReadInto(batch)
	assert.Equal(t, fastqtools.ParseError, outcome.Status)
}

func TestWriterRoundTripsRecords(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, false)

	batch := fastqtools.NewBatch(10)
	r, err := NewReader(strings.NewReader("@r1\nACGT\n+\nIIII\n"), false)
	require.NoError(t, err)
	_ = r.ReadInto(batch)

	outcome := w.WriteBatch(batch)
	require.Equal(t, fastqtools.WriteOK, outcome.Status)
	require.NoError(t, w.Close())

	assert.Equal(t, "@r1\nACGT\n+\nIIII\n", buf.String())
}
