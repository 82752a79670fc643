// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqmutators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fastqtools "github.com/LessUp/fastqtools"
)

func TestTrimLeft(t *testing.T) {
	m := TrimLeft(2)
	r := &fastqtools.Record{Sequence: []byte("ACGTAC"), Quality: []byte("IIIIII")}
	outcome, err := m.Apply(r)
	require.NoError(t, err)
	assert.Equal(t, fastqtools.Modified, outcome)
	assert.Equal(t, "GTAC", string(r.Sequence))
	assert.Equal(t, "IIII", string(r.Quality))
	assert.True(t, r.IsOwned())
}

func TestTrimLeftFailsWhenTooShort(t *testing.T) {
	m := TrimLeft(10)
	r := &fastqtools.Record{Sequence: []byte("ACGT"), Quality: []byte("IIII")}
	outcome, err := m.Apply(r)
	require.NoError(t, err)
	assert.Equal(t, fastqtools.Failed, outcome)
}

func TestTrimRight(t *testing.T) {
	m := TrimRight(2)
	r := &fastqtools.Record{Sequence: []byte("ACGTAC"), Quality: []byte("IIIIII")}
	outcome, err := m.Apply(r)
	require.NoError(t, err)
	assert.Equal(t, fastqtools.Modified, outcome)
	assert.Equal(t, "ACGT", string(r.Sequence))
}

func TestTrimAdapterTrimsFromFirstMatch(t *testing.T) {
	m := TrimAdapter([]byte("AGATCGGAAGAGC"), 8, 2)
	r := &fastqtools.Record{
		Sequence: []byte("ACGTACGTAGATCGGAAGAGC"),
		Quality:  []byte("IIIIIIIIIIIIIIIIIIIII"),
	}
	outcome, err := m.Apply(r)
	require.NoError(t, err)
	assert.Equal(t, fastqtools.Modified, outcome)
	assert.Equal(t, "ACGTACGT", string(r.Sequence))
}

func TestTrimAdapterUnchangedWhenAbsent(t *testing.T) {
	m := TrimAdapter([]byte("AGATCGGAAGAGC"), 8, 2)
	r := &fastqtools.Record{Sequence: []byte("ACGTACGTACGT"), Quality: []byte("IIIIIIIIIIII")}
	outcome, err := m.Apply(r)
	require.NoError(t, err)
	assert.Equal(t, fastqtools.Unchanged, outcome)
}

func TestTrimAdapterFailsWhenResultTooShort(t *testing.T) {
	m := TrimAdapter([]byte("AGATCGGAAGAGC"), 8, 10)
	r := &fastqtools.Record{
		Sequence: []byte("ACGTAGATCGGAAGAGC"),
		Quality:  []byte("IIIIIIIIIIIIIIIII"),
	}
	outcome, err := m.Apply(r)
	require.NoError(t, err)
	assert.Equal(t, fastqtools.Failed, outcome)
}

func TestReverseComplementIsSelfInverse(t *testing.T) {
	original := &fastqtools.Record{
		Sequence: []byte("ACGTN"),
		Quality:  []byte("ABCDE"),
	}
	r := &fastqtools.Record{Sequence: append([]byte(nil), original.Sequence...), Quality: append([]byte(nil), original.Quality...)}

	_, err := ReverseComplement.Apply(r)
	require.NoError(t, err)
	assert.Equal(t, "NACGT", string(r.Sequence))

	_, err = ReverseComplement.Apply(r)
	require.NoError(t, err)
	assert.Equal(t, string(original.Sequence), string(r.Sequence))
	assert.Equal(t, string(original.Quality), string(r.Quality))
}
