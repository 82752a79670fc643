// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOwnClonesBorrowedFields(t *testing.T) {
	arena := []byte("@read1ACGTNIIII+")
	r := &Record{
		Name:     arena[0:6],
		Sequence: arena[6:10],
		Quality:  arena[10:14],
	}
	require.False(t, r.IsOwned())

	r.Own()
	assert.True(t, r.IsOwned())
	assert.Equal(t, []byte("ACGT"), r.Sequence)

	arena[6] = 'X'
	assert.NotEqual(t, byte('X'), r.Sequence[0], "owned record must not alias the original backing array")
}

func TestRecordOwnIsIdempotent(t *testing.T) {
	r := &Record{Sequence: []byte("ACGT")}
	r.Own()
	first := r.Sequence
	r.Own()
	assert.Equal(t, first, r.Sequence)
}

func TestRecordResetClearsAllFields(t *testing.T) {
	r := &Record{
		Name:      []byte("@x"),
		Sequence:  []byte("ACGT"),
		Quality:   []byte("IIII"),
		Separator: []byte("+"),
		owned:     true,
		modified:  true,
		filtered:  true,
		errored:   true,
	}
	r.reset()
	assert.Nil(t, r.Name)
	assert.Nil(t, r.Sequence)
	assert.Nil(t, r.Quality)
	assert.Nil(t, r.Separator)
	assert.False(t, r.owned)
	assert.False(t, r.modified)
	assert.False(t, r.filtered)
	assert.False(t, r.errored)
}

func TestValidateSequence(t *testing.T) {
	cases := []struct {
		name string
		seq  []byte
		want bool
	}{
		{"all upper bases", []byte("ACGTN"), true},
		{"all lower bases", []byte("acgtn"), true},
		{"mixed case", []byte("AcGtN"), true},
		{"empty", []byte{}, true},
		{"contains U", []byte("ACGU"), false},
		{"contains digit", []byte("ACG1"), false},
		{"contains space", []byte("ACG T"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateSequence(tc.seq))
		})
	}
}
