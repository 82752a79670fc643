// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

// Record is one FASTQ entry: an identifier line, a DNA sequence, a
// separator line, and a per-base Phred-encoded quality string.
//
// Name, Sequence, Quality and Separator may alias bytes owned by a
// Batch's backing arena (the read path is zero-copy) or may be
// independently allocated (after a mutator changes a field's length).
// IsOwned reports and Own performs that upgrade; callers never need to
// know which representation a Record currently holds.
//
// len(Quality) == len(Sequence) is a hard invariant, maintained by every
// mutator in package fastqmutators and checked by fastqio's reader.
type Record struct {
	Name      []byte
	Sequence  []byte
	Quality   []byte
	Separator []byte

	owned    bool
	modified bool
	filtered bool
	errored  bool
}

// IsOwned reports whether the record's fields are independently owned
// rather than aliasing a batch's shared backing arena.
func (r *Record) IsOwned() bool {
	return r.owned
}

// Own upgrades the record to an owned representation if it is not
// already one, copying Name, Sequence, Quality and Separator into
// independent backing arrays. It is a no-op if the record is already
// owned. Mutators call this lazily, just before they change a field's
// length (ProcessingStage itself never does), so records that pass
// through unmutated never pay the copy cost.
func (r *Record) Own() {
	if r.owned {
		return
	}
	r.Name = cloneBytes(r.Name)
	r.Sequence = cloneBytes(r.Sequence)
	r.Quality = cloneBytes(r.Quality)
	r.Separator = cloneBytes(r.Separator)
	r.owned = true
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// reset clears a record for reuse by the batch that owns it. Records
// themselves are never pooled independently of their batch.
func (r *Record) reset() {
	r.Name = nil
	r.Sequence = nil
	r.Quality = nil
	r.Separator = nil
	r.owned = false
	r.modified = false
	r.filtered = false
	r.errored = false
}

// baseAlphabet is the set of bytes a Sequence field may legally contain.
var baseAlphabet = [256]bool{
	'A': true, 'C': true, 'G': true, 'T': true, 'N': true,
	'a': true, 'c': true, 'g': true, 't': true, 'n': true,
}

// ValidateSequence reports whether every byte of seq is a legal base
// character, per spec's {A,C,G,T,N,a,c,g,t,n} alphabet.
func ValidateSequence(seq []byte) bool {
	for _, b := range seq {
		if !baseAlphabet[b] {
			return false
		}
	}
	return true
}
