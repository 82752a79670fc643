// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fastqmutators provides common fastqtools.Mutator
// implementations for trimming and transforming FASTQ records.
package fastqmutators

import (
	"bytes"

	fastqtools "github.com/LessUp/fastqtools"
)

// TrimLeft removes the first n bases (and their corresponding quality
// scores) from every record. A record shorter than n is marked Failed
// rather than producing a negative-length slice.
func TrimLeft(n int) fastqtools.Mutator {
	return fastqtools.MutatorFunc(func(r *fastqtools.Record) (fastqtools.MutationOutcome, error) {
		if n <= 0 {
			return fastqtools.Unchanged, nil
		}
		if len(r.Sequence) < n {
			return fastqtools.Failed, nil
		}
		r.Own()
		r.Sequence = r.Sequence[n:]
		r.Quality = r.Quality[n:]
		return fastqtools.Modified, nil
	})
}

// TrimRight removes the last n bases (and their corresponding quality
// scores) from every record. A record shorter than n is marked Failed.
func TrimRight(n int) fastqtools.Mutator {
	return fastqtools.MutatorFunc(func(r *fastqtools.Record) (fastqtools.MutationOutcome, error) {
		if n <= 0 {
			return fastqtools.Unchanged, nil
		}
		if len(r.Sequence) < n {
			return fastqtools.Failed, nil
		}
		r.Own()
		end := len(r.Sequence) - n
		r.Sequence = r.Sequence[:end]
		r.Quality = r.Quality[:end]
		return fastqtools.Modified, nil
	})
}

// TrimAdapter searches for adapter's first minMatch bytes in the
// sequence and, if found, trims everything from that point onward. A
// record with no adapter match is left unchanged; a record that would
// fall below minLen after trimming is marked Failed.
func TrimAdapter(adapter []byte, minMatch, minLen int) fastqtools.Mutator {
	return fastqtools.MutatorFunc(func(r *fastqtools.Record) (fastqtools.MutationOutcome, error) {
		if len(adapter) < minMatch {
			return fastqtools.Unchanged, nil
		}
		idx := bytes.Index(r.Sequence, adapter[:minMatch])
		if idx == -1 {
			return fastqtools.Unchanged, nil
		}
		if idx < minLen {
			return fastqtools.Failed, nil
		}
		r.Own()
		r.Sequence = r.Sequence[:idx]
		r.Quality = r.Quality[:idx]
		return fastqtools.Modified, nil
	})
}

var complement = [256]byte{
	'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C', 'N': 'N',
	'a': 't', 't': 'a', 'c': 'g', 'g': 'c', 'n': 'n',
}

// ReverseComplement reverses a record's sequence and quality strings in
// lockstep and complements each base, the standard transform for reading
// the opposite DNA strand. Applying it twice is the identity: it is its
// own inverse, which is what makes it useful as a round-trip test
// fixture.
var ReverseComplement = fastqtools.MutatorFunc(func(r *fastqtools.Record) (fastqtools.MutationOutcome, error) {
	if len(r.Sequence) == 0 {
		return fastqtools.Unchanged, nil
	}
	r.Own()
	n := len(r.Sequence)
	seq := make([]byte, n)
	qual := make([]byte, n)
	for i := 0; i < n; i++ {
		seq[i] = complement[r.Sequence[n-1-i]]
		qual[i] = r.Quality[n-1-i]
	}
	r.Sequence = seq
	r.Quality = qual
	return fastqtools.Modified, nil
})
