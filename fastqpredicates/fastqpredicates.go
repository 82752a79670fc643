// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fastqpredicates provides common fastqtools.Predicate
// implementations for filtering FASTQ records by length, quality, and
// base composition.
package fastqpredicates

import (
	"math"

	fastqtools "github.com/LessUp/fastqtools"
)

// phred33ToError converts one Phred+33 ASCII-encoded quality byte into
// its error probability: 10^(-(byte-33)/10).
func phred33ToError(qual byte) float64 {
	return math.Pow(10, -(float64(qual)-33)/10.0)
}

// meanErrorRate returns the mean base-call error probability across a
// quality string.
func meanErrorRate(quality []byte) float64 {
	if len(quality) == 0 {
		return 0
	}
	var total float64
	for _, q := range quality {
		total += phred33ToError(q)
	}
	return total / float64(len(quality))
}

// MinAverageQuality keeps records whose mean Phred+33 error probability
// is at or below maxMeanError (i.e. whose average quality is high
// enough). A record with an empty quality string always passes.
func MinAverageQuality(maxMeanError float64) fastqtools.Predicate {
	return fastqtools.PredicateFunc(func(r *fastqtools.Record) bool {
		return meanErrorRate(r.Quality) <= maxMeanError
	})
}

// MinLength keeps records whose sequence is at least minLen bases long.
func MinLength(minLen int) fastqtools.Predicate {
	return fastqtools.PredicateFunc(func(r *fastqtools.Record) bool {
		return len(r.Sequence) >= minLen
	})
}

// MaxAmbiguousBases keeps records containing at most maxN 'N'/'n' bases
// in their sequence.
func MaxAmbiguousBases(maxN int) fastqtools.Predicate {
	return fastqtools.PredicateFunc(func(r *fastqtools.Record) bool {
		count := 0
		for _, b := range r.Sequence {
			if b == 'N' || b == 'n' {
				count++
				if count > maxN {
					return false
				}
			}
		}
		return true
	})
}
