// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

// Predicate is a pure Record -> bool test. ProcessingStage AND-chains
// predicates in declaration order with short-circuit: the first false
// marks the record filtered and stops evaluation for that record.
//
// Implementations must be safely callable from multiple goroutines
// concurrently (ProcessingStage runs one worker per batch, and different
// batches run on different workers simultaneously), and must not mutate
// state observable by other predicates or by mutators.
type Predicate interface {
	Evaluate(r *Record) bool
}

// PredicateFunc adapts an ordinary function to the Predicate interface,
// following the http.HandlerFunc idiom.
type PredicateFunc func(r *Record) bool

// Evaluate calls f(r).
func (f PredicateFunc) Evaluate(r *Record) bool { return f(r) }

// MutationOutcome is the result of applying one Mutator to one record.
type MutationOutcome int

const (
	// Unchanged means the mutator examined the record and left it as-is.
	Unchanged MutationOutcome = iota
	// Modified means the mutator changed the record's sequence, quality,
	// name, or separator.
	Modified
	// Failed means the mutator could not be applied to this record. The
	// record is marked errored and remaining mutators in the chain are
	// skipped for it; the failure never cancels the pipeline.
	Failed
)

func (o MutationOutcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Modified:
		return "modified"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Mutator transforms a record in place. Mutators run in declaration order
// on every record that survived the predicate chain; a Failed outcome
// stops the chain for that record (remaining mutators are skipped) and
// marks it errored.
//
// Implementations must be safely callable from multiple goroutines
// concurrently. A mutator that changes a field's length must call
// r.Own() first if the record is not already owned, since borrowed
// fields alias a shared batch arena other records still reference.
type Mutator interface {
	Apply(r *Record) (MutationOutcome, error)
}

// MutatorFunc adapts an ordinary function to the Mutator interface.
type MutatorFunc func(r *Record) (MutationOutcome, error)

// Apply calls f(r).
func (f MutatorFunc) Apply(r *Record) (MutationOutcome, error) { return f(r) }
