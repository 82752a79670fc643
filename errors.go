// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

import "fmt"

// Kind classifies a pipeline-level failure into one of the taxonomy's six
// kinds. ConfigInvalid is returned before any stage starts; the other
// kinds except ProcessorFailureRecord are structural: they cancel the
// pipeline. ProcessorFailureRecord never
// cancels; it is folded into BatchStats and logged instead of returned
// from Run.
type Kind int

const (
	// ConfigInvalid is raised synchronously by Config.Validate,
	// LoadConfigFile and NewPipelineRunner before any stage starts. Fatal; no partial state is observable.
	ConfigInvalid Kind = iota
	// ReadFailure is raised when the RecordReader returns a non-EOF
	// error. Cancels the pipeline.
	ReadFailure
	// WriteFailure is raised when the RecordWriter returns an error.
	// Cancels the pipeline.
	WriteFailure
	// ProcessorFailureRecord marks a single record on which a predicate
	// or mutator failed. Recorded in BatchStats.Errored; never cancels.
	ProcessorFailureRecord
	// ProcessorFailureStructural marks a predicate/mutator failure that
	// corrupts worker state rather than a single record. Cancels the
	// pipeline.
	ProcessorFailureStructural
	// Cancelled marks an external cancellation signal or timeout.
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case ConfigInvalid:
		return "config_invalid"
	case ReadFailure:
		return "read_failure"
	case WriteFailure:
		return "write_failure"
	case ProcessorFailureRecord:
		return "processor_failure_record"
	case ProcessorFailureStructural:
		return "processor_failure_structural"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the pipeline's structural error type. Run returns the first
// Error observed by any stage; per-record ProcessorFailureRecord errors
// are never returned this way (they are folded into BatchStats).
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fastqtools: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("fastqtools: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// IsConfigInvalid reports whether err is a ConfigInvalid failure.
func IsConfigInvalid(err error) bool { return kindOf(err) == ConfigInvalid }

// IsReadFailure reports whether err is a ReadFailure failure.
func IsReadFailure(err error) bool { return kindOf(err) == ReadFailure }

// IsWriteFailure reports whether err is a WriteFailure failure.
func IsWriteFailure(err error) bool { return kindOf(err) == WriteFailure }

// IsProcessorFailureStructural reports whether err is a structural
// processor failure.
func IsProcessorFailureStructural(err error) bool {
	return kindOf(err) == ProcessorFailureStructural
}

// IsCancelled reports whether err is a Cancelled failure.
func IsCancelled(err error) bool { return kindOf(err) == Cancelled }

func kindOf(err error) Kind {
	var pe *Error
	for err != nil {
		if e, ok := err.(*Error); ok {
			pe = e
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if pe == nil {
		return -1
	}
	return pe.Kind
}
