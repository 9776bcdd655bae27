// Package resilience provides the error taxonomy and retry helpers shared by
// every collaborator call site in the pipeline.
package resilience

import (
	"errors"

	"github.com/rotisserie/eris"
)

// Kind classifies a stage failure.
type Kind int

const (
	// KindUpstream marks an unavailable or misbehaving collaborator
	// (unreachable, quota exceeded, malformed response envelope). Callers
	// recover locally as "zero results for this call".
	KindUpstream Kind = iota
	// KindMalformed marks an unparseable extraction (bad JSON from text
	// generation, unparseable HTML). Recovered the same way as upstream.
	KindMalformed
	// KindFatal marks an unexpected failure escaping all per-stage guards.
	// Only this kind surfaces to the orchestrator and fails the job.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindUpstream:
		return "upstream"
	case KindMalformed:
		return "malformed"
	default:
		return "fatal"
	}
}

// StageError carries a failure classification alongside the wrapped cause.
type StageError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *StageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }

// Upstream wraps err as an upstream-unavailable failure.
func Upstream(op string, err error) error {
	return &StageError{Kind: KindUpstream, Op: op, Err: err}
}

// Upstreamf creates an upstream-unavailable failure from a message.
func Upstreamf(op, format string, args ...any) error {
	return &StageError{Kind: KindUpstream, Op: op, Err: eris.Errorf(format, args...)}
}

// Malformed wraps err as a malformed-extraction failure.
func Malformed(op string, err error) error {
	return &StageError{Kind: KindMalformed, Op: op, Err: err}
}

// Fatal wraps err as a job-level failure.
func Fatal(op string, err error) error {
	return &StageError{Kind: KindFatal, Op: op, Err: err}
}

// KindOf returns the classification of err. Errors without an explicit
// StageError in their chain are treated as fatal, matching the rule that
// anything escaping a per-stage guard fails the job.
func KindOf(err error) Kind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindFatal
}

// Recoverable reports whether the calling stage should swallow err and
// continue with what it has.
func Recoverable(err error) bool {
	k := KindOf(err)
	return k == KindUpstream || k == KindMalformed
}
