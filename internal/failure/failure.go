package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can decide how to surface it
// without inspecting messages.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInputValidation
	KindArtifactMissing
	KindArtifactInvalid
	KindPredictionFailure
	KindTrainingFailure
)

func (k Kind) String() string {
	switch k {
	case KindInputValidation:
		return "InputValidation"
	case KindArtifactMissing:
		return "ArtifactMissing"
	case KindArtifactInvalid:
		return "ArtifactInvalid"
	case KindPredictionFailure:
		return "PredictionFailure"
	case KindTrainingFailure:
		return "TrainingFailure"
	default:
		return "Unknown"
	}
}

// Error is a classified failure raised by an operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with a kind and the name of the failing operation.
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the outermost classified failure in err's
// chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message is the text of err without the operation prefix of its outermost
// classified failure. It is what end users are shown.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	if e != nil {
		return e.Kind.String()
	}
	return err.Error()
}
