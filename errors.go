package hups

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by every *ArgumentError.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("malformed resource")

	// ErrExhausted is matched by every *ExhaustionError.
	ErrExhausted = errors.New("point set exhausted")

	// ErrTableLoad is matched by every *LoadError.
	ErrTableLoad = errors.New("static table unavailable")

	// ErrResource is matched by every *ResourceError.
	ErrResource = errors.New("resource unavailable")

	// ErrInfinite is returned when an operation needs a finite dimension or
	// point count.
	ErrInfinite = errors.New("infinite point set")
)

// ArgumentError reports a construction or call parameter out of range.
// It is always returned before any state is mutated.
type ArgumentError struct {
	Op     string
	Param  string
	Value  int
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: invalid %s=%d: %s", e.Op, e.Param, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

func argError(op, param string, value int, reason string) error {
	return &ArgumentError{Op: op, Param: param, Value: value, Reason: reason}
}

// ParseError indicates malformed resource content.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ParseError struct {
	Source string
	Token  string
	Line   int
	cause  error
}

// NewParseError builds a ParseError for the offending token.
func NewParseError(source, token string, line int, cause error) *ParseError {
	return &ParseError{Source: source, Token: token, Line: line, cause: cause}
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse %s:%d: bad token %q", e.Source, e.Line, e.Token)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.cause }

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ExhaustionError is returned when an iterator is advanced past the last
// point or the last coordinate of a point.
type ExhaustionError struct {
	Point     int
	Coord     int
	NumPoints int
	Dim       int
}

func (e *ExhaustionError) Error() string {
	if e.Point >= e.NumPoints {
		return fmt.Sprintf("not enough points available: point %d of %s", e.Point, countString(e.NumPoints))
	}
	return fmt.Sprintf("not enough coordinates available: coordinate %d of %s", e.Coord, countString(e.Dim))
}

// Is reports whether target is ErrExhausted.
func (e *ExhaustionError) Is(target error) bool { return target == ErrExhausted }

// LoadError indicates a missing or corrupt process-wide resource.
// Callers decide whether it is fatal.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type LoadError struct {
	Source string
	cause  error
}

// NewLoadError wraps cause as a LoadError for source.
func NewLoadError(source string, cause error) *LoadError {
	return &LoadError{Source: source, cause: cause}
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.cause)
}

func (e *LoadError) Unwrap() error { return e.cause }

// Is reports whether target is ErrTableLoad.
func (e *LoadError) Is(target error) bool { return target == ErrTableLoad }

// ResourceError reports a parameter resource that could not be fetched.
// Unlike LoadError it concerns a single caller-supplied location.
type ResourceError struct {
	Source string
	cause  error
}

// NewResourceError wraps cause as a ResourceError for source.
func NewResourceError(source string, cause error) *ResourceError {
	return &ResourceError{Source: source, cause: cause}
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.cause)
}

func (e *ResourceError) Unwrap() error { return e.cause }

// Is reports whether target is ErrResource.
func (e *ResourceError) Is(target error) bool { return target == ErrResource }
