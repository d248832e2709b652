package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for the HTTP boundary.
type Kind string

const (
	KindValidation        Kind = "validation_error"
	KindExtraction        Kind = "extraction_error"
	KindUpstream          Kind = "upstream_error"
	KindMalformedResponse Kind = "malformed_response"
	KindRender            Kind = "render_error"
	KindNotFound          Kind = "not_found"
	KindInternal          Kind = "internal_error"
)

// Error is the typed error returned by internal components.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	// Raw holds the unparsed model output for malformed responses.
	Raw string
	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind so sentinel-style checks work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Message == "" && t.Err == nil
}

// Sentinels for errors.Is checks by kind.
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrExtraction        = &Error{Kind: KindExtraction}
	ErrUpstream          = &Error{Kind: KindUpstream}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
	ErrRender            = &Error{Kind: KindRender}
	ErrNotFound          = &Error{Kind: KindNotFound}
)

func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

func Wrap(kind Kind, op string, err error, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

func Validation(op, message string) *Error { return New(KindValidation, op, message) }

func Extraction(op string, err error, message string) *Error {
	return Wrap(KindExtraction, op, err, message)
}

func Upstream(op string, err error, message string) *Error {
	return Wrap(KindUpstream, op, err, message)
}

// Malformed records a model response that could not be recovered or failed its declared shape.
func Malformed(op string, raw string, err error, message string) *Error {
	e := Wrap(KindMalformedResponse, op, err, message)
	e.Raw = raw
	return e
}

func Render(op string, err error, message string) *Error { return Wrap(KindRender, op, err, message) }

func NotFound(op, message string) *Error { return New(KindNotFound, op, message) }

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps a kind to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case KindValidation, KindExtraction:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message intended for clients, falling back to err.Error().
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			if e.Err != nil && e.Kind != KindValidation && e.Kind != KindNotFound {
				return e.Message + ": " + e.Err.Error()
			}
			return e.Message
		}
		if e.Err != nil {
			return e.Err.Error()
		}
		return string(e.Kind)
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
