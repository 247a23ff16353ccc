package skema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/skema/i18n"
)

// Error codes.
const (
	CodeInvalidType = "invalid_type"
	CodeRequired    = "required"
	CodeValidator   = "validator"
	CodeConfig      = "config"
	CodeUnknownRule = "unknown_rule"
)

// Sentinels for errors.Is. Every *Error matches exactly one of them.
var (
	ErrTypeMismatch  = errors.New("skema: type mismatch")
	ErrRequired      = errors.New("skema: required field")
	ErrValidator     = errors.New("skema: validator failure")
	ErrConfiguration = errors.New("skema: configuration error")
)

// Error is the single error type raised by compilation, builds and field
// assignments. Coercion failures carry the breadcrumb trail of the fields that
// were being assigned when the failure happened, outermost first.
type Error struct {
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error (validator or constructor failure).
	// Params carries structured parameters (e.g., {"expected":"number","got":"text"})
	// for i18n and observability.
	Params map[string]any

	path *pathRef
}

// Error renders "<Kind>: <trail>: <message>".
func (e *Error) Error() string {
	b := &strings.Builder{}
	b.WriteString(kindLabel(e.Code))
	b.WriteString(": ")
	if t := e.Trail(); t != "" {
		b.WriteString(t)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Trail returns the index-free breadcrumb, e.g. "books<array>.author<text>".
func (e *Error) Trail() string { return e.path.trail() }

// Pointer returns the JSON Pointer of the failing value, with array indices.
func (e *Error) Pointer() string { return e.path.pointer() }

// Fields returns the field names along the trail, outermost first.
func (e *Error) Fields() []string { return e.path.fields() }

func (e *Error) Unwrap() error { return e.Cause }

// Is matches the sentinel for the error's code.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTypeMismatch:
		return e.Code == CodeInvalidType || e.Code == CodeUnknownRule
	case ErrRequired:
		return e.Code == CodeRequired
	case ErrValidator:
		return e.Code == CodeValidator
	case ErrConfiguration:
		return e.Code == CodeConfig
	}
	return false
}

func kindLabel(code string) string {
	switch code {
	case CodeInvalidType, CodeUnknownRule:
		return "TypeError"
	case CodeRequired:
		return "RequiredFieldError"
	case CodeConfig:
		return "ConfigurationError"
	default:
		return "ValidationError"
	}
}

// ValidationError builds a validator failure whose message reads
// "ValidationError: <msg>". Custom validators return it to reject a value.
func ValidationError(msg string) error {
	return &Error{Code: CodeValidator, Message: msg}
}

// ValidationErrorf is ValidationError with formatting.
func ValidationErrorf(format string, args ...any) error {
	return ValidationError(fmt.Sprintf(format, args...))
}

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func configErrorf(format string, args ...any) *Error {
	return &Error{Code: CodeConfig, Message: fmt.Sprintf(format, args...)}
}

func newError(code, msgCode string, params map[string]string) *Error {
	p := make(map[string]any, len(params))
	for k, v := range params {
		p[k] = v
	}
	return &Error{Code: code, Message: i18n.T(msgCode, params), Params: p}
}

// clone copies e with its own path, so a shared *Error returned by a
// validator or constructor is never annotated in place.
func (e *Error) clone() *Error {
	cp := *e
	if e.path != nil {
		cp.path = &pathRef{parts: append([]crumb(nil), e.path.parts...)}
	}
	return &cp
}

// annotate prepends the field<rule> frame to err, converting foreign errors
// into *Error first. It is called once per recursion frame on the way out.
func annotate(err error, field, rule string) error {
	e, ok := err.(*Error)
	if !ok {
		e = &Error{Code: CodeInvalidType, Message: err.Error(), Cause: err}
	}
	if e.path == nil {
		e.path = &pathRef{}
	}
	e.path.prependField(field, rule)
	return e
}

// annotateIndex prepends an array element frame.
func annotateIndex(err error, i int) error {
	e, ok := err.(*Error)
	if !ok {
		e = &Error{Code: CodeInvalidType, Message: err.Error(), Cause: err}
	}
	if e.path == nil {
		e.path = &pathRef{}
	}
	e.path.prependIndex(i)
	return e
}
