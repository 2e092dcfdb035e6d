package apperrors

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a failure by how the caller should react to it.
type Kind int

const (
	// KindUnexpected is a failure nobody planned for: a broken backend, a
	// recovered panic. It is logged with diagnostic detail.
	KindUnexpected Kind = iota
	// KindInputFormat is malformed user input. It is logged and the
	// operation is aborted.
	KindInputFormat
	// KindBusinessRule is a well-formed request the store refuses, such as
	// insufficient stock. It is reported to the user only.
	KindBusinessRule
)

func (k Kind) String() string {
	switch k {
	case KindInputFormat:
		return "input_format"
	case KindBusinessRule:
		return "business_rule"
	default:
		return "unexpected"
	}
}

// Sentinels matched with errors.Is through AppError.Unwrap.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrRejected     = errors.New("request rejected")
)

// AppError is a classified application error.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Kind == KindUnexpected {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// InputFormat creates an input-format error.
func InputFormat(code, message string) *AppError {
	return &AppError{
		Kind:    KindInputFormat,
		Code:    code,
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// BusinessRule creates a business-rule violation.
func BusinessRule(code, message string) *AppError {
	return &AppError{
		Kind:    KindBusinessRule,
		Code:    code,
		Message: message,
		Err:     ErrRejected,
	}
}

// Unexpected wraps err with a stack trace. The trace is printed by the
// %+v verb.
func Unexpected(err error, message string) *AppError {
	return &AppError{
		Kind:    KindUnexpected,
		Code:    "UNEXPECTED",
		Message: message,
		Err:     pkgerrors.WithStack(err),
	}
}

// KindOf returns the kind of the first AppError in err's chain. Errors that
// were never classified are unexpected.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Format renders err as a single line for the error log.
func Format(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind == KindUnexpected && appErr.Err != nil {
		return fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
	}
	return err.Error()
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Stack returns the call site where err was classified as unexpected,
// frames joined by " | ". It is empty for errors that carry no trace.
func Stack(err error) string {
	var tracer stackTracer
	if !errors.As(err, &tracer) {
		return ""
	}

	// The first frame is Unexpected itself.
	frames := tracer.StackTrace()
	if len(frames) > 1 {
		frames = frames[1:]
	}

	parts := make([]string, 0, len(frames))
	for _, f := range frames {
		parts = append(parts, fmt.Sprintf("%n (%s:%d)", f, f, f))
	}
	return strings.Join(parts, " | ")
}
