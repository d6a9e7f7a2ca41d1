package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // descriptor validation and Go binding
	PhasePack    Phase = "pack"    // Go value to wire bytes
	PhaseUnpack  Phase = "unpack"  // wire bytes to Go value
	PhaseLoad    Phase = "load"    // layout file parsing
)

// Kind categorizes the error
type Kind string

const (
	KindBufferTooSmall      Kind = "buffer_too_small"
	KindValueOutOfRange     Kind = "value_out_of_range"
	KindInvalidDiscriminant Kind = "invalid_discriminant"
	KindTypeMismatch        Kind = "type_mismatch"
	KindFieldMissing        Kind = "field_missing"
	KindFieldUnknown        Kind = "field_unknown"
	KindInvalidSchema       Kind = "invalid_schema"
	KindUnsupported         Kind = "unsupported"
	KindNotFound            Kind = "not_found"
)

// Error is the structured error type returned by every codec operation.
//
// Required and Available are bit counts for KindBufferTooSmall. Max is the
// largest value representable in the field width for KindValueOutOfRange.
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	GoType    string
	WireType  string
	Enum      string
	Detail    string
	Path      []string
	Required  uint64
	Available uint64
	Max       uint64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.WireType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.WireType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", wire type ")
			b.WriteString(e.WireType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("wire type ")
			b.WriteString(e.WireType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.WireType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// WireType sets the wire type name
func (b *Builder) WireType(t string) *Builder {
	b.err.WireType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// BufferTooSmall reports an access of required bits against available bits.
func BufferTooSmall(phase Phase, path []string, required, available uint64) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindBufferTooSmall,
		Path:      path,
		Required:  required,
		Available: available,
		Detail:    fmt.Sprintf("need %d bits, have %d", required, available),
	}
}

// ValueOutOfRange reports a value that does not fit its field width.
func ValueOutOfRange(phase Phase, path []string, value any, max uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindValueOutOfRange,
		Path:   path,
		Value:  value,
		Max:    max,
		Detail: fmt.Sprintf("value %v exceeds field maximum %d", value, max),
	}
}

// InvalidDiscriminant reports a raw tag value with no matching enum variant.
func InvalidDiscriminant(phase Phase, path []string, enum string, raw uint64) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidDiscriminant,
		Path:     path,
		Enum:     enum,
		WireType: enum,
		Value:    raw,
		Detail:   "no variant for discriminant " + strconv.FormatUint(raw, 10),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, wireType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		GoType:   goType,
		WireType: wireType,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// FieldUnknown creates an unknown field error
func FieldUnknown(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Path:   path,
		Detail: fmt.Sprintf("unknown field %q", fieldName),
	}
}

// InvalidSchema reports a descriptor that violates layout rules.
func InvalidSchema(phase Phase, path []string, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidSchema,
		Path:   path,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Within prepends name to the path of err when err is an *Error.
// Composite codecs call it while a failure unwinds through nested fields,
// so the path is only assembled on the error path.
func Within(err error, name string) error {
	if name == "" {
		return err
	}
	var e *Error
	if stderrors.As(err, &e) {
		path := make([]string, 0, len(e.Path)+1)
		path = append(path, name)
		e.Path = append(path, e.Path...)
	}
	return err
}

// WithPhase overrides the phase of err when it is an *Error.
func WithPhase(err error, phase Phase) error {
	var e *Error
	if stderrors.As(err, &e) {
		e.Phase = phase
	}
	return err
}

// IsKind reports whether err is an *Error of the given kind in any phase.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// As is a shorthand for extracting an *Error from a chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrors.As(err, &e)
	return e, ok
}

// Is forwards to the standard library so callers need only this package.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
