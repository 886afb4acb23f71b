package metadata

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies an Error.
type Kind int

const (
	KindOther Kind = iota
	KindExtraction
	KindProcessing
	KindMissingField
	KindDateParse
	KindUnsupportedFormat
	KindValidation
	KindIO
	KindYAML
	KindJSON
	KindTOML
	KindUTF8
)

var kindNames = map[Kind]string{
	KindOther:             "other",
	KindExtraction:        "extraction",
	KindProcessing:        "processing",
	KindMissingField:      "missing field",
	KindDateParse:         "date parse",
	KindUnsupportedFormat: "unsupported format",
	KindValidation:        "validation",
	KindIO:                "I/O",
	KindYAML:              "YAML",
	KindJSON:              "JSON",
	KindTOML:              "TOML",
	KindUTF8:              "UTF-8",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the error type returned by metadata extraction and processing.
//
// Contexts holds context strings attached with WithContext, most recent first. They are rendered
// ahead of the base message, each followed by ": ".
type Error struct {
	Kind Kind

	// Message describes the failure for kinds that carry a message (extraction, processing, date
	// parse, unsupported format, validation, and the description of an "other" error).
	Message string

	// Field names the offending field for missing field and validation errors.
	Field string

	// Err is the underlying cause, if any (I/O errors and decoder errors).
	Err error

	Contexts []string
}

func (e *Error) Error() string {
	base := e.base()
	if len(e.Contexts) == 0 {
		return base
	}
	return strings.Join(e.Contexts, ": ") + ": " + base
}

func (e *Error) base() string {
	switch e.Kind {
	case KindExtraction:
		return "failed to extract metadata: " + e.Message
	case KindProcessing:
		return "failed to process metadata: " + e.Message
	case KindMissingField:
		return "missing required metadata field: " + e.Field
	case KindDateParse:
		return "failed to parse date: " + e.Message
	case KindUnsupportedFormat:
		return "unsupported metadata format: " + e.Message
	case KindValidation:
		return fmt.Sprintf("metadata validation error: %s - %s", e.Field, e.Message)
	case KindIO:
		return "I/O error: " + e.causeText()
	case KindYAML:
		return "YAML parsing error: " + e.causeText()
	case KindJSON:
		return "JSON parsing error: " + e.causeText()
	case KindTOML:
		return "TOML parsing error: " + e.causeText()
	case KindUTF8:
		return "UTF-8 decoding error: " + e.causeText()
	default:
		return "unexpected error: " + e.Message
	}
}

func (e *Error) causeText() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind with no other fields set, so that
// errors.Is(err, &Error{Kind: KindMissingField}) matches any missing field error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Field == "" && t.Err == nil && len(t.Contexts) == 0
}

// IsKind reports whether err (or any error it wraps) is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// WithContext attaches ctx to err. The context is placed before every previously attached
// context, so the rendered message reads from the most recently added context to the original
// message. Any other error, including one that wraps an *Error, becomes an "other" error described
// by its full message; the original remains reachable through Unwrap.
func WithContext(err error, ctx string) error {
	if err == nil {
		return nil
	}
	e, ok := err.(*Error)
	if !ok {
		return &Error{Kind: KindOther, Message: err.Error(), Err: err, Contexts: []string{ctx}}
	}
	c := *e
	c.Contexts = make([]string, 0, len(e.Contexts)+1)
	c.Contexts = append(c.Contexts, ctx)
	c.Contexts = append(c.Contexts, e.Contexts...)
	return &c
}

func ExtractionError(message string) *Error {
	return &Error{Kind: KindExtraction, Message: message}
}

func ProcessingError(message string) *Error {
	return &Error{Kind: KindProcessing, Message: message}
}

func MissingFieldError(field string) *Error {
	return &Error{Kind: KindMissingField, Field: field}
}

// DateParseError reports that value could not be parsed as a date.
func DateParseError(value string, cause error) *Error {
	msg := fmt.Sprintf("%q", value)
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return &Error{Kind: KindDateParse, Message: msg, Err: cause}
}

func UnsupportedFormatError(format string) *Error {
	return &Error{Kind: KindUnsupportedFormat, Message: format}
}

func ValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func IOError(err error) *Error {
	return &Error{Kind: KindIO, Err: err}
}

func YAMLError(err error) *Error {
	return &Error{Kind: KindYAML, Err: err}
}

func JSONError(err error) *Error {
	return &Error{Kind: KindJSON, Err: err}
}

func TOMLError(err error) *Error {
	return &Error{Kind: KindTOML, Err: err}
}

func UTF8Error(err error) *Error {
	return &Error{Kind: KindUTF8, Err: err}
}

// OtherError returns a catch-all error with the given description.
func OtherError(description string) *Error {
	return &Error{Kind: KindOther, Message: description}
}
