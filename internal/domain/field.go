package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// FieldState tells which of the three shapes a Field holds.
type FieldState uint8

const (
	// Missing marks an explicitly absent value ("-") or a column past the end of the line.
	Missing FieldState = iota
	// Fallback marks a token that was present but could not be decoded.
	Fallback
	// Parsed marks a successfully decoded value.
	Parsed
)

func (s FieldState) String() string {
	switch s {
	case Parsed:
		return "parsed"
	case Fallback:
		return "fallback"
	default:
		return "missing"
	}
}

// missingToken is the format's universal "no value" marker.
const missingToken = "-"

// Field is a tolerant column value: Parsed(T), Fallback(raw) or Missing.
// The zero value is Missing. Fields are values; they are never re-parsed or merged.
type Field[T any] struct {
	state FieldState
	value T
	raw   string
}

// Decoder converts a raw token into T. Returning ErrUnknownValue marks the
// token as a format-specific "unknown" sentinel, which yields Missing.
type Decoder[T any] func(raw string) (T, error)

// ParseField applies the generic "-" rule, then the decoder.
func ParseField[T any](raw string, decode Decoder[T]) Field[T] {
	if raw == missingToken {
		return Field[T]{}
	}
	v, err := decode(raw)
	if err != nil {
		if errors.Is(err, ErrUnknownValue) {
			return Field[T]{}
		}
		return Field[T]{state: Fallback, raw: raw}
	}
	return Field[T]{state: Parsed, value: v}
}

// ParsedValue wraps an already decoded value.
func ParsedValue[T any](v T) Field[T] {
	return Field[T]{state: Parsed, value: v}
}

// FallbackValue wraps an undecodable raw token.
func FallbackValue[T any](raw string) Field[T] {
	return Field[T]{state: Fallback, raw: raw}
}

func (f Field[T]) State() FieldState { return f.state }
func (f Field[T]) IsParsed() bool    { return f.state == Parsed }
func (f Field[T]) IsFallback() bool  { return f.state == Fallback }
func (f Field[T]) IsMissing() bool   { return f.state == Missing }

// Get returns the decoded value and whether the field is Parsed.
func (f Field[T]) Get() (T, bool) {
	if f.state != Parsed {
		var zero T
		return zero, false
	}
	return f.value, true
}

// Or returns the decoded value, or def when the field is not Parsed.
func (f Field[T]) Or(def T) T {
	if v, ok := f.Get(); ok {
		return v
	}
	return def
}

// Raw returns the undecodable token of a Fallback field, or "" otherwise.
func (f Field[T]) Raw() string {
	if f.state != Fallback {
		return ""
	}
	return f.raw
}

// Display renders the field for reports: the value, "raw (fallback)", or
// false when the field is Missing.
func (f Field[T]) Display() (string, bool) {
	switch f.state {
	case Parsed:
		return formatValue(f.value), true
	case Fallback:
		return f.raw + " (fallback)", true
	default:
		return "", false
	}
}

func (f Field[T]) String() string {
	switch f.state {
	case Parsed:
		return formatValue(f.value)
	case Fallback:
		return "Fallback(" + f.raw + ")"
	default:
		return "None"
	}
}

// fallbackJSON is the wire shape of a Fallback field.
type fallbackJSON struct {
	Fallback string `json:"fallback"`
}

// MarshalJSON emits the value when Parsed, {"fallback": raw} when Fallback
// and null when Missing.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	switch f.state {
	case Parsed:
		return json.Marshal(f.value)
	case Fallback:
		return json.Marshal(fallbackJSON{Fallback: f.raw})
	default:
		return []byte("null"), nil
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case fmt.Stringer:
		return x.String()
	case float64:
		return formatFloat(x)
	default:
		return fmt.Sprint(x)
	}
}
