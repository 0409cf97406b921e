package domain

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownValue is returned by decoders for in-band "unknown" sentinels
// such as the 00000000 date. ParseField maps it to Missing.
var ErrUnknownValue = errors.New("unknown value sentinel")

// DecodeError reports a token that does not belong to a column's vocabulary.
type DecodeError struct {
	Kind  string
	Value string
}

func (e *DecodeError) Error() string {
	return "decode " + e.Kind + ": invalid value " + strconv.Quote(e.Value)
}

// unknownDate is the format's sentinel for an unrecorded date.
const unknownDate = "00000000"

// dateLayout is the compact ddMMyyyy layout used by every date column.
const dateLayout = "02012006"

// DecodeFloat accepts both decimal comma and decimal point.
func DecodeFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, &DecodeError{Kind: "float", Value: raw}
	}
	return v, nil
}

func DecodeInt(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &DecodeError{Kind: "int", Value: raw}
	}
	return v, nil
}

// DecodeDate parses ddMMyyyy. "00000000" is reported as ErrUnknownValue.
func DecodeDate(raw string) (Date, error) {
	if raw == unknownDate {
		return Date{}, ErrUnknownValue
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return Date{}, &DecodeError{Kind: "date", Value: raw}
	}
	return Date{t}, nil
}

// DecodeString never fails.
func DecodeString(raw string) (string, error) {
	return raw, nil
}

// Date is a calendar day read from a ddMMyyyy column.
type Date struct {
	time.Time
}

// NewDate builds a UTC calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string { return d.Format(time.DateOnly) }

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// column reads params[i] through dec; an index past the end of the line is Missing.
func column[T any](params []string, i int, dec Decoder[T]) Field[T] {
	if i < 0 || i >= len(params) {
		return Field[T]{}
	}
	return ParseField(params[i], dec)
}

// tokenDecoder builds a case-insensitive decoder over a fixed token table.
func tokenDecoder[T any](kind string, table map[string]T) Decoder[T] {
	return func(raw string) (T, error) {
		if v, ok := table[strings.ToUpper(strings.TrimSpace(raw))]; ok {
			return v, nil
		}
		var zero T
		return zero, &DecodeError{Kind: kind, Value: raw}
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
