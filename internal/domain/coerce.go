package domain

import (
	"math"
	"strconv"
	"time"
)

// Num converts a loosely typed field into a nullable float. Empty input and
// anything that does not parse to a finite number is absent, never zero.
func Num(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Count is Num for integer fields; decimal input is truncated toward zero.
func Count(s string) *int64 {
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n
	}
	f := Num(s)
	if f == nil {
		return nil
	}
	n := int64(*f)
	return &n
}

// When parses an externally supplied observation time, accepting RFC3339 or
// Unix seconds. Unparseable values are absent, same as Num.
func When(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		t := time.Unix(n, 0).UTC()
		return &t
	}
	return nil
}

// Str maps the empty string to nil so optional text columns stay null.
func Str(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
