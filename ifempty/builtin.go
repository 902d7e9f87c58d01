package ifempty

import (
	"bytes"
	"strings"
)

// Text is a string with the fallback contract attached as methods.
type Text string

// IsEmpty reports whether t has zero length.
func (t Text) IsEmpty() bool {
	return len(t) == 0
}

// IfEmpty returns fallback when t is empty, otherwise t.
func (t Text) IfEmpty(fallback Text) Text {
	return String(string(t), string(fallback))
}

// RawText is platform text: bytes as handed out by the operating system
// (file names, environment blocks, process output), which are not
// guaranteed to be valid UTF-8.
type RawText []byte

// IsEmpty reports whether r has zero length. A nil RawText is empty.
func (r RawText) IsEmpty() bool {
	return len(r) == 0
}

// IfEmpty returns fallback when r is empty, otherwise r.
func (r RawText) IfEmpty(fallback RawText) RawText {
	return Bytes(r, fallback)
}

// String returns fallback if value is the empty string.
func String(value, fallback string) string {
	if len(value) == 0 {
		return fallback
	}

	return value
}

// Bytes returns fallback if value has zero length (nil or otherwise).
func Bytes(value, fallback []byte) []byte {
	if len(value) == 0 {
		return fallback
	}

	return value
}

// StringRef is the borrowed form of String. A nil value is treated as empty.
func StringRef(value, fallback *string) *string {
	if value == nil || len(*value) == 0 {
		return fallback
	}

	return value
}

// BytesRef is the borrowed form of Bytes. A nil value is treated as empty.
func BytesRef(value, fallback *[]byte) *[]byte {
	if value == nil || len(*value) == 0 {
		return fallback
	}

	return value
}

// Builder returns fallback if value is nil or has nothing written to it.
func Builder(value, fallback *strings.Builder) *strings.Builder {
	if value == nil || value.Len() == 0 {
		return fallback
	}

	return value
}

// Buffer returns fallback if value is nil or has no unread bytes.
func Buffer(value, fallback *bytes.Buffer) *bytes.Buffer {
	if value == nil || value.Len() == 0 {
		return fallback
	}

	return value
}

// Slice returns fallback if value has no elements.
func Slice[S ~[]E, E any](value, fallback S) S {
	if len(value) == 0 {
		return fallback
	}

	return value
}

// Map returns fallback if value has no entries.
func Map[M ~map[K]V, K comparable, V any](value, fallback M) M {
	if len(value) == 0 {
		return fallback
	}

	return value
}
