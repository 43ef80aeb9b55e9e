// Package filter implements an incremental text filter that removes
// reasoning spans, delimited by fixed markers, from a live token stream.
//
// The filter is chunk-boundary safe: a marker split across fragments is
// still recognised, and ordinary text is never held longer than needed
// to rule out a partial marker.
package filter

import "strings"

// Markers delimiting a reasoning span.
const (
	OpenMarker  = "<think>"
	CloseMarker = "</think>"
)

// Filter removes well-formed reasoning spans from a stream.
// The buffer only ever holds text that might still be part of an
// unresolved marker or an open span; everything else is emitted
// immediately.
type Filter struct {
	buffer string
	inSpan bool
}

// New creates a filter with empty state.
func New() *Filter {
	return &Filter{}
}

// Write appends a fragment to the stream and returns the text that is
// now safe to emit. Output equals input with every complete span
// removed; no duplication, no reordering.
func (f *Filter) Write(fragment string) string {
	f.buffer += fragment
	var out strings.Builder

	for {
		if f.inSpan {
			i := strings.Index(f.buffer, CloseMarker)
			if i < 0 {
				// Span content is discarded as it arrives; retain only
				// a suffix that could still complete the close marker.
				f.buffer = f.buffer[len(f.buffer)-partialSuffix(f.buffer, CloseMarker):]
				return out.String()
			}
			f.buffer = f.buffer[i+len(CloseMarker):]
			f.inSpan = false
			continue
		}

		i := strings.Index(f.buffer, OpenMarker)
		if i < 0 {
			hold := partialSuffix(f.buffer, OpenMarker)
			out.WriteString(f.buffer[:len(f.buffer)-hold])
			f.buffer = f.buffer[len(f.buffer)-hold:]
			return out.String()
		}
		out.WriteString(f.buffer[:i])
		f.buffer = f.buffer[i+len(OpenMarker):]
		f.inSpan = true
	}
}

// Flush ends the stream. An unterminated open span shows nothing
// further; otherwise the remaining buffered text is emitted.
func (f *Filter) Flush() string {
	defer func() { f.buffer = "" }()
	if f.inSpan {
		return ""
	}
	return f.buffer
}

// InSpan reports whether the filter is currently inside an open span.
func (f *Filter) InSpan() bool {
	return f.inSpan
}

// partialSuffix returns the length of the longest suffix of s that is a
// proper prefix of marker.
func partialSuffix(s, marker string) int {
	max := len(marker) - 1
	if len(s) < max {
		max = len(s)
	}
	for n := max; n > 0; n-- {
		if strings.HasSuffix(s, marker[:n]) {
			return n
		}
	}
	return 0
}
