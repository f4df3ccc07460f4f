package pathutil

import (
	"strconv"
	"strings"
)

// PathBuilder provides incremental accessor path construction.
// The full string is only materialized when String() is called.
type PathBuilder struct {
	segments []string
	length   int // Pre-calculated length for String() allocation
}

// Push adds a mapping key segment to the path.
// Keys that would make the dotted form ambiguous are written in bracket
// form, e.g. `["v1.2"]`.
func (p *PathBuilder) Push(key string) {
	seg := key
	if needsQuoting(key) {
		seg = "[" + strconv.Quote(key) + "]"
	}
	p.segments = append(p.segments, seg)
	if len(p.segments) > 1 && seg[0] != '[' {
		p.length++ // For dot separator
	}
	p.length += len(seg)
}

// PushIndex adds a sequence index segment: "[0]", "[1]", etc.
func (p *PathBuilder) PushIndex(i int) {
	seg := "[" + strconv.Itoa(i) + "]"
	p.segments = append(p.segments, seg)
	p.length += len(seg)
}

// Pop removes the last segment.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	p.length -= len(last)
	if len(p.segments) > 0 && last[0] != '[' {
		p.length--
	}
}

// Depth returns the number of segments currently pushed.
func (p *PathBuilder) Depth() int {
	return len(p.segments)
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// String materializes the full path.
func (p *PathBuilder) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(p.length)
	b.WriteString(p.segments[0])
	for _, seg := range p.segments[1:] {
		if seg[0] != '[' {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

func needsQuoting(key string) bool {
	return key == "" || strings.ContainsAny(key, ".[]\"")
}
