// Package search keeps the result of the last search over a buffer and the
// position of the match currently cycled to.
package search

import (
	"yim/internal/buffer"
)

type Registry struct {
	query   string
	ranges  []buffer.Range
	current int
	focused bool
}

// Search replaces the registry content with every match of query. An empty
// query clears it.
func (r *Registry) Search(b *buffer.Buffer, query string) []buffer.Range {
	r.query = query
	r.ranges = b.Find([]byte(query))
	r.current = 0
	r.focused = false
	return r.ranges
}

// Refresh re-runs the last query after the buffer changed, keeping the
// current index when it is still valid.
func (r *Registry) Refresh(b *buffer.Buffer) {
	if r.query == "" {
		return
	}
	r.ranges = b.Find([]byte(r.query))
	if r.current >= len(r.ranges) {
		r.current = 0
	}
	r.focused = false
}

func (r *Registry) Query() string { return r.query }

func (r *Registry) Ranges() []buffer.Range { return r.ranges }

func (r *Registry) Len() int { return len(r.ranges) }

func (r *Registry) Current() int { return r.current }

func (r *Registry) Clear() {
	r.query = ""
	r.ranges = nil
	r.current = 0
	r.focused = false
}

// Cycle moves the current match forward (dir > 0) or backward, wrapping
// around. It reports false when there is nothing to cycle through.
func (r *Registry) Cycle(dir int) (buffer.Range, bool) {
	n := len(r.ranges)
	if n == 0 {
		return buffer.Range{}, false
	}
	step := 1
	if dir < 0 {
		step = -1
	}
	r.current = ((r.current+step)%n + n) % n
	r.focused = true
	return r.ranges[r.current], true
}

// SelectFrom makes the first match starting at or after off current,
// wrapping to the first match.
func (r *Registry) SelectFrom(off int) (buffer.Range, bool) {
	if len(r.ranges) == 0 {
		return buffer.Range{}, false
	}
	r.current = 0
	for i, rg := range r.ranges {
		if rg.Start >= off {
			r.current = i
			break
		}
	}
	r.focused = true
	return r.ranges[r.current], true
}

// Active returns the current match.
func (r *Registry) Active() (buffer.Range, bool) {
	if len(r.ranges) == 0 {
		return buffer.Range{}, false
	}
	return r.ranges[r.current%len(r.ranges)], true
}

// Focused reports whether the cursor should be drawn on the active match.
func (r *Registry) Focused() bool { return r.focused && len(r.ranges) > 0 }

func (r *Registry) Unfocus() { r.focused = false }

// Position returns the document row and column of the first byte of rg.
func Position(b *buffer.Buffer, rg buffer.Range) (row, col int) {
	row = b.RowOf(rg.Start)
	start, _ := b.RowBounds(row)
	return row, rg.Start - start
}

// Within returns the matches intersecting [start, end), clipped to it.
// Overlapping matches are merged so each byte is covered once.
func (r *Registry) Within(start, end int) []buffer.Range {
	var out []buffer.Range
	for _, rg := range r.ranges {
		if rg.End <= start {
			continue
		}
		if rg.Start >= end {
			break
		}
		rg.Start = max(rg.Start, start)
		rg.End = min(rg.End, end)
		if n := len(out); n > 0 && rg.Start <= out[n-1].End {
			out[n-1].End = max(out[n-1].End, rg.End)
			continue
		}
		out = append(out, rg)
	}
	return out
}
