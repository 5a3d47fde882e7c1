// Package buffer holds the document being edited as a flat byte slice plus
// an index of its newline offsets.
//
// Mutations do not refresh the index. Callers run Reindex after an edit (or
// a batch of edits) and before asking for row boundaries again.
package buffer

import (
	"bytes"
	"sort"
)

// Range is a half-open byte interval [Start, End).
type Range struct {
	Start, End int
}

func (r Range) Len() int { return r.End - r.Start }

type Buffer struct {
	content []byte
	lines   []int
}

func New() *Buffer {
	return &Buffer{}
}

// FromBytes returns an indexed buffer holding a copy of p.
func FromBytes(p []byte) *Buffer {
	b := &Buffer{}
	b.Append(p)
	b.Reindex()
	return b
}

func (b *Buffer) Append(p []byte) {
	b.content = append(b.content, p...)
}

// InsertAt inserts c before the byte at off. off may equal Len to append.
func (b *Buffer) InsertAt(off int, c byte) bool {
	if off < 0 || off > len(b.content) {
		return false
	}
	b.content = append(b.content, 0)
	copy(b.content[off+1:], b.content[off:])
	b.content[off] = c
	return true
}

func (b *Buffer) RemoveAt(off int) bool {
	if off < 0 || off >= len(b.content) {
		return false
	}
	b.content = append(b.content[:off], b.content[off+1:]...)
	return true
}

// RemoveRange deletes [start, end) clamped to the content and reports how
// many bytes went away.
func (b *Buffer) RemoveRange(start, end int) int {
	start = max(start, 0)
	end = min(end, len(b.content))
	if start >= end {
		return 0
	}
	b.content = append(b.content[:start], b.content[end:]...)
	return end - start
}

func (b *Buffer) Reindex() {
	b.lines = b.lines[:0]
	for off := 0; off < len(b.content); {
		i := bytes.IndexByte(b.content[off:], '\n')
		if i < 0 {
			break
		}
		b.lines = append(b.lines, off+i)
		off += i + 1
	}
}

// LineStarts returns the newline offsets found by the last Reindex. The
// slice is owned by the buffer.
func (b *Buffer) LineStarts() []int { return b.lines }

func (b *Buffer) Len() int { return len(b.content) }

// RowCount is the number of rows: one per newline plus the trailing row.
func (b *Buffer) RowCount() int { return len(b.lines) + 1 }

// RowBounds returns the byte interval of row i, excluding its newline.
// Rows past the trailing row yield (0, 0).
func (b *Buffer) RowBounds(i int) (start, end int) {
	if i < 0 || i > len(b.lines) {
		return 0, 0
	}
	if i > 0 {
		start = b.lines[i-1] + 1
	}
	if i == len(b.lines) {
		return start, len(b.content)
	}
	return start, b.lines[i]
}

func (b *Buffer) RowLen(i int) int {
	start, end := b.RowBounds(i)
	return end - start
}

// RowOf returns the row holding byte offset off. Offsets past the last
// newline belong to the trailing row.
func (b *Buffer) RowOf(off int) int {
	return sort.SearchInts(b.lines, off)
}

// Find reports every offset where query occurs, left to right. Overlapping
// occurrences are all reported.
func (b *Buffer) Find(query []byte) []Range {
	if len(query) == 0 {
		return nil
	}
	var out []Range
	for off := 0; off+len(query) <= len(b.content); {
		i := bytes.Index(b.content[off:], query)
		if i < 0 {
			break
		}
		start := off + i
		out = append(out, Range{Start: start, End: start + len(query)})
		off = start + 1
	}
	return out
}

// Slice returns content[start:end] clamped to the buffer. The slice aliases
// the buffer.
func (b *Buffer) Slice(start, end int) []byte {
	start = max(start, 0)
	end = min(end, len(b.content))
	if start >= end {
		return nil
	}
	return b.content[start:end]
}

// Bytes returns the content verbatim. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.content }

// Reset replaces the content with a copy of p and reindexes.
func (b *Buffer) Reset(p []byte) {
	b.content = append(b.content[:0], p...)
	b.Reindex()
}
