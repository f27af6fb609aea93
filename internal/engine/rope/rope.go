// Package rope implements an immutable, chunked text container.
//
// Unlike a balanced tree, a Rope here is a flat slice of chunks with two
// cached prefix-sum arrays: offsets (byte offset of each chunk's start)
// and newlines (newline count before each chunk).
// Position lookups binary-search these arrays to find the containing
// chunk, then scan at most one chunk's worth of text. Mutations rebuild
// the prefix arrays, so edits are O(n) in the number of chunks, but
// unrelated chunks are never re-scanned or copied byte-for-byte — only
// the slice of chunk values touching the edit changes.
package rope

import (
	"sort"
	"strings"
)

// Rope is an immutable sequence of text, represented as a flat array of
// chunks plus cached prefix sums over their byte lengths and newline
// counts. The zero value is not valid; use Empty or FromString.
type Rope struct {
	chunks   []chunk
	offsets  []int // len(chunks)+1; offsets[i] = byte offset of chunks[i], offsets[len(chunks)] = total length
	newlines []int // len(chunks)+1; newlines[i] = newline count before chunks[i]
}

// Empty returns a zero-length Rope.
func Empty() Rope {
	return Rope{offsets: []int{0}, newlines: []int{0}}
}

// FromString builds a Rope containing s.
func FromString(s string) Rope {
	return build(splitIntoChunks(s))
}

func build(chunks []chunk) Rope {
	offsets := make([]int, len(chunks)+1)
	newlines := make([]int, len(chunks)+1)
	for i, c := range chunks {
		offsets[i+1] = offsets[i] + c.Len()
		newlines[i+1] = newlines[i] + c.newlines
	}
	return Rope{chunks: chunks, offsets: offsets, newlines: newlines}
}

// Len returns the length of the rope in bytes.
func (r Rope) Len() int { return r.offsets[len(r.offsets)-1] }

// LineCount returns the number of lines in the rope. An empty rope has
// exactly one (empty) line, as does any rope not ending in a newline.
func (r Rope) LineCount() int { return r.newlines[len(r.newlines)-1] + 1 }

// Text returns the full contents of the rope as a string.
func (r Rope) Text() string {
	if len(r.chunks) == 1 {
		return r.chunks[0].text
	}
	var b strings.Builder
	b.Grow(r.Len())
	for _, c := range r.chunks {
		b.WriteString(c.text)
	}
	return b.String()
}

// chunkForOffset returns the index of the chunk containing offset and the
// offset's position relative to the start of that chunk. offset is
// clamped to [0, Len()] by the caller.
func (r Rope) chunkForOffset(offset int) (int, int) {
	if len(r.chunks) == 0 {
		return 0, 0
	}
	// rightmost i such that offsets[i] <= offset, excluding the sentinel.
	i := sort.Search(len(r.chunks), func(i int) bool { return r.offsets[i+1] > offset })
	if i >= len(r.chunks) {
		i = len(r.chunks) - 1
	}
	return i, offset - r.offsets[i]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Slice returns the text in the byte range [start, end), clamped to the
// rope's bounds.
func (r Rope) Slice(start, end int) string {
	start = clampInt(start, 0, r.Len())
	end = clampInt(end, 0, r.Len())
	if start >= end {
		return ""
	}

	startIdx, startLocal := r.chunkForOffset(start)
	endIdx, endLocal := r.chunkForOffset(end - 1)
	endLocal++ // make endLocal exclusive within chunk endIdx

	if startIdx == endIdx {
		return r.chunks[startIdx].text[startLocal:endLocal]
	}

	var b strings.Builder
	b.Grow(end - start)
	b.WriteString(r.chunks[startIdx].text[startLocal:])
	for i := startIdx + 1; i < endIdx; i++ {
		b.WriteString(r.chunks[i].text)
	}
	b.WriteString(r.chunks[endIdx].text[:endLocal])
	return b.String()
}

// Insert returns a new Rope with text inserted at offset (clamped to
// [0, Len()]). The receiver is unmodified.
func (r Rope) Insert(offset int, text string) Rope {
	if text == "" {
		return r
	}
	if len(r.chunks) == 0 {
		return FromString(text)
	}
	offset = clampInt(offset, 0, r.Len())

	idx, local := r.chunkForOffset(offset)
	c := r.chunks[idx]
	merged := c.text[:local] + text + c.text[local:]

	newChunks := make([]chunk, 0, len(r.chunks)+2)
	newChunks = append(newChunks, r.chunks[:idx]...)
	newChunks = append(newChunks, splitIntoChunks(merged)...)
	newChunks = append(newChunks, r.chunks[idx+1:]...)
	return build(newChunks)
}

// Delete returns a new Rope with the byte range [start, end) removed,
// clamped to the rope's bounds. The receiver is unmodified.
func (r Rope) Delete(start, end int) Rope {
	start = clampInt(start, 0, r.Len())
	end = clampInt(end, 0, r.Len())
	if start >= end {
		return r
	}

	startIdx, startLocal := r.chunkForOffset(start)
	endIdx, endLocal := r.chunkForOffset(end - 1)
	endLocal++

	var merged string
	if startIdx == endIdx {
		c := r.chunks[startIdx]
		merged = c.text[:startLocal] + c.text[endLocal:]
	} else {
		merged = r.chunks[startIdx].text[:startLocal] + r.chunks[endIdx].text[endLocal:]
	}

	newChunks := make([]chunk, 0, len(r.chunks))
	newChunks = append(newChunks, r.chunks[:startIdx]...)
	newChunks = append(newChunks, splitIntoChunks(merged)...)
	newChunks = append(newChunks, r.chunks[endIdx+1:]...)
	return build(newChunks)
}

// Replace returns a new Rope with the byte range [start, end) replaced by
// text. The receiver is unmodified.
func (r Rope) Replace(start, end int, text string) Rope {
	return r.Delete(start, end).Insert(start, text)
}

// lineStartOffset returns the byte offset where row begins. Rows past the
// end of the rope return Len().
func (r Rope) lineStartOffset(row int) int {
	if row <= 0 {
		return 0
	}
	if row >= r.LineCount() {
		return r.Len()
	}

	// smallest chunk index whose cumulative newline count reaches row.
	i := sort.Search(len(r.chunks), func(i int) bool { return r.newlines[i+1] >= row })
	localNth := row - r.newlines[i]
	text := r.chunks[i].text
	seen := 0
	for pos := 0; pos < len(text); pos++ {
		if text[pos] == '\n' {
			seen++
			if seen == localNth {
				return r.offsets[i] + pos + 1
			}
		}
	}
	return r.offsets[i+1]
}

// lineEndOffset returns the byte offset where row ends, excluding its
// trailing newline.
func (r Rope) lineEndOffset(row int) int {
	if row < 0 {
		row = 0
	}
	if row+1 < r.LineCount() {
		return r.lineStartOffset(row+1) - 1
	}
	return r.Len()
}

// Line returns the text of row, excluding its line terminator. Out-of-range
// rows return "".
func (r Rope) Line(row int) string {
	if row < 0 || row >= r.LineCount() {
		return ""
	}
	return r.Slice(r.lineStartOffset(row), r.lineEndOffset(row))
}

// LineLen returns the byte length of row, excluding its line terminator.
func (r Rope) LineLen(row int) int {
	if row < 0 || row >= r.LineCount() {
		return 0
	}
	return r.lineEndOffset(row) - r.lineStartOffset(row)
}

// Point is a line/column position within a rope. Column is measured in
// bytes from the start of the line.
type Point struct {
	Line   int
	Column int
}

// OffsetToPoint converts a byte offset (clamped to [0, Len()]) to a
// line/column position.
func (r Rope) OffsetToPoint(offset int) Point {
	offset = clampInt(offset, 0, r.Len())
	if len(r.chunks) == 0 {
		return Point{}
	}
	idx, local := r.chunkForOffset(offset)
	line := r.newlines[idx]
	for pos := 0; pos < local; pos++ {
		if r.chunks[idx].text[pos] == '\n' {
			line++
		}
	}
	return Point{Line: line, Column: offset - r.lineStartOffset(line)}
}

// PointToOffset converts a line/column position to a byte offset, clamping
// the line to [0, LineCount()) and the column to the line's length.
func (r Rope) PointToOffset(p Point) int {
	line := clampInt(p.Line, 0, r.LineCount()-1)
	start := r.lineStartOffset(line)
	lineLen := r.lineEndOffset(line) - start
	col := clampInt(p.Column, 0, lineLen)
	return start + col
}

// Equal reports whether r and other contain the same text.
func (r Rope) Equal(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	return r.Text() == other.Text()
}
