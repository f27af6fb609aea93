package buffer

import (
	"github.com/dshills/multibuffer/internal/engine/coords"
	"github.com/dshills/multibuffer/internal/engine/rope"
)

// Snapshot is an immutable, point-in-time view of a Buffer. It shares its
// rope by reference with the Buffer it was taken from and with every other
// Snapshot taken at buffers sharing that rope value, so taking one is O(1)
// and reading from it never races with further mutation of the live
// Buffer.
type Snapshot struct {
	bufferID ID
	rope     rope.Rope
	version  int
}

// BufferID returns the identifier of the buffer this snapshot was taken
// from.
func (s *Snapshot) BufferID() ID { return s.bufferID }

// Version returns the buffer version this snapshot was taken at.
func (s *Snapshot) Version() int { return s.version }

// Len returns the snapshot's length in bytes.
func (s *Snapshot) Len() int { return s.rope.Len() }

// LineCount returns the number of lines in the snapshot.
func (s *Snapshot) LineCount() int { return s.rope.LineCount() }

// Text returns the snapshot's full contents.
func (s *Snapshot) Text() string { return s.rope.Text() }

// TextRange returns the text in the byte range [start, end), clamped to
// the snapshot's bounds.
func (s *Snapshot) TextRange(start, end coords.BufferOffset) string {
	return s.rope.Slice(int(start), int(end))
}

// Line returns the text of row, excluding its line terminator.
func (s *Snapshot) Line(row coords.BufferRow) string {
	return s.rope.Line(int(row))
}

// LineLen returns the byte length of row, excluding its line terminator.
func (s *Snapshot) LineLen(row coords.BufferRow) int {
	return s.rope.LineLen(int(row))
}

// Lines returns the text of each row in [start, end), clamped to the
// snapshot's line count.
func (s *Snapshot) Lines(start, end coords.BufferRow) []string {
	lc := coords.BufferRow(s.LineCount())
	if start < 0 {
		start = 0
	}
	if end > lc {
		end = lc
	}
	if start >= end {
		return nil
	}
	lines := make([]string, 0, end-start)
	for row := start; row < end; row++ {
		lines = append(lines, s.Line(row))
	}
	return lines
}

// OffsetToPoint converts a byte offset to a line/column position, clamped
// to the snapshot's bounds.
func (s *Snapshot) OffsetToPoint(offset coords.BufferOffset) coords.BufferPoint {
	p := s.rope.OffsetToPoint(int(offset))
	return coords.BufferPoint{Row: coords.BufferRow(p.Line), Column: p.Column}
}

// PointToOffset converts a line/column position to a byte offset, clamping
// the row to [0, LineCount()) and the column to the row's length.
func (s *Snapshot) PointToOffset(p coords.BufferPoint) coords.BufferOffset {
	offset := s.rope.PointToOffset(rope.Point{Line: int(p.Row), Column: p.Column})
	return coords.BufferOffset(offset)
}

// ClipOffset clamps offset to [0, Len()]. bias is accepted for symmetry
// with ClipPoint and anchor resolution but does not affect the result: an
// out-of-range offset has only one valid clamp target regardless of bias.
func (s *Snapshot) ClipOffset(offset coords.BufferOffset, _ coords.Bias) coords.BufferOffset {
	if offset < 0 {
		return 0
	}
	total := coords.BufferOffset(s.rope.Len())
	if offset > total {
		return total
	}
	return offset
}

// ClipPoint clamps p's row to [0, LineCount()) and column to the row's
// length. bias is accepted for symmetry with anchor resolution but does
// not affect the result.
func (s *Snapshot) ClipPoint(p coords.BufferPoint, _ coords.Bias) coords.BufferPoint {
	lc := s.LineCount()
	row := int(p.Row)
	if row < 0 {
		row = 0
	}
	if row >= lc {
		row = lc - 1
	}
	lineLen := s.rope.LineLen(row)
	col := p.Column
	if col < 0 {
		col = 0
	}
	if col > lineLen {
		col = lineLen
	}
	return coords.BufferPoint{Row: coords.BufferRow(row), Column: col}
}
