// Package coords defines the position and range types shared across the
// rope, buffer, anchor, and multibuffer packages.
//
// Two coordinate spaces are in play throughout this module: buffer space,
// measured against a single Buffer's rope, and unified space, measured
// against the concatenation of a MultiBuffer's excerpts. BufferRow and
// UnifiedRow are distinct types rather than aliases so that a row from one
// space cannot be handed to an API expecting the other without an explicit
// conversion at the multibuffer boundary.
package coords

import "fmt"

// Bias determines which side of an edit boundary a position prefers when
// resolving ambiguity, such as an anchor sitting exactly at an insertion
// point or a point being clipped to a shorter line.
type Bias uint8

const (
	// BiasLeft prefers the position before an edit or boundary.
	BiasLeft Bias = iota

	// BiasRight prefers the position after an edit or boundary.
	BiasRight
)

// String returns a human-readable representation of the bias.
func (b Bias) String() string {
	if b == BiasRight {
		return "right"
	}
	return "left"
}

// BufferOffset is an absolute byte position within a single buffer's rope.
type BufferOffset int

// BufferRow is a 0-indexed line number within a single buffer.
type BufferRow int

// UnifiedRow is a 0-indexed line number within a multibuffer's unified
// coordinate space (the concatenation of its excerpts).
type UnifiedRow int

// BufferPoint is a line/column position within a single buffer. Column is
// measured in bytes from the start of the line.
type BufferPoint struct {
	Row    BufferRow
	Column int
}

// String returns a human-readable representation of the point.
func (p BufferPoint) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p BufferPoint) Compare(other BufferPoint) int {
	if p.Row != other.Row {
		if p.Row < other.Row {
			return -1
		}
		return 1
	}
	if p.Column != other.Column {
		if p.Column < other.Column {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p BufferPoint) Before(other BufferPoint) bool { return p.Compare(other) < 0 }

// After returns true if p comes after other.
func (p BufferPoint) After(other BufferPoint) bool { return p.Compare(other) > 0 }

// UnifiedPoint is a line/column position within a multibuffer's unified
// coordinate space.
type UnifiedPoint struct {
	Row    UnifiedRow
	Column int
}

// String returns a human-readable representation of the point.
func (p UnifiedPoint) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p UnifiedPoint) Compare(other UnifiedPoint) int {
	if p.Row != other.Row {
		if p.Row < other.Row {
			return -1
		}
		return 1
	}
	if p.Column != other.Column {
		if p.Column < other.Column {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p UnifiedPoint) Before(other UnifiedPoint) bool { return p.Compare(other) < 0 }

// After returns true if p comes after other.
func (p UnifiedPoint) After(other UnifiedPoint) bool { return p.Compare(other) > 0 }

// OffsetRange is a byte range within a single buffer: [Start, End).
type OffsetRange struct {
	Start BufferOffset
	End   BufferOffset
}

// NewOffsetRange creates a new OffsetRange from start and end offsets.
func NewOffsetRange(start, end BufferOffset) OffsetRange {
	return OffsetRange{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r OffsetRange) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in bytes.
func (r OffsetRange) Len() BufferOffset { return r.End - r.Start }

// IsEmpty returns true if the range has zero length.
func (r OffsetRange) IsEmpty() bool { return r.Start == r.End }

// Contains returns true if the given offset is within the range.
func (r OffsetRange) Contains(offset BufferOffset) bool {
	return offset >= r.Start && offset < r.End
}

// Overlaps returns true if this range overlaps with another range.
func (r OffsetRange) Overlaps(other OffsetRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// LineRange is a half-open row range [Start, End) within a single buffer,
// used to describe the lines an excerpt draws from its source buffer.
type LineRange struct {
	Start BufferRow
	End   BufferRow
}

// NewLineRange creates a new LineRange from start and end rows.
func NewLineRange(start, end BufferRow) LineRange {
	return LineRange{Start: start, End: end}
}

// Len returns the number of rows spanned by the range.
func (r LineRange) Len() int { return int(r.End - r.Start) }

// IsEmpty returns true if the range spans zero rows.
func (r LineRange) IsEmpty() bool { return r.Start == r.End }

// Contains returns true if the given row is within the range.
func (r LineRange) Contains(row BufferRow) bool {
	return row >= r.Start && row < r.End
}

// UnifiedLineRange is a half-open row range [Start, End) within a
// multibuffer's unified coordinate space.
type UnifiedLineRange struct {
	Start UnifiedRow
	End   UnifiedRow
}

// Len returns the number of rows spanned by the range.
func (r UnifiedLineRange) Len() int { return int(r.End - r.Start) }

// Contains returns true if the given row is within the range.
func (r UnifiedLineRange) Contains(row UnifiedRow) bool {
	return row >= r.Start && row < r.End
}
