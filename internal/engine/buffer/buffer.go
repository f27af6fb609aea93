// Package buffer implements the mutable text container that backs each
// excerpt in a multibuffer.
package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/multibuffer/internal/engine/coords"
	"github.com/dshills/multibuffer/internal/engine/rope"
)

// ID uniquely identifies a Buffer, stable for its lifetime.
type ID = uuid.UUID

// NewID generates a fresh, opaque buffer identifier.
func NewID() ID { return uuid.New() }

// LineEnding identifies the line terminator style detected in or applied
// to a buffer's content. It does not change how offsets or rope storage
// work (lines are always split on '\n' internally); it is metadata for
// callers that need to re-serialize content for its original environment.
type LineEnding uint8

const (
	// LineEndingLF is the Unix line ending, "\n".
	LineEndingLF LineEnding = iota
	// LineEndingCRLF is the Windows line ending, "\r\n".
	LineEndingCRLF
	// LineEndingCR is the old Mac line ending, "\r".
	LineEndingCR
)

// String returns the name of the line ending style.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "CRLF"
	case LineEndingCR:
		return "CR"
	default:
		return "LF"
	}
}

// Sequence returns the literal byte sequence for the line ending.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// EditEntry is one record in a Buffer's append-only edit log: the byte
// offset an edit started at, how many bytes it deleted, and how many bytes
// it inserted. Anchor resolution replays these in order to carry an offset
// captured at an older version forward to the buffer's current version.
type EditEntry struct {
	Offset         coords.BufferOffset
	DeletedLength  int
	InsertedLength int
}

// Summary holds cheap-to-maintain aggregate metrics about a buffer's
// content, updated incrementally on every edit rather than recomputed from
// scratch.
type Summary struct {
	Lines          int
	Bytes          int
	Chars          int
	LastLineLength int
}

// ComputeSummary computes a Summary from scratch for s. Used when building
// a fresh buffer and when computing the summary of an excerpt's content.
func ComputeSummary(s string) Summary {
	lines := strings.Count(s, "\n") + 1
	chars := utf8.RuneCountInString(s)
	lastNL := strings.LastIndexByte(s, '\n')
	lastLineLength := len(s) - (lastNL + 1)
	return Summary{Lines: lines, Bytes: len(s), Chars: chars, LastLineLength: lastLineLength}
}

// Buffer is a mutable text container: an immutable Rope plus a monotonic
// version counter and an append-only log of the edits that produced each
// version. Mutating methods trust their inputs are within range; offsets
// are clamped rather than rejected, mirroring the rope's total semantics.
//
// Per the concurrency model this library assumes (single-threaded,
// cooperative), Buffer carries no internal locking: callers must serialize
// their own mutations. A Snapshot, once taken, is safe to read from any
// goroutine because it shares the buffer's rope by reference and that rope
// is never mutated in place.
type Buffer struct {
	id         ID
	rope       rope.Rope
	editLog    []EditEntry
	summary    Summary
	lineEnding LineEnding
	tabWidth   int
	baseRope   *rope.Rope
}

// Option is a functional option for configuring a Buffer at construction
// time, via New/NewWithID.
type Option func(*Buffer)

// WithLineEnding sets the buffer's line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithTabWidth sets the buffer's tab width.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}

// WithDetectedLineEnding sets the buffer's line ending style based on the
// most common line terminator found in text. Call this with the buffer's
// initial content.
func WithDetectedLineEnding(text string) Option {
	return WithLineEnding(DetectLineEnding(text))
}

// WithBaseText seeds the buffer's diff base at construction time, so a
// caller that's loading a buffer from a known saved or VCS revision can
// wire up DiffHunks in the same call that creates the buffer, instead of
// a separate SetBaseText call afterward.
func WithBaseText(text string) Option {
	return func(b *Buffer) {
		r := rope.FromString(normalizeLineEndings(text))
		b.baseRope = &r
	}
}

// DetectLineEnding returns a LineEnding based on the most common line
// ending in text. Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount, crCount int

	i := 0
	for i < len(text) {
		if i+1 < len(text) && text[i] == '\r' && text[i+1] == '\n' {
			crlfCount++
			i += 2
		} else if text[i] == '\r' {
			crCount++
			i++
		} else if text[i] == '\n' {
			lfCount++
			i++
		} else {
			i++
		}
	}

	if crlfCount >= lfCount && crlfCount >= crCount {
		if crlfCount > 0 {
			return LineEndingCRLF
		}
	}
	if crCount >= lfCount && crCount >= crlfCount {
		if crCount > 0 {
			return LineEndingCR
		}
	}

	return LineEndingLF
}

// New creates a Buffer with a fresh ID and the given initial text, at
// version 0 (an empty edit log).
func New(text string, opts ...Option) *Buffer {
	return NewWithID(NewID(), text, opts...)
}

// NewWithID creates a Buffer with an explicit ID, useful for tests and for
// callers that need deterministic identifiers.
func NewWithID(id ID, text string, opts ...Option) *Buffer {
	normalized := normalizeLineEndings(text)
	b := &Buffer{
		id:         id,
		rope:       rope.FromString(normalized),
		summary:    ComputeSummary(normalized),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func normalizeLineEndings(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text
}

// ID returns the buffer's identifier.
func (b *Buffer) ID() ID { return b.id }

// Version returns the buffer's current version, equal to the number of
// edits recorded in its edit log.
func (b *Buffer) Version() int { return len(b.editLog) }

// LineEnding returns the buffer's configured line ending style.
func (b *Buffer) LineEnding() LineEnding { return b.lineEnding }

// SetLineEnding updates the buffer's line ending style.
func (b *Buffer) SetLineEnding(le LineEnding) { b.lineEnding = le }

// TabWidth returns the buffer's configured tab width.
func (b *Buffer) TabWidth() int { return b.tabWidth }

// SetTabWidth updates the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	if width > 0 {
		b.tabWidth = width
	}
}

// Summary returns the buffer's current aggregate metrics.
func (b *Buffer) Summary() Summary { return b.summary }

// Len returns the buffer's length in bytes.
func (b *Buffer) Len() int { return b.rope.Len() }

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool { return b.rope.Len() == 0 }

// EditsSince returns the edits recorded since version (exclusive). Passing
// the buffer's current version returns an empty slice. The returned slice
// must not be mutated by the caller.
func (b *Buffer) EditsSince(version int) []EditEntry {
	if version < 0 {
		version = 0
	}
	if version >= len(b.editLog) {
		return nil
	}
	return b.editLog[version:]
}

func (b *Buffer) recordEdit(offset coords.BufferOffset, deletedLength, insertedLength int) {
	b.editLog = append(b.editLog, EditEntry{
		Offset:         offset,
		DeletedLength:  deletedLength,
		InsertedLength: insertedLength,
	})
}

func (b *Buffer) updateSummaryForEdit(deletedText, insertedText string) {
	b.summary.Bytes += len(insertedText) - len(deletedText)
	b.summary.Lines += strings.Count(insertedText, "\n") - strings.Count(deletedText, "\n")
	b.summary.Chars += utf8.RuneCountInString(insertedText) - utf8.RuneCountInString(deletedText)
	lastRow := b.rope.LineCount() - 1
	b.summary.LastLineLength = b.rope.LineLen(lastRow)
}

// Insert inserts text at offset, clamped to [0, Len()].
func (b *Buffer) Insert(offset coords.BufferOffset, text string) EditResult {
	return b.Replace(offset, offset, text)
}

// Delete removes the byte range [start, end), clamped to the buffer's
// bounds.
func (b *Buffer) Delete(start, end coords.BufferOffset) EditResult {
	return b.Replace(start, end, "")
}

// Replace replaces the byte range [start, end) with text, clamped to the
// buffer's bounds. It records an EditEntry and advances the buffer's
// version.
func (b *Buffer) Replace(start, end coords.BufferOffset, text string) EditResult {
	length := coords.BufferOffset(b.rope.Len())
	if start < 0 {
		start = 0
	}
	if start > length {
		start = length
	}
	if end < 0 {
		end = 0
	}
	if end > length {
		end = length
	}
	if start > end {
		start, end = end, start
	}

	oldText := b.rope.Slice(int(start), int(end))
	b.rope = b.rope.Replace(int(start), int(end), text)
	b.recordEdit(start, len(oldText), len(text))
	b.updateSummaryForEdit(oldText, text)

	newEnd := start + coords.BufferOffset(len(text))
	return EditResult{
		OldRange: coords.OffsetRange{Start: start, End: end},
		NewRange: coords.OffsetRange{Start: start, End: newEnd},
		OldText:  oldText,
		Delta:    len(text) - len(oldText),
	}
}

// ApplyEdit applies a single Edit to the buffer.
func (b *Buffer) ApplyEdit(e Edit) EditResult {
	return b.Replace(e.Range.Start, e.Range.End, e.NewText)
}

// Snapshot captures an immutable view of the buffer at its current
// version. Taking a snapshot is O(1): it shares the buffer's rope by
// reference, which is safe because ropes are never mutated in place.
func (b *Buffer) Snapshot() *Snapshot {
	return &Snapshot{
		bufferID: b.id,
		rope:     b.rope,
		version:  b.Version(),
	}
}

// Text returns the buffer's full contents.
func (b *Buffer) Text() string { return b.rope.Text() }
