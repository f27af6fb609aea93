package multibuffer

import (
	"github.com/dshills/multibuffer/internal/engine/buffer"
	"github.com/dshills/multibuffer/internal/engine/coords"
	"github.com/dshills/multibuffer/internal/engine/slotmap"
)

// ID identifies an Excerpt within a MultiBuffer. It is a generational key:
// once an excerpt is removed, its ID is never silently handed to a new
// excerpt, so a stale reference is reliably detected rather than quietly
// aliasing unrelated content.
type ID = slotmap.Key

// Range describes the span of buffer lines an excerpt draws its content
// from (Context) and, within that, the narrower span considered the
// excerpt's primary subject (Primary) — for example the lines a search hit
// or diagnostic actually refers to, with Context supplying surrounding
// lines for readability.
type Range struct {
	Context coords.LineRange
	Primary coords.LineRange
}

// Option configures an Excerpt at creation time.
type Option func(*excerptConfig)

type excerptConfig struct {
	primary            *coords.LineRange
	hasTrailingNewline bool
}

// WithPrimaryRange sets the excerpt's primary (highlighted) line range,
// which must fall within its context range. If omitted, Primary equals
// Context.
func WithPrimaryRange(r coords.LineRange) Option {
	return func(c *excerptConfig) { c.primary = &r }
}

// WithTrailingNewline marks the excerpt as owning a synthetic separator
// row after its content, used to visually distinguish it from the next
// excerpt drawn from the same or a different buffer.
func WithTrailingNewline(has bool) Option {
	return func(c *excerptConfig) { c.hasTrailingNewline = has }
}

// Excerpt is an immutable slice of a Buffer's lines placed into a
// MultiBuffer's display order. Once constructed, an Excerpt's fields never
// change; refreshing it (after its source buffer edits, or via
// ExpandExcerpt) produces a new Excerpt value stored under the same ID.
type Excerpt struct {
	id                 ID
	bufferID           buffer.ID
	bufferSnapshot     *buffer.Snapshot
	rangeInfo          Range
	hasTrailingNewline bool
	summary            buffer.Summary
}

func newExcerpt(id ID, snap *buffer.Snapshot, rng Range, hasTrailingNewline bool) Excerpt {
	lines := snap.Lines(rng.Context.Start, rng.Context.End)
	text := joinLines(lines)
	return Excerpt{
		id:                 id,
		bufferID:           snap.BufferID(),
		bufferSnapshot:     snap,
		rangeInfo:          rng,
		hasTrailingNewline: hasTrailingNewline,
		summary:            buffer.ComputeSummary(text),
	}
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	n := len(lines) - 1
	for _, l := range lines {
		n += len(l)
	}
	out := make([]byte, 0, n)
	for i, l := range lines {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, l...)
	}
	return string(out)
}

// ID returns the excerpt's identifier.
func (e Excerpt) ID() ID { return e.id }

// BufferID returns the identifier of the buffer this excerpt draws from.
func (e Excerpt) BufferID() buffer.ID { return e.bufferID }

// Context returns the excerpt's full line range.
func (e Excerpt) Context() coords.LineRange { return e.rangeInfo.Context }

// Primary returns the excerpt's primary (highlighted) line range.
func (e Excerpt) Primary() coords.LineRange { return e.rangeInfo.Primary }

// HasTrailingNewline reports whether the excerpt owns a synthetic
// separator row after its content.
func (e Excerpt) HasTrailingNewline() bool { return e.hasTrailingNewline }

// Summary returns the excerpt's aggregate text metrics at the version its
// underlying snapshot was taken.
func (e Excerpt) Summary() buffer.Summary { return e.summary }

// lineCount returns the number of unified rows this excerpt occupies,
// including its synthetic trailing-newline row if it has one.
func (e Excerpt) lineCount() int {
	n := e.rangeInfo.Context.Len()
	if e.hasTrailingNewline {
		n++
	}
	return n
}

func resolveConfig(opts []Option) excerptConfig {
	var cfg excerptConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
