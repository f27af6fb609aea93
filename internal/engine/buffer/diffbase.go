package buffer

import (
	"github.com/dshills/multibuffer/internal/engine/diff"
	"github.com/dshills/multibuffer/internal/engine/rope"
)

// SetBaseText records text as the comparison point for future DiffHunks
// calls, independent of the buffer's edit log or version. A typical base
// is the last-saved or VCS HEAD revision of the buffer's content, so
// callers can show a gutter of changed lines against it.
func (b *Buffer) SetBaseText(text string) {
	r := rope.FromString(normalizeLineEndings(text))
	b.baseRope = &r
}

// HasBaseText reports whether a base text has been set.
func (b *Buffer) HasBaseText() bool { return b.baseRope != nil }

// DiffHunks computes the line-based diff between the buffer's base text
// and its current content. It returns nil if no base text has been set.
// The comparison runs directly against the two ropes, which satisfy
// diff.LineSource, so no intermediate []string of either revision is
// ever materialized outside the diff package.
func (b *Buffer) DiffHunks(opts diff.Options) []diff.Hunk {
	if b.baseRope == nil {
		return nil
	}
	return diff.ComputeLineDiff(*b.baseRope, b.rope, opts).Hunks
}
