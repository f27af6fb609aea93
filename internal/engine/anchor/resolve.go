package anchor

import (
	"github.com/dshills/multibuffer/internal/engine/buffer"
	"github.com/dshills/multibuffer/internal/engine/coords"
)

// AdjustOffset carries offset through a single edit, honoring bias at the
// edit's boundaries:
//
//   - An offset strictly before the edit is unaffected.
//   - An offset strictly after the edit shifts by the edit's length delta.
//   - An offset inside the deleted span collapses to the edit's start.
//   - An offset exactly at the edit's start: BiasRight moves it to the end
//     of the inserted text (it was "pushed" by the insertion); BiasLeft
//     holds it at the edit's start (it "stuck" to what came before).
//
// This mirrors the sticky/non-sticky offset transform used for cursors
// and selections: non-sticky offsets move with an insertion at their
// position, sticky ones stay put.
func AdjustOffset(offset coords.BufferOffset, bias coords.Bias, e buffer.EditEntry) coords.BufferOffset {
	editStart := e.Offset
	editEnd := editStart + coords.BufferOffset(e.DeletedLength)
	insertedEnd := editStart + coords.BufferOffset(e.InsertedLength)

	switch {
	case offset < editStart:
		return offset
	case offset > editEnd:
		return offset + coords.BufferOffset(e.InsertedLength) - coords.BufferOffset(e.DeletedLength)
	case offset == editStart && bias == coords.BiasRight:
		return insertedEnd
	default:
		// offset is within (editStart, editEnd], or offset == editStart
		// with BiasLeft: collapse to the edit's start.
		return editStart
	}
}

// AdjustOffsetThroughEdits applies AdjustOffset for each edit in order,
// carrying offset from the version before edits[0] to the version after
// edits[len(edits)-1].
func AdjustOffsetThroughEdits(offset coords.BufferOffset, bias coords.Bias, edits []buffer.EditEntry) coords.BufferOffset {
	for _, e := range edits {
		offset = AdjustOffset(offset, bias, e)
	}
	return offset
}
