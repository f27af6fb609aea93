package buffer

import (
	"fmt"

	"github.com/dshills/multibuffer/internal/engine/coords"
)

// Edit describes a text edit operation: the byte range to replace and the
// replacement text.
type Edit struct {
	Range   coords.OffsetRange
	NewText string
}

// NewEdit creates an Edit replacing r with newText.
func NewEdit(r coords.OffsetRange, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// NewInsert creates an Edit that inserts text at offset.
func NewInsert(offset coords.BufferOffset, text string) Edit {
	return Edit{Range: coords.OffsetRange{Start: offset, End: offset}, NewText: text}
}

// NewDelete creates an Edit that deletes [start, end).
func NewDelete(start, end coords.BufferOffset) Edit {
	return Edit{Range: coords.OffsetRange{Start: start, End: end}}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// IsInsert returns true if this is a pure insertion (empty range).
func (e Edit) IsInsert() bool { return e.Range.IsEmpty() && e.NewText != "" }

// IsDelete returns true if this is a pure deletion (empty replacement).
func (e Edit) IsDelete() bool { return !e.Range.IsEmpty() && e.NewText == "" }

// IsReplace returns true if this replaces existing text with new text.
func (e Edit) IsReplace() bool { return !e.Range.IsEmpty() && e.NewText != "" }

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool { return e.Range.IsEmpty() && e.NewText == "" }

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() int { return len(e.NewText) - int(e.Range.Len()) }

// EditResult describes the outcome of applying an Edit to a Buffer.
type EditResult struct {
	OldRange coords.OffsetRange
	NewRange coords.OffsetRange
	OldText  string
	Delta    int
}
