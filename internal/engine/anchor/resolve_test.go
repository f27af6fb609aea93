package anchor

import (
	"testing"

	"github.com/dshills/multibuffer/internal/engine/buffer"
	"github.com/dshills/multibuffer/internal/engine/coords"
)

func TestAdjustOffsetBeforeEdit(t *testing.T) {
	e := buffer.EditEntry{Offset: 10, DeletedLength: 2, InsertedLength: 5}
	if got := AdjustOffset(5, coords.BiasLeft, e); got != 5 {
		t.Fatalf("offset before edit changed: got %d, want 5", got)
	}
}

func TestAdjustOffsetAfterEdit(t *testing.T) {
	e := buffer.EditEntry{Offset: 10, DeletedLength: 2, InsertedLength: 5}
	// offset 20 is after [10,12); delta = 5-2 = +3
	if got := AdjustOffset(20, coords.BiasLeft, e); got != 23 {
		t.Fatalf("offset after edit = %d, want 23", got)
	}
}

func TestAdjustOffsetInsideDeletedSpan(t *testing.T) {
	e := buffer.EditEntry{Offset: 10, DeletedLength: 4, InsertedLength: 0}
	if got := AdjustOffset(12, coords.BiasLeft, e); got != 10 {
		t.Fatalf("offset inside deletion = %d, want 10", got)
	}
	if got := AdjustOffset(14, coords.BiasRight, e); got != 10 {
		t.Fatalf("offset at end of deletion = %d, want 10", got)
	}
}

func TestAdjustOffsetAtInsertionPoint(t *testing.T) {
	e := buffer.EditEntry{Offset: 10, DeletedLength: 0, InsertedLength: 5}
	if got := AdjustOffset(10, coords.BiasLeft, e); got != 10 {
		t.Fatalf("BiasLeft at insertion point = %d, want 10 (stays put)", got)
	}
	if got := AdjustOffset(10, coords.BiasRight, e); got != 15 {
		t.Fatalf("BiasRight at insertion point = %d, want 15 (pushed)", got)
	}
}

func TestAdjustOffsetThroughEdits(t *testing.T) {
	edits := []buffer.EditEntry{
		{Offset: 0, DeletedLength: 0, InsertedLength: 4},  // "abcd" prepended
		{Offset: 10, DeletedLength: 2, InsertedLength: 0}, // delete 2 bytes later
	}
	got := AdjustOffsetThroughEdits(5, coords.BiasLeft, edits)
	// edit 1 shifts 5 -> 9 (offset is after the insertion point, +4 delta).
	// edit 2 starts at 10, after the now-shifted offset 9, so it is unaffected.
	if got != 9 {
		t.Fatalf("AdjustOffsetThroughEdits = %d, want 9", got)
	}
}
