package multibuffer

import (
	"testing"

	"github.com/dshills/multibuffer/internal/engine/buffer"
	"github.com/dshills/multibuffer/internal/engine/coords"
)

func TestAddExcerptAndExcerptAt(t *testing.T) {
	b := buffer.New("line0\nline1\nline2\nline3\n")
	mb := New()
	mb.AddBuffer(b)

	id, err := mb.AddExcerpt(b, coords.NewLineRange(1, 3))
	if err != nil {
		t.Fatalf("AddExcerpt: %v", err)
	}

	snap := mb.Snapshot()
	if snap.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", snap.LineCount())
	}

	info, ok := snap.ExcerptAt(0)
	if !ok || info.ID != id {
		t.Fatalf("ExcerptAt(0) = %+v, %v", info, ok)
	}
	info, ok = snap.ExcerptAt(1)
	if !ok || info.ID != id {
		t.Fatalf("ExcerptAt(1) = %+v, %v", info, ok)
	}
	if _, ok := snap.ExcerptAt(2); ok {
		t.Fatalf("ExcerptAt(2) should be out of range")
	}
}

func TestAddExcerptRangeOverflow(t *testing.T) {
	b := buffer.New("one\ntwo\n")
	mb := New()
	mb.AddBuffer(b)

	if _, err := mb.AddExcerpt(b, coords.NewLineRange(0, 10)); err != ErrExcerptRangeOverflow {
		t.Fatalf("AddExcerpt overflow = %v, want ErrExcerptRangeOverflow", err)
	}
}

func TestAddExcerptUnregisteredBuffer(t *testing.T) {
	b := buffer.New("hello\n")
	mb := New()
	if _, err := mb.AddExcerpt(b, coords.NewLineRange(0, 1)); err != ErrBufferNotRegistered {
		t.Fatalf("AddExcerpt unregistered = %v, want ErrBufferNotRegistered", err)
	}
}

func TestToBufferPointAndBack(t *testing.T) {
	b := buffer.New("a\nb\nc\nd\ne\n")
	mb := New()
	mb.AddBuffer(b)
	id, _ := mb.AddExcerpt(b, coords.NewLineRange(1, 4)) // lines b, c, d

	snap := mb.Snapshot()
	info, bp, ok := snap.ToBufferPoint(coords.UnifiedPoint{Row: 1, Column: 0})
	if !ok || info.ID != id || bp.Row != 2 {
		t.Fatalf("ToBufferPoint = %+v, %+v, %v", info, bp, ok)
	}

	up, ok := snap.ToMultiBufferPoint(id, bp)
	if !ok || up.Row != 1 {
		t.Fatalf("ToMultiBufferPoint = %+v, %v", up, ok)
	}
}

func TestMultipleExcerptsDisplayOrder(t *testing.T) {
	b1 := buffer.New("a\nb\nc\n")
	b2 := buffer.New("x\ny\nz\n")
	mb := New()
	mb.AddBuffer(b1)
	mb.AddBuffer(b2)

	id1, _ := mb.AddExcerpt(b1, coords.NewLineRange(0, 2))
	id2, _ := mb.AddExcerpt(b2, coords.NewLineRange(1, 3))

	snap := mb.Snapshot()
	if snap.LineCount() != 4 {
		t.Fatalf("LineCount = %d, want 4", snap.LineCount())
	}
	info, _ := snap.ExcerptAt(0)
	if info.ID != id1 {
		t.Fatalf("row 0 belongs to %v, want %v", info.ID, id1)
	}
	info, _ = snap.ExcerptAt(2)
	if info.ID != id2 {
		t.Fatalf("row 2 belongs to %v, want %v", info.ID, id2)
	}
}

func TestTrailingNewlineRowRoutesToNextExcerptSameBuffer(t *testing.T) {
	b := buffer.New("a\nb\nc\nd\n")
	mb := New()
	mb.AddBuffer(b)

	id1, _ := mb.AddExcerpt(b, coords.NewLineRange(0, 1), WithTrailingNewline(true))
	id2, _ := mb.AddExcerpt(b, coords.NewLineRange(2, 4))

	snap := mb.Snapshot()
	// excerpt 1 occupies unified row 0 (content) and row 1 (synthetic).
	info, bp, ok := snap.ToBufferPoint(coords.UnifiedPoint{Row: 1, Column: 0})
	if !ok {
		t.Fatalf("ToBufferPoint on trailing row failed")
	}
	if info.ID != id2 {
		t.Fatalf("trailing row routed to %v, want next excerpt %v", info.ID, id2)
	}
	if bp.Row != 2 {
		t.Fatalf("trailing row buffer point row = %d, want 2", bp.Row)
	}
	_ = id1
}

func TestEditThroughMultiBuffer(t *testing.T) {
	b := buffer.New("alpha\nbeta\ngamma\n")
	mb := New()
	mb.AddBuffer(b)
	mb.AddExcerpt(b, coords.NewLineRange(0, 3))

	mb.Edit(coords.UnifiedPoint{Row: 1, Column: 0}, coords.UnifiedPoint{Row: 1, Column: 4}, "BETA")

	if b.Text() != "alpha\nBETA\ngamma\n" {
		t.Fatalf("buffer text after multibuffer edit = %q", b.Text())
	}
}

func TestEditAcrossBuffersIsNoOp(t *testing.T) {
	b1 := buffer.New("one\ntwo\n")
	b2 := buffer.New("three\nfour\n")
	mb := New()
	mb.AddBuffer(b1)
	mb.AddBuffer(b2)
	mb.AddExcerpt(b1, coords.NewLineRange(0, 2))
	mb.AddExcerpt(b2, coords.NewLineRange(0, 2))

	mb.Edit(coords.UnifiedPoint{Row: 1, Column: 0}, coords.UnifiedPoint{Row: 2, Column: 0}, "x")

	if b1.Text() != "one\ntwo\n" || b2.Text() != "three\nfour\n" {
		t.Fatalf("cross-buffer edit mutated a buffer: b1=%q b2=%q", b1.Text(), b2.Text())
	}
}

func TestCreateAndResolveAnchorAfterEdit(t *testing.T) {
	b := buffer.New("one\ntwo\nthree\n")
	mb := New()
	mb.AddBuffer(b)
	mb.AddExcerpt(b, coords.NewLineRange(0, 3))

	a, ok := mb.CreateAnchor(coords.UnifiedPoint{Row: 2, Column: 2}, coords.BiasLeft)
	if !ok {
		t.Fatalf("CreateAnchor failed")
	}

	mb.Edit(coords.UnifiedPoint{Row: 0, Column: 0}, coords.UnifiedPoint{Row: 0, Column: 0}, "X")

	snap := mb.Snapshot()
	up, ok := snap.ResolveAnchor(a)
	if !ok {
		t.Fatalf("ResolveAnchor failed after edit")
	}
	if up.Row != 2 || up.Column != 2 {
		t.Fatalf("resolved anchor = %+v, want row 2 col 2 (line count unchanged by edit)", up)
	}
}

func TestSetExcerptsForBufferReplacesAndResolves(t *testing.T) {
	b := buffer.New("a\nb\nc\nd\ne\n")
	mb := New()
	mb.AddBuffer(b)
	oldID, _ := mb.AddExcerpt(b, coords.NewLineRange(0, 2))

	a, ok := mb.CreateAnchor(coords.UnifiedPoint{Row: 1, Column: 0}, coords.BiasLeft)
	if !ok {
		t.Fatalf("CreateAnchor failed")
	}

	newIDs, err := mb.SetExcerptsForBuffer(b, []Range{{Context: coords.NewLineRange(0, 5)}})
	if err != nil {
		t.Fatalf("SetExcerptsForBuffer: %v", err)
	}
	if len(newIDs) != 1 {
		t.Fatalf("SetExcerptsForBuffer returned %d ids, want 1", len(newIDs))
	}

	snap := mb.Snapshot()
	if _, ok := snap.excerptByID(oldID); ok {
		t.Fatalf("old excerpt still live after replacement")
	}
	up, ok := snap.ResolveAnchor(a)
	if !ok {
		t.Fatalf("ResolveAnchor through replacement chain failed")
	}
	if up.Row != 1 {
		t.Fatalf("resolved anchor row = %d, want 1", up.Row)
	}
}

func TestRemoveExcerptShrinksLayout(t *testing.T) {
	b := buffer.New("a\nb\nc\n")
	mb := New()
	mb.AddBuffer(b)
	id, _ := mb.AddExcerpt(b, coords.NewLineRange(0, 3))

	mb.RemoveExcerpt(id)
	snap := mb.Snapshot()
	if snap.LineCount() != 0 {
		t.Fatalf("LineCount after remove = %d, want 0", snap.LineCount())
	}
}

func TestExpandExcerptGrowsContext(t *testing.T) {
	b := buffer.New("a\nb\nc\nd\ne\n")
	mb := New()
	mb.AddBuffer(b)
	id, _ := mb.AddExcerpt(b, coords.NewLineRange(2, 3))

	if err := mb.ExpandExcerpt(id, 1, 1); err != nil {
		t.Fatalf("ExpandExcerpt: %v", err)
	}

	snap := mb.Snapshot()
	if snap.LineCount() != 3 {
		t.Fatalf("LineCount after expand = %d, want 3", snap.LineCount())
	}
}

func TestResolveAnchorFallsBackToFrozenSnapshotWhenBufferDeregistered(t *testing.T) {
	b := buffer.New("alpha\nbravo\ncharlie\n")
	mb := New()
	mb.AddBuffer(b)
	mb.AddExcerpt(b, coords.NewLineRange(0, 3))

	a, ok := mb.CreateAnchor(coords.UnifiedPoint{Row: 1, Column: 2}, coords.BiasLeft)
	if !ok {
		t.Fatalf("CreateAnchor failed")
	}

	// Deregister the buffer without removing its excerpt, simulating a
	// buffer closed out from under a multibuffer that still displays its
	// last-known content via the excerpt's frozen snapshot.
	delete(mb.buffers, b.ID())

	snap := mb.Snapshot()
	up, ok := snap.ResolveAnchor(a)
	if !ok {
		t.Fatalf("ResolveAnchor should fall back to the excerpt's frozen snapshot, not fail")
	}
	if up.Row != 1 || up.Column != 2 {
		t.Fatalf("ResolveAnchor fallback = %+v, want {Row:1 Column:2}", up)
	}
}
