// Package anchor defines Anchor, the position type that survives edits to
// the excerpt and buffer it was created against, plus the pure kernel used
// to carry an anchor's offset forward through a buffer's edit log.
package anchor

import (
	"github.com/dshills/multibuffer/internal/engine/coords"
	"github.com/dshills/multibuffer/internal/engine/slotmap"
)

// Anchor is a logical position that tracks a point in a buffer across
// edits: an offset captured at a specific buffer version, plus the bias
// that decides which side of an edit boundary it prefers. ExcerptID
// identifies which excerpt the anchor was created against; resolving the
// anchor later may redirect it through a chain of replaced excerpts if
// that excerpt has since been removed and superseded.
type Anchor struct {
	ExcerptID slotmap.Key
	Offset    coords.BufferOffset
	Bias      coords.Bias
	Version   int
}

// HeadEnd identifies which endpoint of a Selection is the "head": the
// endpoint that moves when the selection is extended.
type HeadEnd uint8

const (
	// HeadIsEnd means the selection's head is its End anchor.
	HeadIsEnd HeadEnd = iota
	// HeadIsStart means the selection's head is its Start anchor.
	HeadIsStart
)

// AnchorRange is a pair of anchors delimiting a range whose endpoints move
// independently as edits occur.
type AnchorRange struct {
	Start Anchor
	End   Anchor
}

// Selection is an AnchorRange plus which endpoint is the head (the end
// that moves when the selection is extended, e.g. by continued typing or
// shift-click).
type Selection struct {
	Range AnchorRange
	Head  HeadEnd
}

// IsEmpty returns true if the selection's two anchors sit at the same
// excerpt, offset, and version (no extent).
func (s Selection) IsEmpty() bool {
	r := s.Range
	return r.Start.ExcerptID == r.End.ExcerptID &&
		r.Start.Offset == r.End.Offset &&
		r.Start.Version == r.End.Version
}
