// Package multibuffer composes excerpts from one or more buffers into a
// single unified view: one ordered sequence of rows addressable by
// UnifiedRow, even though each row's content may come from a different
// source buffer. This is the facade other packages interact with; it owns
// the excerpt slot map, the buffer registry, and the display-order cache
// that translates between unified rows and each excerpt's place in a
// source buffer.
package multibuffer

import (
	"github.com/dshills/multibuffer/internal/engine/anchor"
	"github.com/dshills/multibuffer/internal/engine/buffer"
	"github.com/dshills/multibuffer/internal/engine/coords"
	"github.com/dshills/multibuffer/internal/engine/slotmap"
)

// maxReplacementChainDepth bounds how many hops ResolveAnchor will follow
// through the replacedExcerpts chain before giving up. A well-behaved
// caller never produces chains anywhere near this long; it exists purely
// to turn a logic bug into a bounded failure instead of an infinite loop.
const maxReplacementChainDepth = 100

// MultiBuffer holds the mutable state of a multibuffer: its excerpts, the
// buffers they draw from, and the display order between them. Per the
// concurrency model this library assumes (single-threaded, cooperative),
// MultiBuffer carries no internal locking — all mutations on a given
// MultiBuffer must be serialized by the caller.
type MultiBuffer struct {
	excerpts         *slotmap.Map[Excerpt]
	order            []ID
	buffers          map[buffer.ID]*buffer.Buffer
	replacedExcerpts map[ID]ID

	cache Cache
}

// New creates an empty MultiBuffer.
func New() *MultiBuffer {
	return &MultiBuffer{
		excerpts:         slotmap.New[Excerpt](),
		buffers:          make(map[buffer.ID]*buffer.Buffer),
		replacedExcerpts: make(map[ID]ID),
	}
}

// AddBuffer registers b with the multibuffer so its excerpts can be
// created and resolved against its live state. Registering the same
// buffer twice is a no-op.
func (mb *MultiBuffer) AddBuffer(b *buffer.Buffer) {
	mb.buffers[b.ID()] = b
}

// Buffer returns the registered buffer with the given ID, if any.
func (mb *MultiBuffer) Buffer(id buffer.ID) (*buffer.Buffer, bool) {
	b, ok := mb.buffers[id]
	return b, ok
}

// AddExcerpt appends a new excerpt drawing context from b's current
// content and returns its ID. It returns ErrBufferNotRegistered if b has
// not been added, and ErrExcerptRangeOverflow if context.End exceeds b's
// current line count.
func (mb *MultiBuffer) AddExcerpt(b *buffer.Buffer, context coords.LineRange, opts ...Option) (ID, error) {
	if _, ok := mb.buffers[b.ID()]; !ok {
		return ID{}, ErrBufferNotRegistered
	}
	snap := b.Snapshot()
	if int(context.End) > snap.LineCount() {
		return ID{}, ErrExcerptRangeOverflow
	}

	cfg := resolveConfig(opts)
	primary := context
	if cfg.primary != nil {
		primary = *cfg.primary
	}

	rng := Range{Context: context, Primary: primary}
	id := mb.excerpts.Insert(Excerpt{})
	mb.excerpts.Set(id, newExcerptWithID(id, snap, rng, cfg.hasTrailingNewline))
	mb.order = append(mb.order, id)
	mb.rebuildCache()
	return id, nil
}

func newExcerptWithID(id ID, snap *buffer.Snapshot, rng Range, hasTrailingNewline bool) Excerpt {
	e := newExcerpt(id, snap, rng, hasTrailingNewline)
	e.id = id
	return e
}

// RemoveExcerpt removes id from the display order. It does not register a
// replacement; anchors into a removed excerpt that was never superseded by
// SetExcerptsForBuffer will fail to resolve.
func (mb *MultiBuffer) RemoveExcerpt(id ID) {
	if _, ok := mb.excerpts.Remove(id); !ok {
		return
	}
	mb.removeFromOrder(id)
	mb.rebuildCache()
}

func (mb *MultiBuffer) removeFromOrder(id ID) {
	for i, oid := range mb.order {
		if oid == id {
			mb.order = append(mb.order[:i], mb.order[i+1:]...)
			return
		}
	}
}

// SetExcerptsForBuffer atomically replaces every excerpt currently sourced
// from b with fresh excerpts built from ranges, inserted at the position
// of the first excerpt they displace. When ranges is non-empty, every
// displaced excerpt's ID is registered in the replacement chain, pointing
// at the first of the new IDs, so anchors into the old excerpts can still
// resolve via ResolveAnchor; when ranges is empty, no replacement is
// registered and such anchors no longer resolve. Returns the new excerpt
// IDs in display order.
func (mb *MultiBuffer) SetExcerptsForBuffer(b *buffer.Buffer, ranges []Range, opts ...Option) ([]ID, error) {
	if _, ok := mb.buffers[b.ID()]; !ok {
		return nil, ErrBufferNotRegistered
	}
	snap := b.Snapshot()
	for _, r := range ranges {
		if int(r.Context.End) > snap.LineCount() {
			return nil, ErrExcerptRangeOverflow
		}
	}
	cfg := resolveConfig(opts)

	insertAt := len(mb.order)
	var displaced []ID
	newOrder := make([]ID, 0, len(mb.order))
	placed := false
	for _, id := range mb.order {
		e, _ := mb.excerpts.Get(id)
		if e.bufferID == b.ID() {
			if !placed {
				insertAt = len(newOrder)
				placed = true
			}
			displaced = append(displaced, id)
			mb.excerpts.Remove(id)
			continue
		}
		newOrder = append(newOrder, id)
	}

	newIDs := make([]ID, 0, len(ranges))
	for _, r := range ranges {
		primary := r.Primary
		if primary == (coords.LineRange{}) {
			primary = r.Context
		}
		id := mb.excerpts.Insert(Excerpt{})
		mb.excerpts.Set(id, newExcerptWithID(id, snap, Range{Context: r.Context, Primary: primary}, cfg.hasTrailingNewline))
		newIDs = append(newIDs, id)
	}

	head := append([]ID{}, newOrder[:insertAt]...)
	head = append(head, newIDs...)
	head = append(head, newOrder[insertAt:]...)
	mb.order = head

	if len(newIDs) > 0 {
		for _, old := range displaced {
			mb.replacedExcerpts[old] = newIDs[0]
		}
	}

	mb.rebuildCache()
	return newIDs, nil
}

// ExpandExcerpt grows id's context range by linesBefore and linesAfter
// lines, clamped to the source buffer's current bounds, and rebuilds the
// excerpt's cached content. It is a no-op if id is stale.
func (mb *MultiBuffer) ExpandExcerpt(id ID, linesBefore, linesAfter int) error {
	e, ok := mb.excerpts.Get(id)
	if !ok {
		return ErrExcerptNotFound
	}
	b, ok := mb.buffers[e.bufferID]
	if !ok {
		return ErrBufferNotRegistered
	}
	snap := b.Snapshot()

	start := e.rangeInfo.Context.Start - coords.BufferRow(linesBefore)
	if start < 0 {
		start = 0
	}
	end := e.rangeInfo.Context.End + coords.BufferRow(linesAfter)
	if lc := coords.BufferRow(snap.LineCount()); end > lc {
		end = lc
	}

	rng := Range{Context: coords.LineRange{Start: start, End: end}, Primary: e.rangeInfo.Primary}
	mb.excerpts.Set(id, newExcerptWithID(id, snap, rng, e.hasTrailingNewline))
	mb.rebuildCache()
	return nil
}

// CreateAnchor resolves point to a buffer position and returns an Anchor
// tracking it, or ok=false if point does not fall within any excerpt.
func (mb *MultiBuffer) CreateAnchor(point coords.UnifiedPoint, bias coords.Bias) (anchor.Anchor, bool) {
	snap := mb.Snapshot()
	info, bp, ok := snap.ToBufferPoint(point)
	if !ok {
		return anchor.Anchor{}, false
	}
	b, ok := mb.buffers[info.BufferID]
	if !ok {
		return anchor.Anchor{}, false
	}
	liveSnap := b.Snapshot()
	offset := liveSnap.PointToOffset(bp)
	return anchor.Anchor{
		ExcerptID: info.ID,
		Offset:    offset,
		Bias:      bias,
		Version:   b.Version(),
	}, true
}

// Edit applies a text replacement expressed in unified coordinates as one
// Replace on the source buffer. An edit whose endpoints resolve to
// different buffers is silently ignored, since there is no single buffer
// operation it could translate to. Endpoints in two different excerpts of
// the same buffer are not rejected: the whole buffer range between them is
// replaced, including lines that no excerpt displays.
func (mb *MultiBuffer) Edit(start, end coords.UnifiedPoint, text string) {
	snap := mb.Snapshot()
	startInfo, startBP, ok := snap.ToBufferPoint(start)
	if !ok {
		return
	}
	endInfo, endBP, ok := snap.ToBufferPoint(end)
	if !ok {
		return
	}
	if startInfo.BufferID != endInfo.BufferID {
		return
	}

	b, ok := mb.buffers[startInfo.BufferID]
	if !ok {
		return
	}
	liveSnap := b.Snapshot()
	startOffset := liveSnap.PointToOffset(startBP)
	endOffset := liveSnap.PointToOffset(endBP)
	b.Replace(startOffset, endOffset, text)

	mb.refreshExcerptsForBuffer(startInfo.BufferID)
	mb.rebuildCache()
}

// refreshExcerptsForBuffer rebuilds every excerpt sourced from bufID
// against the buffer's current snapshot, clamping context ranges that now
// overflow the buffer's shrunk line count.
func (mb *MultiBuffer) refreshExcerptsForBuffer(bufID buffer.ID) {
	b, ok := mb.buffers[bufID]
	if !ok {
		return
	}
	snap := b.Snapshot()
	lc := coords.BufferRow(snap.LineCount())

	for _, id := range mb.order {
		e, ok := mb.excerpts.Get(id)
		if !ok || e.bufferID != bufID {
			continue
		}
		ctx := e.rangeInfo.Context
		if ctx.End > lc {
			ctx.End = lc
		}
		if ctx.Start > ctx.End {
			ctx.Start = ctx.End
		}
		primary := e.rangeInfo.Primary
		if primary.End > lc {
			primary.End = lc
		}
		if primary.Start > primary.End {
			primary.Start = primary.End
		}
		rng := Range{Context: ctx, Primary: primary}
		mb.excerpts.Set(id, newExcerptWithID(id, snap, rng, e.hasTrailingNewline))
	}
}

// rebuildCache recomputes the unified-row layout of every excerpt in
// display order.
func (mb *MultiBuffer) rebuildCache() {
	infos := make([]Info, 0, len(mb.order))
	index := make(map[ID]int, len(mb.order))
	var running coords.UnifiedRow

	for _, id := range mb.order {
		e, ok := mb.excerpts.Get(id)
		if !ok {
			continue
		}
		length := coords.UnifiedRow(e.lineCount())
		info := Info{
			ID:                 id,
			BufferID:           e.bufferID,
			Range:              e.rangeInfo,
			StartRow:           running,
			EndRow:             running + length,
			HasTrailingNewline: e.hasTrailingNewline,
		}
		index[id] = len(infos)
		infos = append(infos, info)
		running += length
	}

	mb.cache = Cache{
		infos:     infos,
		index:     index,
		lineCount: running,
	}
}

// Snapshot captures an immutable view of the multibuffer's current
// display order, buffer registry, and replacement chain.
func (mb *MultiBuffer) Snapshot() *Snapshot {
	excerpts := make(map[ID]Excerpt, mb.excerpts.Len())
	mb.excerpts.Each(func(k ID, v Excerpt) { excerpts[k] = v })

	buffers := make(map[buffer.ID]*buffer.Buffer, len(mb.buffers))
	for id, b := range mb.buffers {
		buffers[id] = b
	}

	replaced := make(map[ID]ID, len(mb.replacedExcerpts))
	for k, v := range mb.replacedExcerpts {
		replaced[k] = v
	}

	return &Snapshot{
		cache:            mb.cache,
		excerpts:         excerpts,
		buffers:          buffers,
		replacedExcerpts: replaced,
	}
}
