package multibuffer

import (
	"sort"

	"github.com/dshills/multibuffer/internal/engine/anchor"
	"github.com/dshills/multibuffer/internal/engine/buffer"
	"github.com/dshills/multibuffer/internal/engine/coords"
)

// Info describes where one excerpt sits in a multibuffer's unified row
// space, alongside the buffer range it draws from.
type Info struct {
	ID                 ID
	BufferID           buffer.ID
	Range              Range
	StartRow           coords.UnifiedRow
	EndRow             coords.UnifiedRow
	HasTrailingNewline bool
}

// Cache is the precomputed display-order layout of a MultiBuffer's
// excerpts: their unified row spans, in display order, plus a dense index
// from excerpt ID to its position for O(1) lookup by ID.
type Cache struct {
	infos     []Info
	index     map[ID]int
	lineCount coords.UnifiedRow
}

// Snapshot is an immutable, point-in-time view of a MultiBuffer's display
// order, used to translate between unified and buffer coordinates and to
// resolve anchors without racing further mutation of the live MultiBuffer.
// Buffer content is read through the live *buffer.Buffer at resolution
// time, since an anchor's whole purpose is to track a position forward to
// the buffer's current version, not the version at snapshot time.
type Snapshot struct {
	cache            Cache
	excerpts         map[ID]Excerpt
	buffers          map[buffer.ID]*buffer.Buffer
	replacedExcerpts map[ID]ID
}

// LineCount returns the total number of unified rows across every excerpt,
// including synthetic trailing-newline rows.
func (s *Snapshot) LineCount() coords.UnifiedRow { return s.cache.lineCount }

// ExcerptAt returns the excerpt occupying unified row, or ok=false if row
// is out of range. A synthetic trailing-newline row is attributed to the
// excerpt that owns it (the excerpt immediately preceding the next one's
// content), not the excerpt that follows.
func (s *Snapshot) ExcerptAt(row coords.UnifiedRow) (Info, bool) {
	infos := s.cache.infos
	if row < 0 || row >= s.cache.lineCount {
		return Info{}, false
	}
	i := sort.Search(len(infos), func(i int) bool { return infos[i].EndRow > row })
	if i >= len(infos) || infos[i].StartRow > row {
		return Info{}, false
	}
	return infos[i], true
}

// excerptByID returns the cached Info for id, if id currently occupies a
// live position in the display order (not merely a live slotmap entry).
func (s *Snapshot) excerptByID(id ID) (Info, bool) {
	i, ok := s.cache.index[id]
	if !ok {
		return Info{}, false
	}
	return s.cache.infos[i], true
}

// nextExcerptForBuffer returns the first excerpt after info in display
// order that is sourced from the same buffer, if any.
func (s *Snapshot) nextExcerptForBuffer(info Info) (Info, bool) {
	i := s.cache.index[info.ID]
	for j := i + 1; j < len(s.cache.infos); j++ {
		if s.cache.infos[j].BufferID == info.BufferID {
			return s.cache.infos[j], true
		}
	}
	return Info{}, false
}

// ToBufferPoint resolves a unified point to the excerpt that owns it and
// the corresponding position in that excerpt's source buffer. A point
// landing on an excerpt's synthetic trailing-newline row maps to the first
// line of the next excerpt drawn from the same buffer, if one exists;
// otherwise it maps to column 0 of the excerpt's last real line.
func (s *Snapshot) ToBufferPoint(p coords.UnifiedPoint) (Info, coords.BufferPoint, bool) {
	info, ok := s.ExcerptAt(p.Row)
	if !ok {
		return Info{}, coords.BufferPoint{}, false
	}

	rowInExcerpt := int(p.Row - info.StartRow)
	contextLen := info.Range.Context.Len()

	if info.HasTrailingNewline && rowInExcerpt == contextLen {
		if next, ok := s.nextExcerptForBuffer(info); ok {
			return next, coords.BufferPoint{Row: next.Range.Context.Start, Column: 0}, true
		}
		lastRow := info.Range.Context.End - 1
		if lastRow < info.Range.Context.Start {
			lastRow = info.Range.Context.Start
		}
		return info, coords.BufferPoint{Row: lastRow, Column: 0}, true
	}

	bufRow := info.Range.Context.Start + coords.BufferRow(rowInExcerpt)
	return info, coords.BufferPoint{Row: bufRow, Column: p.Column}, true
}

// ToMultiBufferPoint resolves a buffer point within the excerpt id to a
// unified point, or ok=false if bp falls outside that excerpt's context
// range or id is not a live excerpt.
func (s *Snapshot) ToMultiBufferPoint(id ID, bp coords.BufferPoint) (coords.UnifiedPoint, bool) {
	info, ok := s.excerptByID(id)
	if !ok {
		return coords.UnifiedPoint{}, false
	}
	if !info.Range.Context.Contains(bp.Row) {
		return coords.UnifiedPoint{}, false
	}
	rowInExcerpt := coords.UnifiedRow(bp.Row - info.Range.Context.Start)
	return coords.UnifiedPoint{Row: info.StartRow + rowInExcerpt, Column: bp.Column}, true
}

// Lines returns the text of each unified row in [startRow, endRow),
// clamped to the snapshot's bounds.
func (s *Snapshot) Lines(startRow, endRow coords.UnifiedRow) []string {
	if startRow < 0 {
		startRow = 0
	}
	if endRow > s.cache.lineCount {
		endRow = s.cache.lineCount
	}
	if startRow >= endRow {
		return nil
	}

	lines := make([]string, 0, endRow-startRow)
	for row := startRow; row < endRow; row++ {
		info, ok := s.ExcerptAt(row)
		if !ok {
			continue
		}
		rowInExcerpt := int(row - info.StartRow)
		if info.HasTrailingNewline && rowInExcerpt == info.Range.Context.Len() {
			lines = append(lines, "")
			continue
		}
		excerpt, ok := s.excerpts[info.ID]
		if !ok {
			continue
		}
		bufRow := info.Range.Context.Start + coords.BufferRow(rowInExcerpt)
		lines = append(lines, excerpt.bufferSnapshot.Line(bufRow))
	}
	return lines
}

// ClipPoint clamps p's row to [0, LineCount()) and its column to the
// length of the buffer line it resolves to.
func (s *Snapshot) ClipPoint(p coords.UnifiedPoint, bias coords.Bias) coords.UnifiedPoint {
	if s.cache.lineCount == 0 {
		return coords.UnifiedPoint{}
	}
	row := p.Row
	if row < 0 {
		row = 0
	}
	if row >= s.cache.lineCount {
		row = s.cache.lineCount - 1
	}

	info, ok := s.ExcerptAt(row)
	if !ok {
		return coords.UnifiedPoint{Row: row}
	}
	rowInExcerpt := int(row - info.StartRow)
	if info.HasTrailingNewline && rowInExcerpt == info.Range.Context.Len() {
		return coords.UnifiedPoint{Row: row, Column: 0}
	}

	excerpt, ok := s.excerpts[info.ID]
	if !ok {
		return coords.UnifiedPoint{Row: row}
	}
	bufRow := info.Range.Context.Start + coords.BufferRow(rowInExcerpt)
	lineLen := excerpt.bufferSnapshot.LineLen(bufRow)
	col := p.Column
	if col < 0 {
		col = 0
	}
	if col > lineLen {
		col = lineLen
	}
	return coords.UnifiedPoint{Row: row, Column: col}
}

// ExcerptBoundaries returns the Info of every excerpt overlapping
// [startRow, endRow), in display order. Useful for rendering gutter
// separators between excerpts.
func (s *Snapshot) ExcerptBoundaries(startRow, endRow coords.UnifiedRow) []Info {
	var out []Info
	for _, info := range s.cache.infos {
		if info.EndRow <= startRow || info.StartRow >= endRow {
			continue
		}
		out = append(out, info)
	}
	return out
}

// ResolveAnchor carries a's offset forward to the current state of its
// excerpt (following any chain of replacements left by SetExcerptsForBuffer,
// up to a bounded depth) and its buffer (replaying edits recorded since
// a.Version), returning the corresponding unified point. If the excerpt's
// source buffer is no longer registered with the snapshot, it falls back to
// the excerpt's own frozen snapshot and the anchor's unadjusted offset,
// since there is no live edit log left to carry it forward through. It
// reports ok=false only if the excerpt itself cannot be found, even after
// following replacements.
func (s *Snapshot) ResolveAnchor(a anchor.Anchor) (coords.UnifiedPoint, bool) {
	id := a.ExcerptID
	info, ok := s.excerptByID(id)
	for !ok {
		next, hasNext := s.replacedExcerpts[id]
		if !hasNext {
			return coords.UnifiedPoint{}, false
		}
		depth := 0
		for ; depth < maxReplacementChainDepth; depth++ {
			id = next
			info, ok = s.excerptByID(id)
			if ok {
				break
			}
			next, hasNext = s.replacedExcerpts[id]
			if !hasNext {
				return coords.UnifiedPoint{}, false
			}
		}
		if !ok {
			return coords.UnifiedPoint{}, false
		}
	}

	var bp coords.BufferPoint
	if b, ok := s.buffers[info.BufferID]; ok {
		offset := a.Offset
		if edits := b.EditsSince(a.Version); len(edits) > 0 {
			offset = anchor.AdjustOffsetThroughEdits(offset, a.Bias, edits)
		}

		liveSnap := b.Snapshot()
		offset = liveSnap.ClipOffset(offset, a.Bias)
		bp = liveSnap.OffsetToPoint(offset)
	} else {
		// No live buffer registered for this excerpt's source: fall back to
		// the excerpt's own frozen snapshot, taken at excerpt-construction
		// time, and the anchor's original offset with no edit-log
		// adjustment — there is no live edit log to replay against.
		excerpt, ok := s.excerpts[info.ID]
		if !ok {
			return coords.UnifiedPoint{}, false
		}
		bp = excerpt.bufferSnapshot.OffsetToPoint(a.Offset)
	}

	// The anchor's excerpt may no longer cover bp.Row if the buffer shrank
	// or the excerpt's own range was narrowed; if so, look for whichever
	// live excerpt on this buffer does cover it. Failing that, keep the
	// terminal excerpt and clamp to its nearest unified boundary.
	if !info.Range.Context.Contains(bp.Row) {
		if owner, ok := s.findExcerptContaining(info.BufferID, bp.Row); ok {
			info = owner
		}
	}

	if up, ok := s.ToMultiBufferPoint(info.ID, bp); ok {
		return up, true
	}
	if bp.Row < info.Range.Context.Start {
		return coords.UnifiedPoint{Row: info.StartRow, Column: 0}, true
	}
	return coords.UnifiedPoint{Row: info.EndRow - 1, Column: 0}, true
}

func (s *Snapshot) findExcerptContaining(bufID buffer.ID, row coords.BufferRow) (Info, bool) {
	for _, info := range s.cache.infos {
		if info.BufferID == bufID && info.Range.Context.Contains(row) {
			return info, true
		}
	}
	return Info{}, false
}
