package rope

import "strings"

// targetChunkSize is the preferred byte size of a chunk. Splits on insert
// try to land a chunk boundary just after a newline near this size rather
// than at an arbitrary byte, so that line lookups rarely need to cross a
// chunk boundary.
const targetChunkSize = 1024

// chunk is an immutable run of text. newlines caches the newline count so
// line lookups don't rescan chunk text they've already counted once.
type chunk struct {
	text     string
	newlines int
}

func newChunk(s string) chunk {
	return chunk{text: s, newlines: strings.Count(s, "\n")}
}

func (c chunk) Len() int { return len(c.text) }

// splitIntoChunks breaks s into a sequence of chunks no larger than
// roughly 2x targetChunkSize, preferring to cut right after a newline.
func splitIntoChunks(s string) []chunk {
	if s == "" {
		return nil
	}
	var chunks []chunk
	for len(s) > 2*targetChunkSize {
		cut := findChunkBoundary(s)
		chunks = append(chunks, newChunk(s[:cut]))
		s = s[cut:]
	}
	if s != "" {
		chunks = append(chunks, newChunk(s))
	}
	return chunks
}

// findChunkBoundary picks a split point near targetChunkSize, preferring
// the byte right after the last newline within the window so most lines
// stay within a single chunk.
func findChunkBoundary(s string) int {
	window := s[:targetChunkSize]
	if idx := strings.LastIndexByte(window, '\n'); idx >= 0 {
		return idx + 1
	}
	return targetChunkSize
}
