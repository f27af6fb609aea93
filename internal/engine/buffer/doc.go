// Package buffer implements Buffer, the mutable text container each
// Excerpt draws its content from.
//
// A Buffer wraps an immutable rope.Rope and layers a monotonic version
// counter and an append-only edit log on top: every Insert, Delete, or
// Replace appends one EditEntry and increments the version. Anchor
// resolution walks this log to carry a position captured at an older
// version forward to the buffer's current content.
//
// Example:
//
//	b := buffer.New("package main\n")
//	b.Insert(13, "\nfunc main() {}\n")
//	snap := b.Snapshot()
//	snap.Line(1) // ""
package buffer
