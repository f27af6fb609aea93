// Package rope provides the chunked text storage underlying Buffer.
//
// A Rope is immutable: every mutating method returns a new Rope and leaves
// the receiver untouched. Chunk values are plain structs carrying only a
// string and a cached newline count, so copying a slice of them (as every
// edit does for the chunks outside the touched region) never duplicates
// the underlying text bytes.
//
// Example:
//
//	r := rope.FromString("hello\nworld\n")
//	r = r.Insert(5, ", there")
//	r.Text() // "hello, there\nworld\n"
package rope
