// Package anchor is documented in anchor.go and resolve.go; see those for
// the Anchor/Selection types and the AdjustOffset kernel respectively.
package anchor
