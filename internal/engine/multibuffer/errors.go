package multibuffer

import "errors"

// Errors returned by multibuffer operations.
var (
	// ErrExcerptRangeOverflow indicates an excerpt's requested context
	// range extends past its source buffer's current line count.
	ErrExcerptRangeOverflow = errors.New("excerpt range overflows buffer")

	// ErrBufferNotRegistered indicates an operation referenced a buffer
	// that has not been added to the multibuffer.
	ErrBufferNotRegistered = errors.New("buffer not registered with multibuffer")

	// ErrExcerptNotFound indicates an excerpt ID is stale or unknown.
	ErrExcerptNotFound = errors.New("excerpt not found")
)
