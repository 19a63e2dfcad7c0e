package paste2md

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyPayload        = errors.New("paste payload cannot be empty")
	ErrMarkdownConversion  = errors.New("markdown conversion failed")
	ErrPreviewRender       = errors.New("preview rendering failed")
	ErrInvalidContextLevel = errors.New("invalid context level")

	// Config validation errors.
	ErrInvalidHeadingLevel = errors.New("invalid max heading level")
	ErrTooManyReplacements = errors.New("too many replacement pairs")
	ErrReplacementTooLong  = errors.New("replacement pattern too long")
)
