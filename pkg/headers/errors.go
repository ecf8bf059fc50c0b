package headers

import "errors"

var (
	ErrOverlappingHeaders = errors.New("gridmap: overlapping nested headers")
	ErrMismatchedWidths   = errors.New("gridmap: nested header levels differ in width")
	ErrInvalidHeader      = errors.New("gridmap: invalid nested header")
)
