package aggregating

import "errors"

var (
	ErrUnknownDimension  = errors.New("unknown dimension")
	ErrInvalidDimensions = errors.New("invalid dimensions")
)
