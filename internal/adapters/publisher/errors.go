package publisher

import "errors"

// Sentinel kinds for publisher errors.
var (
	ErrMissingConfig = errors.New("publisher config incomplete")
	ErrReadArtifact  = errors.New("read workbook artifact failed")
	ErrUpload        = errors.New("upload to destination failed")
)
