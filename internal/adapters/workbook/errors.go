package workbook

import "errors"

// Sentinel kinds for workbook errors.
var (
	ErrNoPath    = errors.New("workbook path not configured")
	ErrOpenBook  = errors.New("open workbook failed")
	ErrReadBook  = errors.New("read workbook failed")
	ErrWriteBook = errors.New("write workbook failed")
)
