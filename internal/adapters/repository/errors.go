package repository

import "errors"

// Sentinel kinds for store errors. Input rejections surface as the
// sanitize package's sentinels, wrapped with operation context.
var (
	ErrReadBoard  = errors.New("read leaderboard failed")
	ErrWriteBoard = errors.New("write leaderboard failed")
)
