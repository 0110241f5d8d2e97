package sanitize

import "errors"

// Sentinel kinds for rejected input. The HTTP layer relies on errors.Is
// against these to tell a client which field to fix.
var (
	ErrInvalidGame  = errors.New("invalid game")
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidScore = errors.New("invalid score")
)
