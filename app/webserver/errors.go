package webserver

import "errors"

var (
	ErrNilLogger         = errors.New("webserver: logger cannot be nil")
	ErrInvalidLogMode    = errors.New("webserver: request logging must be false, true or full")
	ErrAlreadyStarted    = errors.New("webserver: already started")
	ErrNotStarted        = errors.New("webserver: not started")
	ErrInvalidStaticPath = errors.New("webserver: static prefix must start with '/'")
)
