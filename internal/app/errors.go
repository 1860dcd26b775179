package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrUnknownBuilder = errors.New("unknown builder")
)
