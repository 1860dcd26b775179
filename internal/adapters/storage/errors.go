package storage

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrNoSuchSave = errors.New("saved ranking not found")
	ErrClosed     = errors.New("store closed")
)
