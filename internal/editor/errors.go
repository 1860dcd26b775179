package editor

import "errors"

// Sentinel kinds for editor errors.
var (
	ErrNotLoaded      = errors.New("builder not loaded")
	ErrAlreadyLoaded  = errors.New("builder already loaded")
	ErrLoadInProgress = errors.New("builder load in progress")
	ErrEmptyName      = errors.New("save name is empty")
	ErrNameTooLong    = errors.New("save name too long")
	ErrBadExportSize  = errors.New("unsupported export size")
)
