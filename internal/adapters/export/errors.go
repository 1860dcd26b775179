package export

import "errors"

// Sentinel kinds for export errors.
var (
	ErrLogosNotReady = errors.New("logo preload not complete")
	ErrEmptySlice    = errors.New("nothing to export")
	ErrEncodeFailed  = errors.New("image encode failed")
)
