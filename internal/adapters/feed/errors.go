package feed

import "errors"

// Sentinel kinds for feed errors.
var (
	ErrBadStatus = errors.New("unexpected upstream status")
	ErrDecode    = errors.New("feed decode failed")
)
