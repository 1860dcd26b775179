package ranking

import "errors"

// Sentinel kinds for reorder errors.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrDuplicateEntity = errors.New("entity already ranked")
)
