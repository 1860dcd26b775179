// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
)

// pathIndex parses the {idx} path segment as a non-negative index.
func pathIndex(r *http.Request) (int, error) {
	idx, err := strconv.Atoi(r.PathValue("idx"))
	if err != nil {
		return 0, ErrBadRequest
	}
	if idx < 0 {
		return 0, ErrBadRequest
	}
	return idx, nil
}
