package feed

import "net/url"

// JoinPath resolves path segments against a base API URL.
func JoinPath(base string, segments ...string) (string, error) {
	return url.JoinPath(base, segments...)
}
