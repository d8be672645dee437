package util

import (
	"errors"
	"strings"
)

// ErrBadFileName rejects names carrying traversal patterns or no usable
// characters.
var ErrBadFileName = errors.New("invalid file name")

// SanitizeFileName normalizes an uploaded file name before it is written into
// the resume record. Traversal patterns are rejected outright; path separators
// and control characters collapse to underscores.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrBadFileName
	}
	mapped := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r < 0x20 {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if strings.Trim(mapped, "_ ") == "" {
		return "", ErrBadFileName
	}
	return mapped, nil
}
