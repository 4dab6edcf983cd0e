package store

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for backend failure classification, following the
// same errors.Is/errors.As convention as the rest of the engine.
var (
	ErrNotFound = errors.New("not found")
	ErrBackend  = errors.New("backend error")
)

// classify maps a backend-specific error into one of the
// sentinels above by inspecting its message, the same pattern-table
// approach used elsewhere in the storage layer this package descends
// from.
var notFoundPatterns = []string{
	"no such file", "does not exist", "NoSuchKey", "404", "NotFound",
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	lower := strings.ToLower(err.Error())
	for _, p := range notFoundPatterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return ErrNotFound
		}
	}
	return ErrBackend
}

// wrapError classifies err and joins it with the matching sentinel so
// callers can use errors.Is(err, store.ErrNotFound).
func wrapError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w: %w", op, path, classify(err), err)
}
