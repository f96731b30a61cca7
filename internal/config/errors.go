package config

import "errors"

// Sentinel errors for config loading. Use errors.Is to check for these;
// every returned error wraps one of them with %w so the underlying
// detail (path, line number, parser message) is preserved.
var (
	// ErrNotFound means no file exists at the given path.
	ErrNotFound = errors.New("config file not found")
	// ErrReadError means the file exists but could not be read.
	ErrReadError = errors.New("failed to read config file")
	// ErrParseError means the file was read but is not valid KDL, or
	// fails this package's structural validation.
	ErrParseError = errors.New("config parse error")
)
