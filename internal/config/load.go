package config

import (
	"errors"
	"fmt"
	"os"

	"cc-permit/internal/rule"
)

// Load reads and parses a KDL config document from path, producing a
// Config. Any failure is wrapped in one of ErrNotFound, ErrReadError, or
// ErrParseError.
func Load(path string) (*rule.Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", path, ErrReadError)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrReadError)
	}

	return Parse(source)
}

// Parse parses raw KDL source into a Config, independent of any file on
// disk; useful for tests and for loading config embedded elsewhere.
func Parse(source []byte) (*rule.Config, error) {
	d, err := parseDocument(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParseError, err)
	}

	bashSection, err := parseSection(d, "bash", source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParseError, err)
	}
	bashCfg, err := parseBashSection(bashSection)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParseError, err)
	}

	filesCfg, err := parseFilesSection(d, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParseError, err)
	}

	return &rule.Config{Bash: bashCfg, Files: filesCfg}, nil
}
