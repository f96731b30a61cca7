package domain

import (
	"fmt"
	"os"
	"strings"
)

// PathError reports why a raw path string could not be normalized.
type PathError struct {
	// Raw is the path string that failed to normalize.
	Raw string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("cannot expand %q: $HOME is not set", e.Raw)
}

// NormalizedPath is a logically-absolute path: tildes and "." / ".."
// components have been resolved against a given cwd without ever
// touching the filesystem. It carries no guarantee the path exists.
type NormalizedPath string

func (p NormalizedPath) String() string { return string(p) }

// Normalize turns a raw path string into a NormalizedPath relative to cwd.
// It never performs filesystem I/O: "normalized" means logically absolute
// and free of "." / ".." / duplicate or trailing slashes, nothing more.
//
// Steps: expand a leading "~" using $HOME, make the result absolute by
// prepending cwd if needed, then split on "/" and collapse "." and ".."
// components purely lexically.
func Normalize(raw, cwd string) (NormalizedPath, error) {
	expanded, err := expandTilde(raw)
	if err != nil {
		return "", err
	}

	abs := expanded
	if !strings.HasPrefix(abs, "/") {
		abs = joinPath(cwd, abs)
	}

	return NormalizedPath(collapse(abs)), nil
}

func expandTilde(raw string) (string, error) {
	if raw != "~" && !strings.HasPrefix(raw, "~/") {
		return raw, nil
	}
	home := os.Getenv("HOME")
	if home == "" {
		return "", &PathError{Raw: raw}
	}
	if raw == "~" {
		return home, nil
	}
	return joinPath(home, raw[2:]), nil
}

func joinPath(base, rest string) string {
	if rest == "" {
		return base
	}
	if strings.HasSuffix(base, "/") {
		return base + rest
	}
	return base + "/" + rest
}

// collapse performs a purely lexical split/pop/rejoin: skip empty and "."
// segments, pop the last kept segment on "..". The result is always
// absolute ("/a/b" or "/" when everything cancels out).
func collapse(abs string) string {
	segments := strings.Split(abs, "/")
	kept := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(kept) > 0 {
				kept = kept[:len(kept)-1]
			}
		default:
			kept = append(kept, seg)
		}
	}
	if len(kept) == 0 {
		return "/"
	}
	return "/" + strings.Join(kept, "/")
}
