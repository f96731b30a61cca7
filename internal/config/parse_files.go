package config

import (
	"fmt"

	"cc-permit/internal/pathmatch"
	"cc-permit/internal/protocol"
	"cc-permit/internal/rule"
)

var fileOperationWords = map[string]protocol.FileOperation{
	"read":  protocol.OpRead,
	"write": protocol.OpWrite,
	"edit":  protocol.OpEdit,
	"glob":  protocol.OpGlob,
	"grep":  protocol.OpGrep,
}

// parseFilesSection parses the files top-level section, handling both
// surface syntaxes: a flat tier node ("deny <pattern> <ops...>") and a
// path-first block (node name is the pattern, children are tier nodes
// listing operations).
func parseFilesSection(d *doc, source []byte) (*rule.FilesConfig, error) {
	children, ok := sectionChildren(d, "files", source)
	if !ok {
		return nil, nil
	}

	cfg := &rule.FilesConfig{}
	for _, n := range children {
		switch n.name() {
		case "allow", "deny", "ask":
			if err := parseFlatRule(n, n.name(), cfg); err != nil {
				return nil, err
			}
		default:
			if err := parsePathBlock(n, source, cfg); err != nil {
				return nil, err
			}
		}
	}
	return cfg, nil
}

// parseFlatRule interprets "deny \"~/.ssh/**\" \"read\" \"write\"": the
// first value is the path pattern, the rest are operations.
func parseFlatRule(n node, tier string, cfg *rule.FilesConfig) error {
	values, err := n.stringValues()
	if err != nil {
		return fmt.Errorf("line %d: %w", n.line, err)
	}
	if len(values) < 2 {
		return fmt.Errorf("line %d: %q rule needs a path pattern and at least one operation", n.line, tier)
	}
	ops, err := parseOperations(values[1:], n.line)
	if err != nil {
		return err
	}
	return pushRule(cfg, tier, values[0], ops, n.line)
}

// parsePathBlock interprets "\"<cwd>/**\" { allow \"read\"; deny \"write\" }":
// the node name is the path pattern, and each child names a tier with
// its operations.
func parsePathBlock(n node, source []byte, cfg *rule.FilesConfig) error {
	if !n.hasChildren() {
		return fmt.Errorf("line %d: path pattern %q has no tier block", n.line, n.name())
	}
	pattern := n.name()
	for _, c := range n.children(source) {
		tier := c.name()
		if tier != "allow" && tier != "deny" && tier != "ask" {
			return fmt.Errorf("line %d: unexpected child %q in path block", c.line, tier)
		}
		values, err := c.stringValues()
		if err != nil {
			return fmt.Errorf("line %d: %w", c.line, err)
		}
		if len(values) == 0 {
			return fmt.Errorf("line %d: %q tier in path block needs at least one operation", c.line, tier)
		}
		ops, err := parseOperations(values, c.line)
		if err != nil {
			return err
		}
		if err := pushRule(cfg, tier, pattern, ops, c.line); err != nil {
			return err
		}
	}
	return nil
}

func parseOperations(words []string, line int) (map[protocol.FileOperation]struct{}, error) {
	ops := make(map[protocol.FileOperation]struct{}, len(words))
	for _, w := range words {
		op, ok := fileOperationWords[w]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown operation %q", line, w)
		}
		ops[op] = struct{}{}
	}
	return ops, nil
}

// pushRule expands the pattern's "~"/"<home>" at load time (storing any
// error for fail-closed use at lookup time) and appends the rule to the
// named tier.
func pushRule(cfg *rule.FilesConfig, tier, pattern string, ops map[protocol.FileOperation]struct{}, line int) error {
	expanded, expandErr := pathmatch.ExpandHome(pattern)
	r := rule.FileRule{
		RawPattern:          pattern,
		HomeExpandedPattern: expanded,
		HomeExpansionErr:    expandErr,
		Operations:          ops,
		Line:                line,
	}
	switch tier {
	case "allow":
		cfg.Allow = append(cfg.Allow, r)
	case "deny":
		cfg.Deny = append(cfg.Deny, r)
	case "ask":
		cfg.Ask = append(cfg.Ask, r)
	}
	return nil
}
