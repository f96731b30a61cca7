package config

import (
	"fmt"
	"strings"

	"cc-permit/internal/command"
	"cc-permit/internal/domain"
	"cc-permit/internal/rule"
)

// parseBashSection turns a toolSection into a BashConfig by parsing each
// tier's rule entries.
func parseBashSection(s *toolSection) (*rule.BashConfig, error) {
	if s == nil {
		return nil, nil
	}
	allow, err := parseBashRules(s.allow)
	if err != nil {
		return nil, err
	}
	deny, err := parseBashRules(s.deny)
	if err != nil {
		return nil, err
	}
	ask, err := parseBashRules(s.ask)
	if err != nil {
		return nil, err
	}
	return &rule.BashConfig{Allow: allow, Deny: deny, Ask: ask}, nil
}

// parseBashRules interprets one tier's rule entries into BashRules. An
// entry with no children block may carry several bare rule strings, each
// becoming its own rule; an entry with a children block always carries
// exactly one rule string (enforced by collectEntries), which the
// children then extend.
func parseBashRules(entries []ruleEntry) ([]rule.BashRule, error) {
	var out []rule.BashRule
	for _, e := range entries {
		if len(e.children) == 0 {
			for _, v := range e.values {
				r, err := parseBashRuleString(v, e.line)
				if err != nil {
					return nil, err
				}
				out = append(out, r)
			}
			continue
		}

		r, err := parseBashRuleString(e.values[0], e.line)
		if err != nil {
			return nil, err
		}
		if err := applyBashChildren(&r, e.children); err != nil {
			return nil, err
		}
		normalizeSubcommandChains(&r.Conditions)
		out = append(out, r)
	}
	return out, nil
}

// parseBashRuleString interprets one rule string: a bare program name
// with no whitespace produces an unconditional rule; otherwise it is
// parsed as a shell fragment, which must yield exactly one segment.
// Flags found in that segment become required_flags; non-flag args
// become the inline subcommand prefix.
func parseBashRuleString(raw string, line int) (rule.BashRule, error) {
	if !strings.ContainsAny(raw, " \t") {
		return rule.BashRule{Program: domain.NewProgramName(raw)}, nil
	}

	segs, err := command.Parse(raw)
	if err != nil {
		return rule.BashRule{}, fmt.Errorf("line %d: invalid rule %q: %w", line, raw, err)
	}
	if len(segs) != 1 {
		return rule.BashRule{}, fmt.Errorf("line %d: rule %q must describe exactly one command, found %d", line, raw, len(segs))
	}
	seg := segs[0]

	requiredFlags := make(map[domain.Flag]struct{})
	var subcommand []string
	for _, a := range seg.Args {
		if a != "-" && len(a) > 1 && a[0] == '-' {
			requiredFlags[domain.NewFlag(a)] = struct{}{}
			continue
		}
		subcommand = append(subcommand, a)
	}

	return rule.BashRule{
		Program: seg.Program,
		Conditions: rule.RuleConditions{
			RequiredFlags: requiredFlags,
			Subcommand:    subcommand,
		},
	}, nil
}

// applyBashChildren extends r's conditions according to a rule's
// children block. Any child node name other than the five recognized
// ones is treated as a named positional matcher (free-form
// documentation name).
func applyBashChildren(r *rule.BashRule, children []node) error {
	for _, c := range children {
		values, err := c.stringValues()
		if err != nil {
			return fmt.Errorf("line %d: %w", c.line, err)
		}
		switch c.name() {
		case "required-flags":
			if r.Conditions.RequiredFlags == nil {
				r.Conditions.RequiredFlags = make(map[domain.Flag]struct{})
			}
			for _, v := range values {
				r.Conditions.RequiredFlags[domain.NewFlag(v)] = struct{}{}
			}
		case "optional-flags":
			if r.Conditions.OptionalFlags == nil {
				r.Conditions.OptionalFlags = make(map[domain.Flag]struct{})
			}
			for _, v := range values {
				r.Conditions.OptionalFlags[domain.NewFlag(v)] = struct{}{}
			}
		case "positionals":
			for _, v := range values {
				p, err := rule.CompileGlob(v)
				if err != nil {
					return fmt.Errorf("line %d: invalid glob %q: %w", c.line, v, err)
				}
				r.Conditions.Positionals = append(r.Conditions.Positionals, p)
			}
		case "required-arguments":
			for _, v := range values {
				ap, err := parseArgumentPattern(v, c.line)
				if err != nil {
					return err
				}
				r.Conditions.RequiredArguments = append(r.Conditions.RequiredArguments, ap)
			}
		case "subcommands":
			for _, v := range values {
				r.Conditions.Subcommands = append(r.Conditions.Subcommands, strings.Fields(v))
			}
		default:
			for _, v := range values {
				p, err := rule.CompileGlob(v)
				if err != nil {
					return fmt.Errorf("line %d: invalid glob %q: %w", c.line, v, err)
				}
				r.Conditions.Positionals = append(r.Conditions.Positionals, p)
			}
		}
	}
	return nil
}

// parseArgumentPattern splits "flag pattern" on its first space.
func parseArgumentPattern(raw string, line int) (rule.ArgumentPattern, error) {
	idx := strings.IndexByte(raw, ' ')
	if idx < 0 {
		return rule.ArgumentPattern{}, fmt.Errorf("line %d: invalid required-arguments entry %q: expected \"flag pattern\"", line, raw)
	}
	flag, pattern := raw[:idx], raw[idx+1:]
	p, err := rule.CompileGlob(pattern)
	if err != nil {
		return rule.ArgumentPattern{}, fmt.Errorf("line %d: invalid glob %q: %w", line, pattern, err)
	}
	return rule.ArgumentPattern{Flag: flag, Value: p}, nil
}

// normalizeSubcommandChains applies spec 4.3's subcommand normalization:
// if both an inline subcommand prefix and children subcommand chains are
// set, the prefix is prepended to every chain and the inline field is
// cleared.
func normalizeSubcommandChains(c *rule.RuleConditions) {
	if len(c.Subcommand) == 0 || len(c.Subcommands) == 0 {
		return
	}
	for i, chain := range c.Subcommands {
		merged := make([]string, 0, len(c.Subcommand)+len(chain))
		merged = append(merged, c.Subcommand...)
		merged = append(merged, chain...)
		c.Subcommands[i] = merged
	}
	c.Subcommand = nil
}
