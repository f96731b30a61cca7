// Package matchengine implements the bash-rule and file-rule matching
// algorithms: given a parsed command segment or a normalized path, and a
// tier of configured rules, decide whether any rule matches.
package matchengine

import (
	"cc-permit/internal/domain"
	"cc-permit/internal/rule"
)

// classifyArgs splits a segment's arguments into the set of flags
// present and the ordered list of positional (non-flag) arguments.
// A token of exactly "-" is always positional. "--" ends option
// parsing: it is itself excluded from both sets, and everything after
// it is positional regardless of leading dashes.
func classifyArgs(args []string) (flags map[domain.Flag]struct{}, positionals []string) {
	flags = make(map[domain.Flag]struct{})
	endOfOptions := false
	for _, a := range args {
		if endOfOptions {
			positionals = append(positionals, a)
			continue
		}
		if a == "--" {
			endOfOptions = true
			continue
		}
		if a != "-" && len(a) > 1 && a[0] == '-' {
			flags[domain.NewFlag(a)] = struct{}{}
			continue
		}
		positionals = append(positionals, a)
	}
	return flags, positionals
}

// findArgumentValue reports whether flag appears in args bound to a
// value matching pattern, honoring both "--flag value" and
// "--flag=value" forms. "--" is a hard stop: scanning never looks past
// it. A non-matching occurrence of flag (missing value, value looks
// like another flag, or value doesn't match pattern) doesn't end the
// search: scanning continues for a later occurrence that does match.
func findArgumentValue(args []string, flag string, pattern rule.PositionalPattern) bool {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return false
		}
		if a == flag {
			if i+1 >= len(args) {
				continue
			}
			value := args[i+1]
			if value != "-" && len(value) > 0 && value[0] == '-' {
				continue
			}
			if ok, _ := pattern.Match(value); ok {
				return true
			}
			continue
		}
		if eq := splitEquals(a, flag); eq != "" || (a == flag+"=") {
			if ok, _ := pattern.Match(eq); ok {
				return true
			}
		}
	}
	return false
}

func splitEquals(arg, flag string) string {
	prefix := flag + "="
	if len(arg) > len(prefix) && arg[:len(prefix)] == prefix {
		return arg[len(prefix):]
	}
	return ""
}

// MatchesBash reports whether a configured bash rule matches a command
// segment. All six condition dimensions must hold; each is vacuously
// true when the corresponding condition field is empty.
func MatchesBash(r rule.BashRule, program domain.ProgramName, args []string) bool {
	if r.Program != program {
		return false
	}
	c := r.Conditions

	flags, positionals := classifyArgs(args)

	for f := range c.RequiredFlags {
		if _, ok := flags[f]; !ok {
			return false
		}
	}

	if len(c.OptionalFlags) > 0 {
		matched := false
		for f := range c.OptionalFlags {
			if _, ok := flags[f]; ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if !subcommandMatches(c.Subcommand, positionals) {
		return false
	}

	if !positionalsMatch(c.Positionals, positionals) {
		return false
	}

	for _, ap := range c.RequiredArguments {
		if !findArgumentValue(args, ap.Flag, ap.Value) {
			return false
		}
	}

	if !subcommandsMatch(c.Subcommands, positionals) {
		return false
	}

	return true
}

// subcommandMatches checks that chain is an ordered, contiguous prefix
// of positionals (an empty chain is vacuously true).
func subcommandMatches(chain, positionals []string) bool {
	if len(chain) == 0 {
		return true
	}
	if len(chain) > len(positionals) {
		return false
	}
	for i, word := range chain {
		if positionals[i] != word {
			return false
		}
	}
	return true
}

// subcommandsMatch checks that at least one chain in the OR-list is an
// ordered prefix of positionals (an empty list is vacuously true).
func subcommandsMatch(chains [][]string, positionals []string) bool {
	if len(chains) == 0 {
		return true
	}
	for _, chain := range chains {
		if subcommandMatches(chain, positionals) {
			return true
		}
	}
	return false
}

// positionalsMatch checks that every configured glob pattern matches at
// least one positional argument (AND across patterns, any order, any
// positional may satisfy more than one pattern).
func positionalsMatch(patterns []rule.PositionalPattern, positionals []string) bool {
	for _, p := range patterns {
		found := false
		for _, pos := range positionals {
			if ok, _ := p.Match(pos); ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
