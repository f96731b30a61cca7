// Package rule defines the shape of a configured bash or file rule, as
// parsed from a config document. Matching against these shapes lives in
// internal/matchengine; this package only holds data and the handful of
// pure constructors (flag normalization, glob compilation) shared by the
// config loader and the matcher.
package rule

import (
	"cc-permit/internal/domain"
	"cc-permit/internal/pathmatch"
	"cc-permit/internal/protocol"
)

// PositionalPattern is a single compiled glob used to match a bash
// positional argument or a required-argument's value.
type PositionalPattern struct {
	pathmatch.Pattern
}

// CompileGlob compiles a positional-argument glob pattern, returning the
// compile error unchanged; callers add the offending pattern to it.
func CompileGlob(raw string) (PositionalPattern, error) {
	p, err := pathmatch.Compile(raw)
	if err != nil {
		return PositionalPattern{}, err
	}
	return PositionalPattern{Pattern: p}, nil
}

// ArgumentPattern pairs a required flag with a glob its value must match,
// e.g. "--branch main*".
type ArgumentPattern struct {
	Flag  string
	Value PositionalPattern
}

// RuleConditions is the full set of match conditions a bash rule may
// carry, beyond the bare program name. Every field's zero value means
// "no constraint on this dimension".
type RuleConditions struct {
	RequiredFlags     map[domain.Flag]struct{}
	OptionalFlags     map[domain.Flag]struct{}
	Subcommand        []string
	Positionals       []PositionalPattern
	RequiredArguments []ArgumentPattern
	Subcommands       [][]string
}

// IsUnconditional reports whether every condition dimension is empty,
// i.e. this rule matches on program name alone.
func (c RuleConditions) IsUnconditional() bool {
	return len(c.RequiredFlags) == 0 &&
		len(c.OptionalFlags) == 0 &&
		len(c.Subcommand) == 0 &&
		len(c.Positionals) == 0 &&
		len(c.RequiredArguments) == 0 &&
		len(c.Subcommands) == 0
}

// BashRule is one configured rule in the bash section of a config
// document, for one tier (allow/deny/ask).
type BashRule struct {
	Program    domain.ProgramName
	Conditions RuleConditions
}

// FileRule is one configured rule in the files section of a config
// document. HomeExpandedPattern/HomeExpansionErr hold the result of
// expanding "~" and "<home>" at load time; HomeExpansionErr being non-nil
// means this rule's pattern could not be resolved and any lookup that
// reaches it for a matching operation must fail closed.
type FileRule struct {
	RawPattern          string
	HomeExpandedPattern string
	HomeExpansionErr    error
	Operations          map[protocol.FileOperation]struct{}
	Line                int
}

// NewFlagSet builds a set of normalized flags from raw tokens.
func NewFlagSet(raw ...string) map[domain.Flag]struct{} {
	set := make(map[domain.Flag]struct{}, len(raw))
	for _, r := range raw {
		set[domain.NewFlag(r)] = struct{}{}
	}
	return set
}
