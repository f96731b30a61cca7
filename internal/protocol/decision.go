// Package protocol holds the JSON-facing types of cc-permit: the hook
// input/output envelopes, the Decision/PermissionMode/FileOperation enums,
// and the tagged ToolUse variant parsed out of a tool invocation's input.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Decision is the outcome of evaluating one tool use: allow it, ask the
// user, or deny it outright.
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionAsk   Decision = "ask"
	DecisionDeny  Decision = "deny"
)

// severity ranks decisions from least to most restrictive. It is an
// explicit method rather than reliance on declaration order, so
// reordering the constants above can never silently change aggregation
// behavior.
func (d Decision) severity() int {
	switch d {
	case DecisionAllow:
		return 0
	case DecisionAsk:
		return 1
	case DecisionDeny:
		return 2
	default:
		return 1
	}
}

// MoreSevere reports whether d is strictly more restrictive than other.
func (d Decision) MoreSevere(other Decision) bool {
	return d.severity() > other.severity()
}

// FileOperation names one of the five tool operations a file rule can
// cover.
type FileOperation string

const (
	OpRead  FileOperation = "read"
	OpWrite FileOperation = "write"
	OpEdit  FileOperation = "edit"
	OpGlob  FileOperation = "glob"
	OpGrep  FileOperation = "grep"
)

// PermissionMode is the session-wide permission mode Claude Code reports
// alongside a tool-use hook invocation.
type PermissionMode string

const (
	ModeDefault           PermissionMode = "default"
	ModePlan              PermissionMode = "plan"
	ModeAcceptEdits       PermissionMode = "acceptEdits"
	ModeDontAsk           PermissionMode = "dontAsk"
	ModeBypassPermissions PermissionMode = "bypassPermissions"
)

// UnmarshalJSON rejects any permission_mode value outside the five
// modes Claude Code defines, the same closed-enum behavior a
// hand-rolled serde enum gets for free: an unrecognized mode fails
// decoding here rather than silently falling through a switch's
// default case downstream.
func (m *PermissionMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch PermissionMode(s) {
	case ModeDefault, ModePlan, ModeAcceptEdits, ModeDontAsk, ModeBypassPermissions:
		*m = PermissionMode(s)
		return nil
	default:
		return fmt.Errorf("unknown permission mode %q", s)
	}
}
