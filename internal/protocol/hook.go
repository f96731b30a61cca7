package protocol

import "encoding/json"

// HookInput is the JSON payload Claude Code sends on stdin for a
// PreToolUse hook invocation. Unknown fields are ignored.
type HookInput struct {
	SessionID      string          `json:"session_id"`
	TranscriptPath string          `json:"transcript_path"`
	Cwd            string          `json:"cwd"`
	PermissionMode PermissionMode  `json:"permission_mode"`
	HookEventName  string          `json:"hook_event_name"`
	ToolName       string          `json:"tool_name"`
	ToolInput      json.RawMessage `json:"tool_input"`
	ToolUseID      string          `json:"tool_use_id"`
}

// PreToolUseOutput is the hook-specific payload nested inside HookOutput.
type PreToolUseOutput struct {
	HookEventName          string   `json:"hookEventName"`
	PermissionDecision     Decision `json:"permissionDecision"`
	PermissionDecisionReason string `json:"permissionDecisionReason"`
}

// HookOutput is the JSON cc-permit writes to stdout for a PreToolUse
// hook invocation that has an opinion. When the engine has no opinion,
// the CLI writes the literal "{}" instead of a HookOutput value.
type HookOutput struct {
	HookSpecificOutput PreToolUseOutput `json:"hookSpecificOutput"`
}

func withDecision(decision Decision, reason string) HookOutput {
	return HookOutput{
		HookSpecificOutput: PreToolUseOutput{
			HookEventName:            "PreToolUse",
			PermissionDecision:       decision,
			PermissionDecisionReason: reason,
		},
	}
}

// Allow builds a HookOutput that allows the tool use.
func Allow(reason string) HookOutput { return withDecision(DecisionAllow, reason) }

// Ask builds a HookOutput that asks the user to confirm the tool use.
func Ask(reason string) HookOutput { return withDecision(DecisionAsk, reason) }

// Deny builds a HookOutput that denies the tool use.
func Deny(reason string) HookOutput { return withDecision(DecisionDeny, reason) }
