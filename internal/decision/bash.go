package decision

import (
	"strings"

	"cc-permit/internal/command"
	"cc-permit/internal/matchengine"
	"cc-permit/internal/protocol"
	"cc-permit/internal/rule"
)

// evaluateBash implements spec 4.6's evaluate_bash: extract the command
// text, parse it into segments, look each segment up against the bash
// config, aggregate, apply the mode modifier, and assemble the reason.
// Returns nil (no opinion) only when the config has no bash section at
// all; every other failure mode resolves to an explicit Ask.
func evaluateBash(cmdText *string, mode protocol.PermissionMode, cfg *rule.Config) *protocol.HookOutput {
	if cmdText == nil {
		out := protocol.Ask(appName + ": Bash tool without command field")
		return &out
	}
	trimmed := strings.TrimSpace(*cmdText)
	if trimmed == "" {
		out := protocol.Ask(appName + ": Empty bash command")
		return &out
	}

	segs, err := command.Parse(*cmdText)
	if err != nil {
		out := protocol.Ask(appName + ": Failed to parse command: " + err.Error())
		return &out
	}
	if len(segs) == 0 {
		out := protocol.Ask(appName + ": No programs extracted from command")
		return &out
	}

	if cfg.Bash == nil {
		return nil
	}

	programs := make([]string, len(segs))
	perProgram := make([]*protocol.Decision, len(segs))
	for i, seg := range segs {
		programs[i] = string(seg.Program)
		perProgram[i] = matchengine.LookupBash(cfg.Bash, seg)
	}

	preModifier := aggregate(perProgram)
	if preModifier == nil {
		// aggregate returns nil when no segment matched any rule; that
		// case is treated as Ask.
		a := protocol.DecisionAsk
		preModifier = &a
	}
	final := applyModeModifier(*preModifier, mode)

	reason := buildReason(final, *preModifier, programs, perProgram)
	out := protocol.HookOutput{
		HookSpecificOutput: protocol.PreToolUseOutput{
			HookEventName:            "PreToolUse",
			PermissionDecision:       final,
			PermissionDecisionReason: reason,
		},
	}
	return &out
}
