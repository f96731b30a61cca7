package decision

import (
	"cc-permit/internal/domain"
	"cc-permit/internal/matchengine"
	"cc-permit/internal/protocol"
	"cc-permit/internal/rule"
)

// evaluateFileTool implements spec 4.6's evaluate_file_tool: resolve the
// operation and candidate paths from the ToolUse, normalize each path,
// look it up against the files config, aggregate, apply the mode
// modifier, and assemble the reason. Returns nil only when the config
// has no files section.
func evaluateFileTool(use protocol.ToolUse, cwd string, mode protocol.PermissionMode, cfg *rule.Config) *protocol.HookOutput {
	if cfg.Files == nil {
		return nil
	}

	op, ok := protocol.FileOperationOf(use)
	if !ok {
		return nil
	}
	paths, _ := protocol.FilePathsOf(use, cwd)
	if len(paths) == 0 {
		out := protocol.Ask(appName + ": no file path provided for this tool")
		return &out
	}

	perPath := make([]*protocol.Decision, len(paths))
	for i, raw := range paths {
		normalized, err := domain.Normalize(raw, cwd)
		if err != nil {
			d := protocol.DecisionAsk
			perPath[i] = &d
			continue
		}
		perPath[i] = matchengine.LookupFiles(cfg.Files, normalized, op, cwd)
	}

	preModifier := aggregate(perPath)
	if preModifier == nil {
		a := protocol.DecisionAsk
		preModifier = &a
	}
	final := applyModeModifier(*preModifier, mode)

	reason := buildFileReason(final, *preModifier, paths, perPath, op)
	return &protocol.HookOutput{
		HookSpecificOutput: protocol.PreToolUseOutput{
			HookEventName:            "PreToolUse",
			PermissionDecision:       final,
			PermissionDecisionReason: reason,
		},
	}
}
