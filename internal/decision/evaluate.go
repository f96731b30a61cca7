package decision

import (
	"cc-permit/internal/protocol"
	"cc-permit/internal/rule"
)

// Evaluate is the top-level contract: given a hook input and a loaded
// config (nil meaning no config was found at all), decide what to do
// with the tool use. Returns nil when the engine has no opinion, in
// which case the caller should print "{}".
func Evaluate(input protocol.HookInput, cfg *rule.Config) *protocol.HookOutput {
	if cfg == nil {
		out := protocol.Ask(appName + ": no config loaded; configure one with --config or see the docs for the --config flag")
		return &out
	}

	use := protocol.ParseToolUse(input.ToolName, input.ToolInput)

	switch t := use.(type) {
	case protocol.BashUse:
		return evaluateBash(t.Command, input.PermissionMode, cfg)
	case protocol.ReadUse, protocol.WriteUse, protocol.EditUse, protocol.GlobUse, protocol.GrepUse:
		return evaluateFileTool(use, input.Cwd, input.PermissionMode, cfg)
	default:
		return nil
	}
}
