package protocol

import "encoding/json"

// ToolUse is the tagged variant a tool invocation's name and input
// decode into. It deliberately has no exported fields of its own: match
// on the concrete type via a type switch, the idiomatic stand-in for the
// original's enum match.
type ToolUse interface {
	toolUse()
}

// BashUse is a Bash tool invocation. Command is nil if the tool input
// had no usable "command" field.
type BashUse struct {
	Command *string
}

func (BashUse) toolUse() {}

// ReadUse, WriteUse, EditUse are the file-editing tool invocations.
// FilePath is nil if the tool input had no usable "file_path" field.
type (
	ReadUse struct{ FilePath *string }
	WriteUse struct{ FilePath *string }
	EditUse struct{ FilePath *string }
)

func (ReadUse) toolUse()  {}
func (WriteUse) toolUse() {}
func (EditUse) toolUse()  {}

// GlobUse, GrepUse are the search tool invocations. Path is nil if the
// tool input had no usable "path" field (the caller should default to
// the invocation's cwd).
type (
	GlobUse struct{ Path *string }
	GrepUse struct{ Path *string }
)

func (GlobUse) toolUse() {}
func (GrepUse) toolUse() {}

// UnknownUse covers any tool this engine has no special knowledge of,
// including MCP tools.
type UnknownUse struct{ ToolName string }

func (UnknownUse) toolUse() {}

// ParseToolUse is the single point of JSON-field knowledge for tool
// inputs: everywhere else in the engine works with the typed ToolUse
// variants instead of raw JSON.
func ParseToolUse(toolName string, toolInput json.RawMessage) ToolUse {
	var raw map[string]any
	_ = json.Unmarshal(toolInput, &raw)

	switch toolName {
	case "Bash":
		return BashUse{Command: extractString(raw, "command")}
	case "Read":
		return ReadUse{FilePath: extractString(raw, "file_path")}
	case "Write":
		return WriteUse{FilePath: extractString(raw, "file_path")}
	case "Edit":
		return EditUse{FilePath: extractString(raw, "file_path")}
	case "Glob":
		return GlobUse{Path: extractString(raw, "path")}
	case "Grep":
		return GrepUse{Path: extractString(raw, "path")}
	default:
		return UnknownUse{ToolName: toolName}
	}
}

// extractString reads a string field, folding a missing field, a
// non-string value, and an empty string all to nil.
func extractString(raw map[string]any, field string) *string {
	v, ok := raw[field]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// FileOperationOf returns the FileOperation a file-tool variant
// corresponds to, or ok=false for Bash/Unknown.
func FileOperationOf(u ToolUse) (FileOperation, bool) {
	switch u.(type) {
	case ReadUse:
		return OpRead, true
	case WriteUse:
		return OpWrite, true
	case EditUse:
		return OpEdit, true
	case GlobUse:
		return OpGlob, true
	case GrepUse:
		return OpGrep, true
	default:
		return "", false
	}
}

// FilePathsOf returns the candidate paths to evaluate for a file-tool
// variant, or ok=false for Bash/Unknown (which have no file paths at
// all). For Read/Write/Edit, a missing path yields an empty (not nil)
// slice so the caller fails closed instead of skipping evaluation. For
// Glob/Grep, a missing path defaults to cwd.
func FilePathsOf(u ToolUse, cwd string) ([]string, bool) {
	switch t := u.(type) {
	case ReadUse:
		return pathOrEmpty(t.FilePath), true
	case WriteUse:
		return pathOrEmpty(t.FilePath), true
	case EditUse:
		return pathOrEmpty(t.FilePath), true
	case GlobUse:
		return []string{orDefault(t.Path, cwd)}, true
	case GrepUse:
		return []string{orDefault(t.Path, cwd)}, true
	default:
		return nil, false
	}
}

func pathOrEmpty(p *string) []string {
	if p == nil {
		return []string{}
	}
	return []string{*p}
}

func orDefault(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
