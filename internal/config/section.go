package config

import "fmt"

// ruleEntry is one KDL-agnostic rule entry: a tier node's string values
// together with its optional children block and source line, ready for
// the bash/files-specific parsers to interpret.
type ruleEntry struct {
	values   []string
	children []node
	line     int
}

// toolSection is the intermediate, KDL-agnostic representation of one
// top-level section (bash or files): its allow/deny/ask tier entries,
// before either section-specific parser interprets them into rules.
type toolSection struct {
	allow []ruleEntry
	deny  []ruleEntry
	ask   []ruleEntry
}

// sectionChildren locates the single top-level node named sectionName
// and returns its children. ok is false when the section is absent.
func sectionChildren(d *doc, sectionName string, source []byte) (children []node, ok bool) {
	nodes := d.section(sectionName)
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[0].children(source), true
}

// parseSection locates the single top-level node named sectionName and
// collects its allow/deny/ask tier entries. A missing section returns
// (nil, nil): the caller treats that as "no opinion" for that tool
// family, not an error.
func parseSection(d *doc, sectionName string, source []byte) (*toolSection, error) {
	children, ok := sectionChildren(d, sectionName, source)
	if !ok {
		return nil, nil
	}
	allow, err := collectEntries(children, "allow", source)
	if err != nil {
		return nil, err
	}
	deny, err := collectEntries(children, "deny", source)
	if err != nil {
		return nil, err
	}
	ask, err := collectEntries(children, "ask", source)
	if err != nil {
		return nil, err
	}
	return &toolSection{allow: allow, deny: deny, ask: ask}, nil
}

// collectEntries gathers every child node named tier into a ruleEntry.
// A node with a children block must carry exactly one string value: the
// single rule string the children block's conditions apply to.
func collectEntries(children []node, tier string, source []byte) ([]ruleEntry, error) {
	var out []ruleEntry
	for _, n := range children {
		if n.name() != tier {
			continue
		}
		values, err := n.stringValues()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.line, err)
		}
		if n.hasChildren() {
			if len(values) == 0 {
				return nil, fmt.Errorf("line %d: %q block with children must have exactly one entry, has none", n.line, tier)
			}
			if len(values) > 1 {
				return nil, fmt.Errorf("line %d: %q block with children must have exactly one entry, has %d", n.line, tier, len(values))
			}
		}
		out = append(out, ruleEntry{values: values, children: n.children(source), line: n.line})
	}
	return out, nil
}
