package config

import (
	"fmt"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// node is a thin wrapper around a kdl-go document node that isolates the
// rest of this package from the parser library's own types: callers work
// with node names, string-typed values, a has-children flag, and a
// 1-based source line number, nothing else.
type node struct {
	raw  *document.Node
	line int
}

// doc is a thin wrapper around a parsed KDL document.
type doc struct {
	nodes []node
}

// parseDocument parses raw KDL source and computes each top-level node's
// line number by counting newlines up to its byte offset, the same
// approach the format's own reference tooling uses when a library
// doesn't surface line numbers directly.
func parseDocument(source []byte) (*doc, error) {
	d, err := kdl.Parse(strings.NewReader(string(source)))
	if err != nil {
		return nil, err
	}
	return &doc{nodes: wrapNodes(d.Nodes, source)}, nil
}

func wrapNodes(raws []*document.Node, source []byte) []node {
	out := make([]node, 0, len(raws))
	for _, r := range raws {
		out = append(out, node{raw: r, line: lineOf(r, source)})
	}
	return out
}

func lineOf(n *document.Node, source []byte) int {
	offset := n.Span().Start
	if offset < 0 || offset > len(source) {
		return 0
	}
	return 1 + strings_Count(source[:offset], '\n')
}

func strings_Count(b []byte, c byte) int {
	count := 0
	for _, x := range b {
		if x == c {
			count++
		}
	}
	return count
}

// section returns every top-level node named name, in document order.
func (d *doc) section(name string) []node {
	var out []node
	for _, n := range d.nodes {
		if n.name() == name {
			out = append(out, n)
		}
	}
	return out
}

func (n node) name() string {
	return n.raw.Name.String()
}

// stringValues returns n's positional arguments as strings, in order.
// A non-string argument (number, bool, null) renders with an error so
// callers can fail closed rather than silently stringify it.
func (n node) stringValues() ([]string, error) {
	out := make([]string, 0, len(n.raw.Arguments))
	for _, v := range n.raw.Arguments {
		s, ok := v.Value.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string value, got %v", v.Value)
		}
		out = append(out, s)
	}
	return out, nil
}

func (n node) hasChildren() bool {
	return n.raw.Children != nil && len(n.raw.Children.Nodes) > 0
}

func (n node) children(source []byte) []node {
	if n.raw.Children == nil {
		return nil
	}
	return wrapNodes(n.raw.Children.Nodes, source)
}
