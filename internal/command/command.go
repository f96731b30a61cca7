// Package command walks a parsed shell command line and extracts the
// sequence of program invocations it contains. It never evaluates shell
// variables, command substitutions, or arithmetic; words built from those
// constructs contribute no literal text and the command they belong to,
// if it is the program word, is skipped rather than guessed at.
package command

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"cc-permit/internal/domain"
)

// Segment is one program invocation extracted from a shell command line.
type Segment struct {
	Program domain.ProgramName
	Args    []string
}

// transparentWrappers are program names whose own invocation is
// uninteresting: the program actually being run is their first argument
// that is neither a flag (together with its value, for the flags listed
// in consumingOptions) nor a VAR=value assignment.
var transparentWrappers = map[string]struct{}{
	"command": {},
	"env":     {},
	"nohup":   {},
	"exec":    {},
	"builtin": {},
}

// consumingOptions names, per wrapper, the flags that take a separate
// value argument rather than being bare switches.
var consumingOptions = map[string]map[string]struct{}{
	"env": {
		"-u": {}, "--unset": {}, "-C": {}, "--chdir": {}, "-S": {}, "--split-string": {}, "-P": {},
	},
	"exec": {
		"-a": {},
	},
}

// Parse walks a shell command line and returns every program invocation
// it contains, in left-to-right order. A syntax error in the command
// itself is returned as an error. A word that cannot be read literally
// (because it contains a variable, substitution, or arithmetic
// expansion) is not reported as an error: as the program word it causes
// the command to be skipped, and as an argument it is left out of the
// segment's args, per the non-evaluation scope of this engine.
func Parse(line string) ([]Segment, error) {
	f, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(line), "")
	if err != nil {
		return nil, err
	}

	var segs []Segment
	for _, stmt := range f.Stmts {
		walkStmt(stmt, &segs)
	}
	return segs, nil
}

func walkStmt(stmt *syntax.Stmt, segs *[]Segment) {
	if stmt == nil || stmt.Cmd == nil {
		return
	}
	walkCmd(stmt.Cmd, segs)
}

func walkCmd(cmd syntax.Command, segs *[]Segment) {
	switch c := cmd.(type) {
	case *syntax.CallExpr:
		appendCallExpr(c, segs)

	case *syntax.BinaryCmd:
		walkStmt(c.X, segs)
		walkStmt(c.Y, segs)

	case *syntax.Subshell:
		for _, s := range c.Stmts {
			walkStmt(s, segs)
		}

	case *syntax.Block:
		for _, s := range c.Stmts {
			walkStmt(s, segs)
		}

	case *syntax.IfClause:
		for _, s := range c.Cond {
			walkStmt(s, segs)
		}
		for _, s := range c.Then {
			walkStmt(s, segs)
		}
		if c.Else != nil {
			walkCmd(c.Else, segs)
		}

	case *syntax.WhileClause:
		for _, s := range c.Cond {
			walkStmt(s, segs)
		}
		for _, s := range c.Do {
			walkStmt(s, segs)
		}

	case *syntax.ForClause:
		for _, s := range c.Do {
			walkStmt(s, segs)
		}

	case *syntax.CaseClause:
		for _, item := range c.Items {
			for _, s := range item.Stmts {
				walkStmt(s, segs)
			}
		}

	case *syntax.CoprocClause:
		if c.Stmt != nil {
			walkStmt(c.Stmt, segs)
		}

	case *syntax.TimeClause:
		if c.Stmt != nil {
			walkStmt(c.Stmt, segs)
		}

	case *syntax.FuncDecl:
		walkStmt(c.Body, segs)

	case *syntax.DeclClause:
		appendWords(wordsIn(c), segs)

	case *syntax.LetClause:
		appendWords(append([]string{"let"}, wordsIn(c)...), segs)

	case *syntax.ArithmCmd, *syntax.TestClause:
		// Arithmetic and "[[ ]]" constructs yield no programs by design.
	}
}

// wordsIn collects the literal text of every Lit node under n, in
// document order, using the generic AST walker rather than naming
// DeclClause's or LetClause's field shape directly. For a DeclClause
// this naturally starts with the variant word itself ("declare",
// "export", "local", "readonly", "typeset", "nameref"), since that word
// is the clause's first Lit child.
func wordsIn(n syntax.Node) []string {
	var words []string
	syntax.Walk(n, func(node syntax.Node) bool {
		if lit, ok := node.(*syntax.Lit); ok {
			words = append(words, lit.Value)
		}
		return true
	})
	return words
}

// appendCallExpr extracts literal words from a simple command and
// appends every segment found by unwrapping it. A non-literal program
// word drops the command.
func appendCallExpr(c *syntax.CallExpr, segs *[]Segment) {
	words := make([]string, 0, len(c.Args))
	for i, w := range c.Args {
		lit, ok := literal(w)
		if !ok {
			if i == 0 {
				return
			}
			continue
		}
		words = append(words, lit)
	}
	if len(words) == 0 {
		return
	}
	*segs = append(*segs, unwrap(words)...)
}

// appendWords builds a single segment from an already-literal word list
// (the program name plus its args) and appends it, applying the same
// flag expansion a ordinary simple command gets. Used for clauses that
// never pass through appendCallExpr (DeclClause, LetClause).
func appendWords(words []string, segs *[]Segment) {
	if len(words) == 0 {
		return
	}
	*segs = append(*segs, Segment{
		Program: domain.NewProgramName(words[0]),
		Args:    expandFlags(words[1:]),
	})
}

// unwrap resolves a literal word list into the segment(s) it actually
// invokes, peeling away any chain of transparent wrapper invocations
// ("command", "env", "nohup", "exec", "builtin" - nested arbitrarily,
// e.g. "command env rm") and skipping each wrapper's own flags and
// leading VAR=value assignments along the way. "env"'s "-S"/
// "--split-string" (and its attached "-Scmd"/"--split-string=cmd"
// forms) is handled here rather than as a special case: its payload is
// itself a shell command, re-parsed with Parse, and any suffix tokens
// after the payload become args on the last extracted segment. A parse
// error in the payload, or a malformed "-S" with no value, yields no
// segments rather than guessing.
func unwrap(words []string) []Segment {
	for {
		if len(words) == 0 {
			return nil
		}
		name := string(domain.NewProgramName(words[0]))
		if _, ok := transparentWrappers[name]; !ok {
			return []Segment{{Program: domain.NewProgramName(words[0]), Args: expandFlags(words[1:])}}
		}
		consuming := consumingOptions[name]

		rest := words[1:]
		for len(rest) > 0 {
			if isAssignment(rest[0]) {
				rest = rest[1:]
				continue
			}
			if !strings.HasPrefix(rest[0], "-") {
				break
			}
			if payload, ok := attachedSplitStringValue(rest[0]); ok {
				return splitStringSegments(payload, rest[1:])
			}
			if (rest[0] == "-S" || rest[0] == "--split-string") && isConsuming(consuming, rest[0]) {
				if len(rest) < 2 {
					return nil
				}
				return splitStringSegments(rest[1], rest[2:])
			}
			if isConsuming(consuming, rest[0]) && len(rest) > 1 {
				rest = rest[2:]
			} else {
				rest = rest[1:]
			}
		}
		if len(rest) == 0 {
			return nil
		}
		words = rest
	}
}

func isConsuming(consuming map[string]struct{}, flag string) bool {
	_, ok := consuming[flag]
	return ok
}

func attachedSplitStringValue(tok string) (string, bool) {
	if strings.HasPrefix(tok, "--split-string=") {
		return strings.TrimPrefix(tok, "--split-string="), true
	}
	if strings.HasPrefix(tok, "-S") && len(tok) > 2 {
		return tok[2:], true
	}
	return "", false
}

func splitStringSegments(payload string, trailing []string) []Segment {
	payload = strings.Trim(payload, "\"'")
	inner, err := Parse(payload)
	if err != nil || len(inner) == 0 {
		return nil
	}
	if len(trailing) > 0 {
		inner[len(inner)-1].Args = append(inner[len(inner)-1].Args, expandFlags(trailing)...)
	}
	return inner
}

func isAssignment(word string) bool {
	eq := strings.IndexByte(word, '=')
	if eq <= 0 {
		return false
	}
	name := word[:eq]
	for i, r := range name {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

// expandFlags splits a combined short-option word like "-rf" into
// "-r", "-f", one rune at a time regardless of what the runes are (a
// token like "-r1" becomes "-r", "-1"). Long options ("--foo"), bare
// "-", a single short flag ("-v"), and words with an embedded "="
// (which carry a value, e.g. "-o=file") are left untouched.
func expandFlags(args []string) []string {
	out := make([]string, 0, len(args))
	stopped := false
	for _, a := range args {
		if stopped {
			out = append(out, a)
			continue
		}
		if a == "--" {
			stopped = true
			out = append(out, a)
			continue
		}
		if len(a) > 2 && a[0] == '-' && a[1] != '-' && !strings.Contains(a, "=") {
			for _, r := range a[1:] {
				out = append(out, "-"+string(r))
			}
			continue
		}
		out = append(out, a)
	}
	return out
}

// literal reads a word's plain text. It returns ok=false if the word
// contains any part whose value depends on evaluation (parameter
// expansion, command substitution, arithmetic, process substitution).
func literal(w *syntax.Word) (string, bool) {
	var b strings.Builder
	for _, part := range w.Parts {
		s, ok := literalPart(part)
		if !ok {
			return "", false
		}
		b.WriteString(s)
	}
	return b.String(), true
}

func literalPart(part syntax.WordPart) (string, bool) {
	switch p := part.(type) {
	case *syntax.Lit:
		return p.Value, true
	case *syntax.SglQuoted:
		return p.Value, true
	case *syntax.DblQuoted:
		var b strings.Builder
		for _, inner := range p.Parts {
			s, ok := literalPart(inner)
			if !ok {
				return "", false
			}
			b.WriteString(s)
		}
		return b.String(), true
	default:
		// ParamExp, CmdSubst, ArithmExp, ProcSubst, ExtGlob, BraceExp and
		// anything else: not a literal this engine will evaluate.
		return "", false
	}
}
