package config

import (
	"errors"
	"strings"
	"testing"

	"cc-permit/internal/domain"
	"cc-permit/internal/protocol"
)

func TestParseBashFlatRules(t *testing.T) {
	src := `
bash {
    allow "git"
    allow "npm install"
    deny "rm"
}
`
	cfg, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bash == nil {
		t.Fatal("expected a bash section")
	}
	if len(cfg.Bash.Allow) != 2 {
		t.Fatalf("allow rules = %d, want 2", len(cfg.Bash.Allow))
	}
	if cfg.Bash.Allow[0].Program != "git" {
		t.Errorf("first allow rule program = %q, want git", cfg.Bash.Allow[0].Program)
	}
	if cfg.Bash.Allow[1].Program != "npm" {
		t.Errorf("second allow rule program = %q, want npm", cfg.Bash.Allow[1].Program)
	}
	if len(cfg.Bash.Allow[1].Conditions.Subcommand) != 1 || cfg.Bash.Allow[1].Conditions.Subcommand[0] != "install" {
		t.Errorf("second allow rule subcommand = %v, want [install]", cfg.Bash.Allow[1].Conditions.Subcommand)
	}
	if len(cfg.Bash.Deny) != 1 || cfg.Bash.Deny[0].Program != "rm" {
		t.Fatalf("deny rules = %v", cfg.Bash.Deny)
	}
}

func TestParseBashRuleWithChildren(t *testing.T) {
	src := `
bash {
    deny "rm" {
        required-flags "-r" "-f"
        positionals "/"
    }
}
`
	cfg, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	r := cfg.Bash.Deny[0]
	if r.Program != "rm" {
		t.Fatalf("program = %q, want rm", r.Program)
	}
	if _, ok := r.Conditions.RequiredFlags[domain.NewFlag("-r")]; !ok {
		t.Error("expected -r in required flags")
	}
	if _, ok := r.Conditions.RequiredFlags[domain.NewFlag("-f")]; !ok {
		t.Error("expected -f in required flags")
	}
	if len(r.Conditions.Positionals) != 1 {
		t.Fatalf("positionals = %v, want 1 entry", r.Conditions.Positionals)
	}
}

func TestParseBashSubcommandNormalization(t *testing.T) {
	src := `
bash {
    allow "git remote" {
        subcommands "add origin" "remove origin"
    }
}
`
	cfg, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	r := cfg.Bash.Allow[0]
	if len(r.Conditions.Subcommand) != 0 {
		t.Errorf("inline subcommand should be cleared after normalization, got %v", r.Conditions.Subcommand)
	}
	want := [][]string{{"remote", "add", "origin"}, {"remote", "remove", "origin"}}
	if len(r.Conditions.Subcommands) != len(want) {
		t.Fatalf("subcommands = %v, want %v", r.Conditions.Subcommands, want)
	}
	for i := range want {
		got := r.Conditions.Subcommands[i]
		if len(got) != len(want[i]) {
			t.Fatalf("chain[%d] = %v, want %v", i, got, want[i])
		}
		for j := range want[i] {
			if got[j] != want[i][j] {
				t.Errorf("chain[%d][%d] = %q, want %q", i, j, got[j], want[i][j])
			}
		}
	}
}

func TestParseFilesFlatRule(t *testing.T) {
	src := `
files {
    allow "<cwd>/**" "read" "write"
    deny "~/.ssh/**" "read" "write"
}
`
	cfg, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Files == nil {
		t.Fatal("expected a files section")
	}
	if len(cfg.Files.Allow) != 1 {
		t.Fatalf("allow rules = %d, want 1", len(cfg.Files.Allow))
	}
	a := cfg.Files.Allow[0]
	if a.RawPattern != "<cwd>/**" {
		t.Errorf("raw pattern = %q", a.RawPattern)
	}
	if _, ok := a.Operations[protocol.OpRead]; !ok {
		t.Error("expected read operation")
	}
	if _, ok := a.Operations[protocol.OpWrite]; !ok {
		t.Error("expected write operation")
	}

	d := cfg.Files.Deny[0]
	if d.HomeExpansionErr != nil {
		t.Errorf("unexpected home expansion error: %v", d.HomeExpansionErr)
	}
}

func TestParseFilesPathBlock(t *testing.T) {
	src := `
files {
    "<cwd>/**" {
        allow "read" "write"
    }
    "~/.ssh/**" {
        deny "read" "write"
    }
}
`
	cfg, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Files.Allow) != 1 || cfg.Files.Allow[0].RawPattern != "<cwd>/**" {
		t.Fatalf("allow rules = %v", cfg.Files.Allow)
	}
	if len(cfg.Files.Deny) != 1 || cfg.Files.Deny[0].RawPattern != "~/.ssh/**" {
		t.Fatalf("deny rules = %v", cfg.Files.Deny)
	}
}

func TestParseFilesHomeExpansionDeferredError(t *testing.T) {
	t.Setenv("HOME", "")
	src := `
files {
    deny "~/.ssh/**" "read"
}
`
	cfg, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Files.Deny[0].HomeExpansionErr == nil {
		t.Fatal("expected a deferred home-expansion error with $HOME unset, not a parse failure")
	}
}

func TestParseUnknownOperationIsParseError(t *testing.T) {
	src := `
files {
    allow "<cwd>/**" "delete"
}
`
	_, err := Parse([]byte(src))
	if err == nil {
		t.Fatal("expected an error for an unknown operation word")
	}
	if !errors.Is(err, ErrParseError) {
		t.Errorf("expected ErrParseError, got %v", err)
	}
	if !strings.Contains(err.Error(), "delete") {
		t.Errorf("error %v should name the bad operation", err)
	}
}

func TestParseMissingSectionsYieldNilNotError(t *testing.T) {
	cfg, err := Parse([]byte(`// empty config`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bash != nil || cfg.Files != nil {
		t.Fatalf("expected both sections nil for an empty document, got %+v", cfg)
	}
}

func TestParseInvalidKDLIsParseError(t *testing.T) {
	_, err := Parse([]byte(`bash { allow "git" `))
	if err == nil {
		t.Fatal("expected a parse error for unterminated block")
	}
	if !errors.Is(err, ErrParseError) {
		t.Errorf("expected ErrParseError, got %v", err)
	}
}

func TestLoadMissingFileIsNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.kdl")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
