package matchengine

import (
	"testing"

	"cc-permit/internal/domain"
	"cc-permit/internal/protocol"
	"cc-permit/internal/rule"
)

func fileRule(pattern string, ops ...protocol.FileOperation) rule.FileRule {
	set := make(map[protocol.FileOperation]struct{}, len(ops))
	for _, op := range ops {
		set[op] = struct{}{}
	}
	return rule.FileRule{RawPattern: pattern, HomeExpandedPattern: pattern, Operations: set}
}

func TestLookupFilesDenyWinsOverAllow(t *testing.T) {
	cfg := &rule.FilesConfig{
		Allow: []rule.FileRule{fileRule("<cwd>/**", protocol.OpRead, protocol.OpWrite)},
		Deny:  []rule.FileRule{fileRule("/home/alice/.ssh/**", protocol.OpRead, protocol.OpWrite)},
	}

	d := LookupFiles(cfg, domain.NormalizedPath("/home/alice/.ssh/id_rsa"), protocol.OpRead, "/home/alice/project")
	if d == nil || *d != protocol.DecisionDeny {
		t.Fatalf("expected deny for ssh key, got %v", d)
	}

	d2 := LookupFiles(cfg, domain.NormalizedPath("/home/alice/project/main.go"), protocol.OpRead, "/home/alice/project")
	if d2 == nil || *d2 != protocol.DecisionAllow {
		t.Fatalf("expected allow for project file, got %v", d2)
	}
}

func TestLookupFilesNoMatchReturnsNil(t *testing.T) {
	cfg := &rule.FilesConfig{Allow: []rule.FileRule{fileRule("<cwd>/**", protocol.OpRead)}}
	d := LookupFiles(cfg, domain.NormalizedPath("/elsewhere/file"), protocol.OpRead, "/home/alice/project")
	if d != nil {
		t.Fatalf("expected no opinion, got %v", *d)
	}
}

func TestLookupFilesWrongOperationReturnsNil(t *testing.T) {
	cfg := &rule.FilesConfig{Allow: []rule.FileRule{fileRule("<cwd>/**", protocol.OpRead)}}
	d := LookupFiles(cfg, domain.NormalizedPath("/home/alice/project/x"), protocol.OpWrite, "/home/alice/project")
	if d != nil {
		t.Fatalf("expected no opinion for an uncovered operation, got %v", *d)
	}
}

func TestLookupFilesExpansionErrorForcesAsk(t *testing.T) {
	broken := fileRule("~/vault/**", protocol.OpRead)
	broken.HomeExpansionErr = &domain.PathError{Raw: "~/vault/**"}
	cfg := &rule.FilesConfig{
		Deny:  []rule.FileRule{broken},
		Allow: []rule.FileRule{fileRule("<cwd>/**", protocol.OpRead)},
	}

	d := LookupFiles(cfg, domain.NormalizedPath("/home/alice/project/main.go"), protocol.OpRead, "/home/alice/project")
	if d == nil || *d != protocol.DecisionAsk {
		t.Fatalf("expected fail-closed Ask when any rule for this operation has an expansion error, got %v", d)
	}

	// An unrelated operation with no expansion error on any of its rules
	// is unaffected.
	d2 := LookupFiles(cfg, domain.NormalizedPath("/home/alice/project/main.go"), protocol.OpWrite, "/home/alice/project")
	if d2 != nil {
		t.Fatalf("expected no opinion for an operation with no broken rules, got %v", *d2)
	}
}
