package command

import "testing"

func segNames(segs []Segment) []string {
	names := make([]string, len(segs))
	for i, s := range segs {
		names[i] = string(s.Program)
	}
	return names
}

func TestParseSimple(t *testing.T) {
	segs, err := Parse("git commit -m hello")
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	if segs[0].Program != "git" {
		t.Errorf("program = %q, want git", segs[0].Program)
	}
	want := []string{"commit", "-m", "hello"}
	if len(segs[0].Args) != len(want) {
		t.Fatalf("args = %v, want %v", segs[0].Args, want)
	}
	for i, a := range want {
		if segs[0].Args[i] != a {
			t.Errorf("arg[%d] = %q, want %q", i, segs[0].Args[i], a)
		}
	}
}

func TestParsePipelineAndAndOr(t *testing.T) {
	segs, err := Parse("ls -la | grep foo && echo done || echo fail")
	if err != nil {
		t.Fatal(err)
	}
	got := segNames(segs)
	want := []string{"ls", "grep", "echo", "echo"}
	if len(got) != len(want) {
		t.Fatalf("programs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("program[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseSubshellAndBlock(t *testing.T) {
	segs, err := Parse("(cd /tmp && rm file); { echo hi; }")
	if err != nil {
		t.Fatal(err)
	}
	got := segNames(segs)
	want := []string{"cd", "rm", "echo"}
	if len(got) != len(want) {
		t.Fatalf("programs = %v, want %v", got, want)
	}
}

func TestParseArithmeticYieldsNoPrograms(t *testing.T) {
	segs, err := Parse("(( 1 + 2 ))")
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 0 {
		t.Fatalf("arithmetic command should yield no programs, got %v", segNames(segs))
	}
}

func TestParseDynamicProgramWordSkipsCommand(t *testing.T) {
	segs, err := Parse("$CMD --flag; echo after")
	if err != nil {
		t.Fatal(err)
	}
	got := segNames(segs)
	if len(got) != 1 || got[0] != "echo" {
		t.Fatalf("expected only the literal command to be extracted, got %v", got)
	}
}

func TestTransparentWrapperUnwrapsEnv(t *testing.T) {
	segs, err := Parse("env FOO=bar -u BAZ rm -rf /tmp/x")
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 1 || segs[0].Program != "rm" {
		t.Fatalf("expected env to unwrap to rm, got %v", segNames(segs))
	}
}

func TestFlagExpansion(t *testing.T) {
	segs, err := Parse("tar -xzf archive.tar.gz")
	if err != nil {
		t.Fatal(err)
	}
	args := segs[0].Args
	want := []string{"-x", "-z", "-f", "archive.tar.gz"}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestFlagExpansionStopsAtDoubleDash(t *testing.T) {
	segs, err := Parse("grep -- -abc file")
	if err != nil {
		t.Fatal(err)
	}
	args := segs[0].Args
	want := []string{"--", "-abc", "file"}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestParseEmptyInputYieldsNoSegments(t *testing.T) {
	segs, err := Parse("   ")
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 0 {
		t.Fatalf("expected no segments, got %v", segNames(segs))
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("echo 'unterminated")
	if err == nil {
		t.Fatal("expected a parse error for unterminated quote")
	}
}

func TestParseFuncDeclBodyIsWalked(t *testing.T) {
	segs, err := Parse("f() { rm -rf /; }; f")
	if err != nil {
		t.Fatal(err)
	}
	got := segNames(segs)
	want := []string{"rm", "f"}
	if len(got) != len(want) {
		t.Fatalf("programs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("program[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseDeclareIsSurfacedAsSegment(t *testing.T) {
	segs, err := Parse(`declare -x FOO=bar`)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 1 || segs[0].Program != "declare" {
		t.Fatalf("expected a declare segment, got %v", segNames(segs))
	}
}

func TestParseLetIsSurfacedAsSegment(t *testing.T) {
	segs, err := Parse(`let "x = 1 + 2"`)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 1 || segs[0].Program != "let" {
		t.Fatalf("expected a let segment, got %v", segNames(segs))
	}
}

func TestFlagExpansionIgnoresNonLetterRunes(t *testing.T) {
	segs, err := Parse("sort -r1 file")
	if err != nil {
		t.Fatal(err)
	}
	args := segs[0].Args
	want := []string{"-r", "-1", "file"}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestParseNestedWrapperWithSplitString(t *testing.T) {
	segs, err := Parse(`command env -S "rm -rf /"`)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 1 || segs[0].Program != "rm" {
		t.Fatalf("expected nested command+env wrapper to unwrap to rm, got %v", segNames(segs))
	}
}
