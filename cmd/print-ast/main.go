// Command print-ast is a debugging aid for internal/command's walker: it
// reads a shell command line from stdin and prints the Segment list
// Parse extracts from it, one program invocation per line, so a rule
// author can see exactly what the matching engine would see for a given
// line (wrapper unwrapping, split-string expansion, flag expansion, and
// all included).
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"cc-permit/internal/command"
)

func main() {
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	segs, err := command.Parse(string(b))
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	if len(segs) == 0 {
		fmt.Fprintln(w, "(no program invocations extracted)")
		return
	}
	for i, s := range segs {
		fmt.Fprintf(w, "%d: %s %s\n", i, s.Program, strings.Join(s.Args, " "))
	}
}
