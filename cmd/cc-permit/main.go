// Command cc-permit is the CLI entry point for the permission-decision
// engine: it reads one hook JSON object from stdin, evaluates it against
// a KDL config, and writes one JSON object to stdout. It always exits 0
// and never writes to stderr, so a misbehaving hook can never surface as
// a visible error to the user running Claude Code.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cc-permit/internal/config"
	"cc-permit/internal/decision"
	"cc-permit/internal/protocol"
	"cc-permit/internal/rule"
)

var toolNameTitle = cases.Title(language.English)

var debugLog *log.Logger

func main() {
	flag.Usage = usage
	if len(os.Args) < 2 || os.Args[1] != "hook" {
		usage()
		return
	}

	fs := flag.NewFlagSet("hook", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configFlag := fs.String("config", "", "path to a KDL config file")
	_ = fs.Parse(os.Args[2:])

	initDebugLog()
	runHook(*configFlag)
}

func usage() {
	fmt.Fprintln(os.Stdout, "usage: cc-permit hook [--config path]")
}

// runHook implements spec 6/7's CLI contract: discover and load a
// config, evaluate the hook input read from stdin, and write exactly
// one line of JSON to stdout. Every failure mode degrades to an Ask
// response instead of a non-zero exit or stderr output.
func runHook(configFlag string) {
	path, explicit := discoverConfig(configFlag)
	logDebug("config path: %q (explicit=%v)", path, explicit)

	var cfg *rule.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			logDebug("config load error: %v", err)
			writeOutput(protocol.Ask("Config error: " + err.Error()))
			return
		}
		cfg = loaded
	}

	output, err := evaluateStdin(cfg)
	if err != nil {
		logDebug("evaluate error: %v", err)
		writeOutput(protocol.Ask("Error: " + err.Error()))
		return
	}
	if output == nil {
		fmt.Println("{}")
		return
	}
	writeOutput(*output)
}

// evaluateStdin reads and decodes one HookInput from stdin and evaluates
// it. Returns (nil, nil) when the engine has no opinion.
func evaluateStdin(cfg *rule.Config) (*protocol.HookOutput, error) {
	var input protocol.HookInput
	if err := json.NewDecoder(os.Stdin).Decode(&input); err != nil {
		return nil, err
	}
	logDebug("tool use: %s (mode=%s)", toolNameTitle.String(input.ToolName), input.PermissionMode)
	return decision.Evaluate(input, cfg), nil
}

func writeOutput(out protocol.HookOutput) {
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(out)
}

// discoverConfig resolves the config path per spec 6: an explicit
// --config flag wins, then CLAUDE_PERMISSIONS_HOOK_CONFIG, then the
// default XDG-style path under $HOME. Returns ("", false) when none of
// these resolve to anything (no-config mode: every tool use asks).
func discoverConfig(flagValue string) (path string, explicit bool) {
	if flagValue != "" {
		return flagValue, true
	}
	if env := os.Getenv("CLAUDE_PERMISSIONS_HOOK_CONFIG"); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env, true
		}
	}
	if home := os.Getenv("HOME"); home != "" {
		def := filepath.Join(home, ".config", "claude-permissions-hook", "config.kdl")
		if _, err := os.Stat(def); err == nil {
			return def, false
		}
	}
	return "", false
}

// initDebugLog enables a file-only debug log when
// CC_PERMIT_DEBUG_LOG is set, never touching stderr so the CLI's
// always-empty-stderr contract holds regardless of debug mode.
func initDebugLog() {
	logPath := os.Getenv("CC_PERMIT_DEBUG_LOG")
	if logPath == "" {
		return
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	debugLog = log.New(f, "[cc-permit] ", log.Ltime)
}

func logDebug(format string, args ...any) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}
