// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command routing and global flags for tensaku.

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (set from main at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents a CLI command.
type Command int

const (
	CmdTUI Command = iota
	CmdCorrect
	CmdModels
	CmdModelSet
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name used in JSON envelopes.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdCorrect:
		return "correct"
	case CmdModels:
		return "models"
	case CmdModelSet:
		return "model set"
	case CmdHistory:
		return "history"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed command-line arguments.
type Args struct {
	// Global flags
	ConfigPath string
	UserID     string
	BaseURL    string
	JSON       bool
	Verbose    bool
	Quiet      bool

	// correct
	Text  string
	Model string
	Style string

	// history
	Pages int

	// config / model set
	Subcommand string
	Rest       []string
}

const usageText = `tensaku - Japanese text correction from the terminal

Usage:
  tensaku [global flags] [command]

Commands:
  tui                   Start the interactive composition view (default)
  correct <text>        Request correction variants for text
  models                List available models and the preferred one
  model set <name>      Change the preferred model
  history               List past corrections
  config [sub]          show | path | init | get <key> | set <key> <value>
  version               Show version information
  help                  Show this help

Command flags:
  correct  --model NAME     Override the preferred model for this request
           --style STYLE    default, formal, casual, business, error_focus, concise
  history  --pages N        Number of pages to fetch (default 1)

Global flags:
  --config PATH         Use a specific config file
  --user ID             User id (overrides user.id and TENSAKU_USER)
  --base-url URL        Correction service root (overrides api.base_url)
  --json                Print results as JSON
  -v, --verbose         Log diagnostics to stderr
  -q, --quiet           Print only essential output
  -h, --help            Show this help
  -V, --version         Show version information

Examples:
  tensaku correct "こんにちわ、元気ですか"
  tensaku correct --style business "明日の会議に参加します"
  tensaku --json history --pages 2
  tensaku model set anthropic-claude3
  tensaku config set user.id u1
`

// =============================================================================
// PARSING
// =============================================================================

// ParseArgs parses raw command-line arguments (without the program name).
// Global flags may appear anywhere before a "--" terminator.
func ParseArgs(raw []string) (Command, Args, error) {
	rest, args, err := parseGlobalFlags(raw)
	if err != nil {
		return CmdHelp, args, err
	}

	if len(rest) == 0 {
		return CmdTUI, args, nil
	}

	name, cmdArgs := strings.ToLower(rest[0]), rest[1:]
	switch name {
	case "tui":
		return CmdTUI, args, nil
	case "correct", "c":
		return parseCorrect(cmdArgs, args)
	case "models":
		return CmdModels, args, nil
	case "model":
		return parseModel(cmdArgs, args)
	case "history", "hist":
		return parseHistory(cmdArgs, args)
	case "config":
		return parseConfig(cmdArgs, args)
	case "version", "--version", "-V":
		return CmdVersion, args, nil
	case "help", "--help", "-h":
		return CmdHelp, args, nil
	default:
		return CmdHelp, args, NewUsageError(fmt.Sprintf("unknown command %q", rest[0]))
	}
}

// parseGlobalFlags strips global flags and returns the remaining arguments.
func parseGlobalFlags(raw []string) ([]string, Args, error) {
	var args Args
	rest := make([]string, 0, len(raw))

	value := func(i int, name string) (string, error) {
		if i+1 >= len(raw) {
			return "", NewUsageError(name + " requires a value")
		}
		return raw[i+1], nil
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		if arg == "--" {
			rest = append(rest, raw[i:]...)
			break
		}

		name, inline, hasInline := strings.Cut(arg, "=")
		var target *string
		switch name {
		case "--config":
			target = &args.ConfigPath
		case "--user":
			target = &args.UserID
		case "--base-url":
			target = &args.BaseURL
		}
		if target != nil {
			if hasInline {
				*target = inline
				continue
			}
			v, err := value(i, name)
			if err != nil {
				return nil, args, err
			}
			*target = v
			i++
			continue
		}

		switch arg {
		case "--json":
			args.JSON = true
		case "-v", "--verbose":
			args.Verbose = true
		case "-q", "--quiet":
			args.Quiet = true
		default:
			rest = append(rest, arg)
		}
	}

	if args.Verbose && args.Quiet {
		return nil, args, NewUsageError("--verbose and --quiet are mutually exclusive")
	}
	return rest, args, nil
}

func parseCorrect(raw []string, args Args) (Command, Args, error) {
	p := NewArgParser(raw, "model", "m", "style", "s")
	args.Model = firstNonEmpty(p.Flag("model"), p.Flag("m"))
	args.Style = firstNonEmpty(p.Flag("style"), p.Flag("s"))
	args.Text = strings.Join(p.PositionalFrom(0), " ")
	if strings.TrimSpace(args.Text) == "" {
		return CmdCorrect, args, NewUsageError("correct requires text, e.g. tensaku correct \"こんにちわ\"")
	}
	return CmdCorrect, args, nil
}

func parseModel(raw []string, args Args) (Command, Args, error) {
	p := NewArgParser(raw)
	switch strings.ToLower(p.Subcommand()) {
	case "", "list", "ls":
		return CmdModels, args, nil
	case "set", "use":
		name := strings.TrimSpace(p.Positional(1))
		if name == "" {
			return CmdModelSet, args, NewUsageError("model set requires a model name")
		}
		args.Subcommand = "set"
		args.Rest = []string{name}
		return CmdModelSet, args, nil
	default:
		return CmdModels, args, NewUsageError(fmt.Sprintf("unknown model subcommand %q", p.Subcommand()))
	}
}

func parseHistory(raw []string, args Args) (Command, Args, error) {
	p := NewArgParser(raw, "pages", "n")
	args.Pages = 1
	for _, name := range []string{"pages", "n"} {
		n, ok, err := p.FlagInt(name)
		if err != nil {
			return CmdHistory, args, NewUsageError(err.Error())
		}
		if ok {
			if n < 1 {
				return CmdHistory, args, NewUsageError("--pages must be at least 1")
			}
			args.Pages = n
		}
	}
	return CmdHistory, args, nil
}

func parseConfig(raw []string, args Args) (Command, Args, error) {
	p := NewArgParser(raw)
	sub := strings.ToLower(p.Subcommand())
	if sub == "" {
		sub = "show"
	}
	args.Subcommand = sub
	args.Rest = p.PositionalFrom(1)

	switch sub {
	case "show", "path", "init":
	case "get":
		if len(args.Rest) != 1 {
			return CmdConfig, args, NewUsageError("usage: tensaku config get <key>")
		}
	case "set":
		if len(args.Rest) != 2 {
			return CmdConfig, args, NewUsageError("usage: tensaku config set <key> <value>")
		}
	default:
		return CmdConfig, args, NewUsageError(fmt.Sprintf("unknown config subcommand %q", sub))
	}
	return CmdConfig, args, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// =============================================================================
// VERSION / HELP
// =============================================================================

// VersionInfo is the JSON shape of `tensaku version`.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// HandleVersion prints version information.
func HandleVersion(w io.Writer, args Args) error {
	info := VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if args.JSON {
		return NewJSONResponse(CmdVersion.String(), info).Write(w)
	}
	fmt.Fprintf(w, "tensaku %s\n", info.Version)
	if !args.Quiet {
		fmt.Fprintf(w, "  Commit:   %s\n", info.GitCommit)
		fmt.Fprintf(w, "  Built:    %s\n", info.BuildDate)
		fmt.Fprintf(w, "  Go:       %s\n", info.GoVersion)
		fmt.Fprintf(w, "  Platform: %s\n", info.Platform)
	}
	return nil
}

// HandleHelp prints usage.
func HandleHelp(w io.Writer) {
	fmt.Fprint(w, usageText)
}
