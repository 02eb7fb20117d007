package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lhaig/burn/internal/ast"
	"github.com/lhaig/burn/internal/config"
	"github.com/lhaig/burn/internal/diagnostic"
	"github.com/lhaig/burn/internal/driver"
	"github.com/lhaig/burn/internal/format"
	"github.com/lhaig/burn/internal/logger"
)

const usage = `burn - tools for the Burn scripting language

Usage:
  burn [--config file] <command> [arguments]

Commands:
  parse [--tree|--source] <file|->   Parse a file and print its syntax tree or canonical source
  check <path>...                    Report syntax errors and lint warnings
  lint <path>...                     Run lint checks for style/best practices
  fmt [-w] <path>...                 Print canonical source, or rewrite files with -w
  repl                               Read statements interactively and print their trees
  watch <path>...                    Re-check files whenever they change
  help                               Show this message

Options:
  --config file   Settings file (default: ./burn.yaml when present)

Directories are searched recursively for .burn files.

Examples:
  burn parse hello.burn          Print the syntax tree of hello.burn
  burn check scripts/            Check every script under scripts/
  burn fmt -w hello.burn         Format hello.burn in place
`

// errReported means the failure was already printed as diagnostics
var errReported = errors.New("errors reported")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries what every command needs
type app struct {
	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	configPath, args, err := splitGlobalFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	command := args[0]
	if command == "help" || command == "--help" || command == "-h" {
		fmt.Fprint(stdout, usage)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	logCfg := cfg.Logger()
	logCfg.Output = stderr
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}

	a := &app{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr}
	switch command {
	case "parse":
		err = a.handleParse(args[1:])
	case "check":
		err = a.handleCheck(args[1:])
	case "lint":
		err = a.handleLint(args[1:])
	case "fmt":
		err = a.handleFmt(args[1:])
	case "repl":
		err = a.handleRepl(args[1:])
	case "watch":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = a.handleWatch(ctx, args[1:])
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		fmt.Fprint(stderr, usage)
		return 1
	}

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "Error: %s\n", err)
		}
		return 1
	}
	return 0
}

// splitGlobalFlags pulls --config out of the arguments that precede the
// command name.
func splitGlobalFlags(args []string) (string, []string, error) {
	var configPath string
	for len(args) > 0 && strings.HasPrefix(args[0], "-") && args[0] != "-" {
		arg := args[0]
		switch {
		case arg == "--config":
			if len(args) < 2 {
				return "", nil, errors.New("--config requires a file")
			}
			configPath = args[1]
			args = args[2:]
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
			args = args[1:]
		case arg == "--help" || arg == "-h":
			return configPath, args, nil
		default:
			return "", nil, fmt.Errorf("unknown option: %s", arg)
		}
	}
	return configPath, args, nil
}

// splitOptions separates leading-dash options from file arguments and
// rejects options not in allowed.
func splitOptions(args []string, allowed ...string) (map[string]bool, []string, error) {
	opts := make(map[string]bool)
	var files []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			files = append(files, arg)
			continue
		}
		ok := false
		for _, name := range allowed {
			if arg == name {
				ok = true
				break
			}
		}
		if !ok {
			return nil, nil, fmt.Errorf("unknown option: %s", arg)
		}
		opts[arg] = true
	}
	return opts, files, nil
}

func (a *app) handleParse(args []string) error {
	opts, files, err := splitOptions(args, "--tree", "--source")
	if err != nil {
		return err
	}
	if len(files) != 1 {
		return errors.New("parse takes exactly one input file")
	}

	mode := a.cfg.Output
	if opts["--tree"] {
		mode = config.OutputTree
	}
	if opts["--source"] {
		mode = config.OutputSource
	}

	name, source, err := a.readInput(files[0])
	if err != nil {
		return err
	}
	unit, err := driver.ParseSource(name, source)
	if err != nil {
		return a.reportParseError(name, source, err)
	}

	if mode == config.OutputSource {
		fmt.Fprint(a.stdout, format.Format(unit.Root))
	} else {
		fmt.Fprint(a.stdout, ast.Print(unit.Root))
	}
	return nil
}

func (a *app) handleCheck(args []string) error {
	files, err := a.discover(args)
	if err != nil {
		return err
	}

	failed := false
	for _, path := range files {
		diag, err := driver.CheckFile(path, a.checkOptions())
		if err != nil {
			return err
		}
		if diag.Count() == 0 {
			continue
		}
		if diag.HasErrors() {
			failed = true
			fmt.Fprintln(a.stderr, diag.Render(path))
		} else {
			fmt.Fprintln(a.stdout, diag.Render(path))
		}
	}

	if failed {
		return errReported
	}
	fmt.Fprintln(a.stdout, "No errors found.")
	return nil
}

func (a *app) handleLint(args []string) error {
	files, err := a.discover(args)
	if err != nil {
		return err
	}

	warnings := 0
	failed := false
	for _, path := range files {
		diag, err := driver.CheckFile(path, a.checkOptions())
		if err != nil {
			return err
		}
		if diag.HasErrors() {
			failed = true
			fmt.Fprintln(a.stderr, diag.Format(path))
			continue
		}
		if diag.Count() > 0 {
			fmt.Fprintln(a.stdout, diag.Format(path))
			warnings += diag.WarningCount()
		}
	}

	if failed {
		return errReported
	}
	if warnings == 0 {
		fmt.Fprintln(a.stdout, "No lint warnings.")
	} else {
		fmt.Fprintf(a.stdout, "%d warning(s) found.\n", warnings)
	}
	return nil
}

func (a *app) handleFmt(args []string) error {
	opts, paths, err := splitOptions(args, "-w")
	if err != nil {
		return err
	}
	write := opts["-w"]

	if len(paths) == 1 && paths[0] == "-" {
		if write {
			return errors.New("cannot use -w with standard input")
		}
		name, source, err := a.readInput("-")
		if err != nil {
			return err
		}
		out, err := driver.FormatSource(name, source)
		if err != nil {
			return a.reportParseError(name, source, err)
		}
		fmt.Fprint(a.stdout, out)
		return nil
	}

	files, err := a.discover(paths)
	if err != nil {
		return err
	}
	for _, path := range files {
		out, changed, err := driver.FormatFile(path, write)
		if err != nil {
			return a.reportFileError(path, err)
		}
		switch {
		case write && changed:
			fmt.Fprintf(a.stdout, "Formatted %s\n", path)
		case !write:
			fmt.Fprint(a.stdout, out)
		}
	}
	return nil
}

func (a *app) checkOptions() driver.Options {
	return driver.Options{Disabled: a.cfg.Lint.Disabled}
}

func (a *app) discover(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, errors.New("no input file specified")
	}
	files, err := driver.Discover(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found", driver.Extension)
	}
	return files, nil
}

// readInput returns the display name and contents of path, where "-"
// means standard input.
func (a *app) readInput(path string) (string, string, error) {
	if path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return path, string(data), nil
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", "", fmt.Errorf("failed to read standard input: %w", err)
	}
	return "<stdin>", string(data), nil
}

// reportParseError prints err as a located diagnostic when it is a
// syntax error
func (a *app) reportParseError(name, source string, err error) error {
	diag, ok := diagnostic.FromParseError(source, err)
	if !ok {
		return err
	}
	fmt.Fprintln(a.stderr, diag.Render(name))
	return errReported
}

// reportFileError is reportParseError for a file that still has to be
// read back for the excerpt
func (a *app) reportFileError(path string, err error) error {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return err
	}
	return a.reportParseError(path, string(data), err)
}
