// Package driver runs the front-end pipeline (read, parse, lint, format)
// over files and strings for the command line tools.
package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/lhaig/burn/internal/ast"
	"github.com/lhaig/burn/internal/diagnostic"
	"github.com/lhaig/burn/internal/format"
	"github.com/lhaig/burn/internal/linter"
	"github.com/lhaig/burn/internal/logger"
	"github.com/lhaig/burn/internal/origin"
	"github.com/lhaig/burn/internal/parser"
)

// Extension is the file extension of Burn sources
const Extension = ".burn"

// Unit is one parsed source
type Unit struct {
	Origin *origin.Origin
	Source string
	Root   *ast.Root
}

// Options controls Check
type Options struct {
	// Disabled lists lint rules to skip
	Disabled []string
	// NoLint stops after parsing
	NoLint bool
}

// ParseSource parses source under the given name. A syntax error is
// returned as a *parser.ParseError.
func ParseSource(name, source string) (*Unit, error) {
	o := origin.New(name)
	start := time.Now()
	root, err := parser.Parse(o, source)
	logger.Debug("parsed", "origin", o.Short(), "bytes", len(source),
		"statements", statementCount(root), "duration", time.Since(start))
	if err != nil {
		return nil, err
	}
	return &Unit{Origin: o, Source: source, Root: root}, nil
}

// ParseFile reads and parses the file at path
func ParseFile(path string) (*Unit, error) {
	source, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return ParseSource(path, source)
}

// Check parses source and, when it is well formed, lints it. Syntax
// errors come back as error diagnostics.
func Check(name, source string, opts Options) *diagnostic.Diagnostics {
	unit, err := ParseSource(name, source)
	if err != nil {
		if diag, ok := diagnostic.FromParseError(source, err); ok {
			return diag
		}
		diag := diagnostic.New(source)
		diag.Errorf(0, "%s", err)
		return diag
	}
	if opts.NoLint {
		return diagnostic.New(source)
	}

	start := time.Now()
	diag := linter.Lint(unit.Root, source, opts.Disabled...)
	logger.Debug("linted", "origin", unit.Origin.Short(),
		"warnings", diag.WarningCount(), "duration", time.Since(start))
	return diag
}

// CheckFile is Check on the contents of path
func CheckFile(path string, opts Options) (*diagnostic.Diagnostics, error) {
	source, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return Check(path, source, opts), nil
}

// FormatSource parses source and returns it in canonical form
func FormatSource(name, source string) (string, error) {
	unit, err := ParseSource(name, source)
	if err != nil {
		return "", err
	}
	return format.Format(unit.Root), nil
}

// FormatFile formats the file at path. When write is set the file is
// rewritten in place if its contents changed. It reports whether the
// formatted text differs from the file.
func FormatFile(path string, write bool) (string, bool, error) {
	source, err := readSource(path)
	if err != nil {
		return "", false, err
	}
	formatted, err := FormatSource(path, source)
	if err != nil {
		return "", false, err
	}
	changed := formatted != source
	if write && changed {
		if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
			return "", false, fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info("formatted", "file", path)
	}
	return formatted, changed, nil
}

// Discover expands paths into the list of Burn files to process.
// Directories are searched recursively for files ending in Extension;
// file arguments are kept whatever their extension. The result is sorted
// and free of duplicates.
func Discover(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && len(d.Name()) > 1 && d.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(p) == Extension {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func statementCount(root *ast.Root) int {
	if root == nil {
		return 0
	}
	return len(root.Statements)
}
