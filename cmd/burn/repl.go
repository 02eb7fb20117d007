package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/lhaig/burn/internal/ast"
	"github.com/lhaig/burn/internal/config"
	"github.com/lhaig/burn/internal/diagnostic"
	"github.com/lhaig/burn/internal/format"
	"github.com/lhaig/burn/internal/logger"
	"github.com/lhaig/burn/internal/repl"
)

const (
	promptMain = "==> "
	promptCont = "... "
)

const replHelp = `Enter Burn statements to see how they parse.
  :tree     print syntax trees
  :source   print canonical source
  :reset    discard pending input
  :quit     leave the REPL
A blank line ends an unfinished statement.`

func (a *app) handleRepl(args []string) error {
	if len(args) > 0 {
		return errors.New("repl takes no arguments")
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := a.cfg.HistoryPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		} else {
			logger.Warn("could not save history", "path", histPath, "error", err)
		}
	}()

	fmt.Fprintln(a.stdout, "burn repl - :help for commands")
	session := repl.NewSession()
	mode := a.cfg.Output

	for {
		prompt := promptMain
		if session.Pending() {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			session.Reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(a.stdout)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		if !session.Pending() && strings.HasPrefix(strings.TrimSpace(line), ":") {
			switch strings.TrimSpace(line) {
			case ":quit", ":q":
				return nil
			case ":tree":
				mode = config.OutputTree
			case ":source":
				mode = config.OutputSource
			case ":reset":
				session.Reset()
			case ":help":
				fmt.Fprintln(a.stdout, replHelp)
			default:
				fmt.Fprintln(a.stdout, "unknown command. Type :help for a list.")
			}
			continue
		}

		a.replEval(session, line, mode)
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
	}
}

// replEval feeds one line to the session and prints whatever it produced
func (a *app) replEval(session *repl.Session, line, mode string) {
	res, err := session.Feed(line)
	if err != nil {
		if diag, ok := diagnostic.FromParseError(res.Source, err); ok {
			fmt.Fprintln(a.stderr, diag.Render(res.Origin.String()))
		} else {
			fmt.Fprintf(a.stderr, "Error: %s\n", err)
		}
		return
	}
	if res.Incomplete || res.Root == nil {
		return
	}
	if mode == config.OutputSource {
		fmt.Fprint(a.stdout, format.Format(res.Root))
	} else {
		fmt.Fprint(a.stdout, ast.Print(res.Root))
	}
}
