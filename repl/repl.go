// Copyright © 2018 The ELPS authors

package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/elk/diagnostic"
	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/parser"
)

// HistoryFileName is the name of the history file kept in the user's home
// directory.
const HistoryFileName = ".elk_history"

type config struct {
	stdin       io.ReadCloser
	stderr      io.Writer
	historyFile string
	noHistory   bool
	color       diagnostic.ColorMode
	envConfig   []lisp.Config
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Option configures a REPL.
type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output to the REPL.
func WithStderr(stderr io.Writer) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithHistoryFile stores line history in path.  An empty path disables
// history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = path
		c.noHistory = path == ""
	}
}

// WithColor controls colored error output.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithConfig appends configuration applied to the environment created by
// RunRepl.
func WithConfig(cfg ...lisp.Config) Option {
	return func(c *config) {
		c.envConfig = append(c.envConfig, cfg...)
	}
}

// RunRepl runs a simple repl in a new root environment.
func RunRepl(prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	envOpts := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
	}
	if cfg.stderr != nil {
		envOpts = append(envOpts, lisp.WithStderr(cfg.stderr))
	}
	envOpts = append(envOpts, cfg.envConfig...)

	env := lisp.NewEnv(nil)
	rc := lisp.InitializeRootEnv(env, envOpts...)
	if err := lisp.GoError(rc); err != nil {
		return fmt.Errorf("language initialization failure: %w", err)
	}
	return RunEnv(env, prompt, strings.Repeat(" ", len(prompt)), opts...)
}

// RunEnv runs a simple repl with env as a root environment.  Input is
// accumulated across lines, displaying the cont prompt, until it forms
// complete expressions.  RunEnv returns when input is exhausted.
func RunEnv(env *lisp.LEnv, prompt, cont string, opts ...Option) error {
	if env.Parent != nil {
		return errors.New("REPL environment is not a root environment")
	}
	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		env.Runtime.Stderr = cfg.stderr
	}
	out := env.Runtime.Stderr

	historyFile := cfg.historyFile
	if historyFile == "" && !cfg.noHistory {
		historyFile = historyPath()
	}
	ensureHistoryFilePermissions(historyFile)

	rlCfg := &readline.Config{
		Stdout:            out,
		Stderr:            out,
		Prompt:            prompt,
		HistoryFile:       historyFile,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{env: env},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	r := &diagnostic.Renderer{Color: cfg.color}
	var pending strings.Builder
	for {
		if pending.Len() == 0 {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(cont)
		}
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			pending.Reset()
			continue
		}
		if err != nil {
			return nil
		}
		if pending.Len() == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		pending.WriteString(line)
		pending.WriteString("\n")

		exprs := env.Read("stdin", strings.NewReader(pending.String()))
		if exprs.Type == lisp.LError {
			var ev *lisp.ErrorVal
			if errors.As(lisp.GoError(exprs), &ev) && ev.Incomplete() {
				continue
			}
			pending.Reset()
			RenderError(r, out, exprs)
			continue
		}
		pending.Reset()
		evalPrint(env, r, out, exprs.Cells)
	}
}

func evalPrint(env *lisp.LEnv, r *diagnostic.Renderer, out io.Writer, exprs []*lisp.LVal) {
	for _, expr := range exprs {
		env.Runtime.ResetSteps()
		val := env.Eval(expr)
		if val.Type == lisp.LError {
			RenderError(r, out, val)
			return
		}
		fmt.Fprintln(out, val) //nolint:errcheck // best-effort REPL output
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, HistoryFileName)
}

// ensureHistoryFilePermissions creates path if necessary and restricts it to
// the current user.  History may contain secrets typed at the prompt.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600) //#nosec G304
	if err != nil {
		return
	}
	_ = f.Close()
	_ = os.Chmod(path, 0600)
}
