// Copyright © 2021 The ELPS authors

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/luthersystems/elk/docs"
	"github.com/luthersystems/elk/lisp"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

// docWidth is the column at which documentation is wrapped.
const docWidth = 72

var specialFormDocs = map[string]struct {
	usage string
	doc   string
}{
	lisp.DefSymbol:          {"(def name expr)", "Binds name to the value of expr in the current frame and returns the value."},
	lisp.SetSymbol:          {"(set! name expr)", "Rebinds name in the nearest frame that binds it.  It is an error if name is unbound."},
	lisp.LetSymbol:          {"(let [name expr ...] body ...)", "Evaluates body in a new frame.  Each binding is visible to the bindings that follow it."},
	lisp.IfSymbol:           {"(if test then [else])", "Evaluates then if test is truthy and else otherwise.  Only nil and false are falsey."},
	lisp.DoSymbol:           {"(do expr ...)", "Evaluates each expr in order and returns the value of the last."},
	lisp.FnSymbol:           {"(fn [name] [param ... & rest] body ...)", "Returns a function closing over the current frame."},
	lisp.DefnSymbol:         {"(defn name [doc] [param ... & rest] body ...)", "Defines a named function."},
	lisp.DefmacroSymbol:     {"(defmacro name [doc] [param ... & rest] body ...)", "Defines a macro.  The macro receives its arguments unevaluated and its result is evaluated in place of the call."},
	lisp.QuoteSymbol:        {"(quote form)", "Returns form without evaluating it.  'form is shorthand for (quote form)."},
	lisp.QuasiquoteSymbol:   {"(quasiquote form)", "Returns form with (unquote x) replaced by the value of x and (unquote-splicing xs) spliced into the enclosing sequence."},
	lisp.MacroexpandSymbol:  {"(macroexpand form)", "Expands form repeatedly until its head is not a macro."},
	lisp.Macroexpand1Symbol: {"(macroexpand-1 form)", "Performs a single macro expansion of form."},
	lisp.TrySymbol:          {"(try expr (catch [kind ...] name handler ...) ...)", "Evaluates expr.  If it raises an error the first catch clause whose kinds match the error is evaluated with name bound to the error, or to the thrown payload.  A catch clause without kinds matches every error."},
}

var (
	docSourceFile string
	docList       bool
	docGuide      bool
)

// DocCommand returns a doc command.  Opts select the environment which is
// documented.
func DocCommand(opts ...Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc [flags] QUERY",
		Short: "Show documentation for functions, macros and special forms",
		Long: `Show built-in documentation for functions, macros and special forms.

Documentation comes from doc strings given to defn and defmacro and from
the descriptions of functions implemented in Go. Use -f to load a source
file first (useful for documenting your own code).

Examples:
  elk doc map                     Show docs for the map function
  elk doc try                     Show docs for a special form
  elk doc -l                      List every documented symbol
  elk doc --guide                 Print the language reference
  elk doc -f mylib.lisp my-func   Load a file, then show docs for my-func`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if docGuide {
				_, err := io.WriteString(cmd.OutOrStdout(), docs.LangGuide)
				return err
			}
			if !docList && len(args) != 1 {
				_ = cmd.Help()
				return errReported
			}
			env, err := newCmdConfig(opts...).rootEnv()
			if err != nil {
				return err
			}
			if docSourceFile != "" {
				f, err := os.Open(docSourceFile) //#nosec G304
				if err != nil {
					return err
				}
				res := env.LoadLocation(docSourceFile, docSourceFile, f)
				_ = f.Close()
				if res.Type == lisp.LError {
					return renderLispError(cmd.ErrOrStderr(), res)
				}
			}
			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush() //nolint:errcheck // best-effort flush on exit
			if docList {
				return renderDocList(out, env)
			}
			return renderDoc(out, env, args[0])
		},
	}
	cmd.Flags().StringVarP(&docSourceFile, "source-file", "f", "",
		"Evaluate a lisp source file before querying documentation.")
	cmd.Flags().BoolVarP(&docList, "list", "l", false,
		"List every documented symbol with a summary.")
	cmd.Flags().BoolVar(&docGuide, "guide", false,
		"Print the language reference.")
	return cmd
}

func renderDoc(w io.Writer, env *lisp.LEnv, name string) error {
	if sf, ok := specialFormDocs[name]; ok {
		fmt.Fprintf(w, "%s\n  special form\n\n%s\n", sf.usage, formatDoc(sf.doc)) //nolint:errcheck
		return nil
	}
	v := env.Lookup(name)
	if v.Type == lisp.LError {
		return fmt.Errorf("no documentation for %s: symbol is not bound", name)
	}
	if v.Type != lisp.LFun {
		fmt.Fprintf(w, "%s\n  %s\n", name, lisp.GetType(v)) //nolint:errcheck
		return nil
	}
	fd := v.FunData()
	fmt.Fprintf(w, "%s\n  %s\n", funUsage(name, fd), funKind(v)) //nolint:errcheck
	if fd.Doc != "" {
		fmt.Fprintf(w, "\n%s\n", formatDoc(fd.Doc)) //nolint:errcheck
	}
	return nil
}

func renderDocList(w io.Writer, env *lisp.LEnv) error {
	docs := make(map[string]string)
	for name, sf := range specialFormDocs {
		docs[name] = sf.doc
	}
	for e := env; e != nil; e = e.Parent {
		for name, v := range e.Scope {
			if _, ok := docs[name]; ok || v.Type != lisp.LFun {
				continue
			}
			docs[name] = v.FunData().Doc
		}
	}
	names := make([]string, 0, len(docs))
	width := 0
	for name := range docs {
		names = append(names, name)
		if len(name) > width {
			width = len(name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, name, summary(docs[name])); err != nil {
			return err
		}
	}
	return nil
}

func funUsage(name string, fd *lisp.LFunData) string {
	parts := append([]string{name}, fd.Params...)
	if fd.Rest != "" {
		parts = append(parts, lisp.VarArgSymbol, fd.Rest)
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func funKind(v *lisp.LVal) string {
	switch {
	case v.FunData().IsBuiltin():
		return "builtin " + v.FunType.String()
	default:
		return v.FunType.String()
	}
}

// formatDoc wraps doc and indents it beneath the usage line.
func formatDoc(doc string) string {
	return indent.String(wordwrap.String(strings.TrimSpace(doc), docWidth), 2)
}

// summary returns the first sentence of doc.
func summary(doc string) string {
	doc = strings.Join(strings.Fields(doc), " ")
	if i := strings.Index(doc, ". "); i >= 0 {
		return doc[:i+1]
	}
	return doc
}

func init() {
	rootCmd.AddCommand(DocCommand())
}
