// Copyright © 2018 The ELPS authors

package cmd

import (
	"fmt"
	"os"

	"github.com/luthersystems/elk/lisp"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
	runExcludes   []string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE...",
	Short: "Run lisp code",
	Long: `Run lisp code supplied via the command line or files.

Files are evaluated in order in a single environment. An argument ending
in /... names every .lisp file beneath a directory. Evaluation stops at the
first error, which is reported with its source location and call stack.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExec(cmd, args)
	},
}

func runExec(cmd *cobra.Command, args []string) (err error) {
	tr, err := newTracer()
	if err != nil {
		return err
	}
	tr.setOutput(cmd.ErrOrStderr())
	env, err := newCmdConfig(WithConfig(tr.config()...)).rootEnv()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := tr.complete(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if runExpression {
		for i, expr := range args {
			name := fmt.Sprintf("expression-%d", i+1)
			if err := runEval(cmd, env, env.LoadString(name, expr)); err != nil {
				return err
			}
		}
		return nil
	}

	paths, err := expandArgs(args)
	if err != nil {
		return err
	}
	for _, path := range filterExcludes(paths, runExcludes) {
		f, err := os.Open(path) //#nosec G304
		if err != nil {
			return err
		}
		env.Runtime.ResetSteps()
		res := env.LoadLocation(path, path, f)
		_ = f.Close()
		if err := runEval(cmd, env, res); err != nil {
			return err
		}
	}
	return nil
}

func runEval(cmd *cobra.Command, env *lisp.LEnv, res *lisp.LVal) error {
	if res.Type == lisp.LError {
		return renderLispError(cmd.ErrOrStderr(), res)
	}
	if runPrint {
		fmt.Fprintln(cmd.OutOrStdout(), res) //nolint:errcheck // best-effort output
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
	runCmd.Flags().StringSliceVar(&runExcludes, "exclude", nil,
		"Skip files matching a name, directory or glob pattern")
}
