// Copyright © 2018 The ELPS authors

package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/luthersystems/elk/repl"
	"github.com/spf13/cobra"
)

var replHistoryFile string

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive ELK REPL",
	Long: `Start an interactive read-eval-print loop.

Expressions may span several lines; the REPL waits for the closing
delimiter before evaluating. Tab completes the names of bound symbols.
History is saved to ~/.elk_history. Use Ctrl-D to exit and Ctrl-C to
discard a partially typed expression.

Example REPL session:
  elk> (+ 1 2)
  3
  elk> (defn square [x] (* x x))
  #<function square>
  elk> (map square [1 2 3])
  (1 4 9)
  elk> (try (throw {:code 7}) (catch e (get e :code)))
  7`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newCmdConfig().rootEnv()
		if err != nil {
			return err
		}
		mode, err := colorMode()
		if err != nil {
			return err
		}
		opts := []repl.Option{repl.WithColor(mode)}
		if cmd.Flags().Changed("history-file") {
			opts = append(opts, repl.WithHistoryFile(replHistoryFile))
		}
		prompt := filepath.Base(os.Args[0]) + "> "
		return repl.RunEnv(env, prompt, strings.Repeat(" ", len(prompt)), opts...)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replHistoryFile, "history-file", "",
		"File for line history (default ~/.elk_history, empty disables history)")
}
