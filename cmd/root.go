// Copyright © 2018 The ELPS authors

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys.  Each key may be set in the config file, with an
// ELK_ prefixed environment variable or with the flag of the same name.
const (
	keyMaxStackHeight = "max-stack-height"
	keyMaxMacroDepth  = "max-macro-depth"
	keyMaxSteps       = "max-steps"
	keySyntax         = "syntax"
	keyLogLevel       = "log-level"
	keyColor          = "color"
	keyTrace          = "trace"
	keyTraceOutput    = "trace-output"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "elk",
	Short: "ELK — embeddable lisp kernel",
	Long: `ELK is a small embeddable Lisp implemented in Go. The elk command runs
programs, provides an interactive REPL and shows documentation for the
builtin functions.

Getting started:
  elk run file.lisp            Run a Lisp source file
  elk run -e '(+ 1 2)' -p      Evaluate an expression and print its value
  elk repl                     Start an interactive REPL
  elk doc map                  Show documentation for a function
  elk doc -l                   List documented functions

Language overview:
  Programs are made of lists (f x y), vectors [x y], maps {:k v} and sets
  #{x y}. Functions are defined with (defn name [args] body) and anonymous
  functions with (fn [args] body). A parameter list [a & more] collects
  the remaining arguments into more. Macros are defined with defmacro and
  usually built with quasiquote. Errors are raised with (throw v) and
  handled with (try expr (catch :kind e handler)).

Configuration is read from $HOME/.elk.yaml (or --config) and from ELK_
environment variables, e.g. ELK_MAX_STEPS=100000.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.elk.yaml)")
	flags.String(keyColor, "auto", `Control colored output: "auto", "always", or "never".`)
	flags.String(keyLogLevel, "warning", "Interpreter log level (trace shows macro expansion and tail calls).")
	flags.Int(keyMaxStackHeight, 0, "Maximum call stack height (0 uses the interpreter default).")
	flags.Int(keyMaxMacroDepth, 0, "Maximum macro expansion steps for a single form (0 uses the interpreter default).")
	flags.Int64(keyMaxSteps, 0, "Maximum evaluation steps per expression (0 is unlimited).")
	flags.String(keySyntax, "default", `Quote syntax: "default" (~ and ~@) or "comma" (, and ,@).`)
	flags.String(keyTrace, "", `Trace function calls: "otel", "opencensus", "callgrind" or "pprof".`)
	flags.String(keyTraceOutput, "", "Output file for callgrind and pprof traces.")
	for _, key := range []string{
		keyColor, keyLogLevel, keyMaxStackHeight, keyMaxMacroDepth,
		keyMaxSteps, keySyntax, keyTrace, keyTraceOutput,
	} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".elk")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("elk")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && (cfgFile != "" || !errors.As(err, &notFound)) {
		fmt.Fprintln(os.Stderr, "Unable to read config file:", err)
		os.Exit(1)
	}
}
