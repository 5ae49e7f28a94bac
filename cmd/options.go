// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"

	"github.com/luthersystems/elk/diagnostic"
	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/parser"
	"github.com/luthersystems/elk/parser/lexer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Option configures an exported command factory (DocCommand).
type Option func(*cmdConfig)

type cmdConfig struct {
	env    *lisp.LEnv
	config []lisp.Config
}

// WithEnv injects a fully configured LEnv.  For the doc command this is the
// environment used for documentation queries, allowing embedders to
// document their own natives.
func WithEnv(env *lisp.LEnv) Option {
	return func(c *cmdConfig) { c.env = env }
}

// WithConfig appends configuration applied to environments created by the
// command.
func WithConfig(config ...lisp.Config) Option {
	return func(c *cmdConfig) { c.config = append(c.config, config...) }
}

func newCmdConfig(opts ...Option) *cmdConfig {
	c := &cmdConfig{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// rootEnv returns the injected environment or a new root environment
// configured from viper and c.
func (c *cmdConfig) rootEnv() (*lisp.LEnv, error) {
	if c.env != nil {
		return c.env, nil
	}
	config, err := envConfig()
	if err != nil {
		return nil, err
	}
	env := lisp.NewEnv(nil)
	rc := lisp.InitializeRootEnv(env, append(config, c.config...)...)
	if err := lisp.GoError(rc); err != nil {
		return nil, fmt.Errorf("language initialization failure: %w", err)
	}
	return env, nil
}

// envConfig translates the viper configuration into lisp.Config values.
func envConfig() ([]lisp.Config, error) {
	syn, err := lexer.SyntaxByName(viper.GetString(keySyntax))
	if err != nil {
		return nil, err
	}
	level, err := logrus.ParseLevel(viper.GetString(keyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", keyLogLevel, err)
	}
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader(parser.WithSyntax(syn))),
		lisp.WithLogLevel(level),
	}
	if n := viper.GetInt(keyMaxStackHeight); n > 0 {
		config = append(config, lisp.WithMaximumStackHeight(n))
	}
	if n := viper.GetInt(keyMaxMacroDepth); n > 0 {
		config = append(config, lisp.WithMaxMacroExpansionDepth(n))
	}
	if n := viper.GetInt64(keyMaxSteps); n > 0 {
		config = append(config, lisp.WithMaxSteps(n))
	}
	return config, nil
}

func colorMode() (diagnostic.ColorMode, error) {
	return diagnostic.ParseColorMode(viper.GetString(keyColor))
}
