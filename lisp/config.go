// Copyright © 2018 The ELPS authors

package lisp

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) *LVal

// WithMaximumStackHeight returns a Config that will prevent an execution
// environment from allowing the physical stack height to exceed n.  The
// physical stack height is the literal number of frames in the call stack.
// Frames replaced by tail calls are not counted.  A value of 0 removes the
// limit, allowing deep recursion to exhaust the Go stack.
func WithMaximumStackHeight(n int) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stack.MaxHeightPhysical = n
		return Nil()
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Reader = r
		return Nil()
	}
}

// WithStdout returns a Config that makes print functions write to w instead
// of os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stdout = w
		return Nil()
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.  The runtime logger also writes to
// w.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stderr = w
		if env.Runtime.Logger != nil {
			env.Runtime.Logger.SetOutput(w)
		}
		return Nil()
	}
}

// WithLogger returns a Config that makes the runtime log to logger.
func WithLogger(logger *logrus.Logger) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Logger = logger
		return Nil()
	}
}

// WithLogLevel returns a Config that sets the level of the runtime logger.
// Macro expansions and tail calls are logged at logrus.TraceLevel.
func WithLogLevel(level logrus.Level) Config {
	return func(env *LEnv) *LVal {
		if env.Runtime.Logger == nil {
			env.Runtime.Logger = logrus.New()
			env.Runtime.Logger.SetOutput(env.Runtime.Stderr)
		}
		env.Runtime.Logger.SetLevel(level)
		return Nil()
	}
}

// WithMaxMacroExpansionDepth returns a Config that limits the number of
// successive macro expansions performed for a single form.  This prevents
// infinite macro expansion from hanging evaluation.
func WithMaxMacroExpansionDepth(n int) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.MaxMacroExpansionDepth = n
		return Nil()
	}
}

// WithContext returns a Config that sets the context.Context checked by the
// evaluator.  The context is checked at each evaluation step; if it is
// cancelled or its deadline expires, evaluation returns a context-cancelled
// error.
func WithContext(ctx context.Context) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.ctx = ctx
		return Nil()
	}
}

// WithMaxSteps returns a Config that sets the maximum number of evaluation
// steps before evaluation returns a step-limit error.  A step is counted for
// each iteration of the evaluation loop, including tail calls.  A value of 0
// means unlimited (the default).
func WithMaxSteps(n int64) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.MaxSteps = n
		return Nil()
	}
}

// WithProfiler returns a Config that enables p for the runtime.
func WithProfiler(p Profiler) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Profiler = p
		if err := p.Enable(); err != nil {
			return Error(err)
		}
		return Nil()
	}
}
