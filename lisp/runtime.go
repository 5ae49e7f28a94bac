// Copyright © 2018 The ELPS authors

package lisp

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// DefaultMaxMacroExpansionDepth is the number of successive expansions
// MacroExpand performs before failing.
const DefaultMaxMacroExpansionDepth = 10000

// Runtime is an object underlying a family of tree of LEnv values.  It is
// responsible for holding shared environment state, generating identifiers,
// and writing debugging output to a stream (typically os.Stderr).
type Runtime struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Stack    *CallStack
	Reader   Reader
	Profiler Profiler
	Logger   *logrus.Logger

	MaxMacroExpansionDepth int
	MaxSteps               int64

	ctx    context.Context
	steps  int64
	numsym atomicCounter
}

// StandardRuntime returns a new Runtime writing to os.Stdout and os.Stderr with a
// logger which reports warnings to Stderr.
func StandardRuntime() *Runtime {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	return &Runtime{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stack: &CallStack{
			MaxHeightPhysical: DefaultMaxStackHeight,
		},
		Logger:                 logger,
		MaxMacroExpansionDepth: DefaultMaxMacroExpansionDepth,
	}
}

// GenSym returns a symbol name that is unique within the runtime.
func (r *Runtime) GenSym(prefix string) string {
	if prefix == "" {
		prefix = "G__"
	}
	return fmt.Sprintf("%s%d", prefix, r.numsym.Add(1))
}

// Context returns the context checked during evaluation.
func (r *Runtime) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Steps returns the number of evaluation steps taken since the runtime was
// created or ResetSteps was last called.
func (r *Runtime) Steps() int64 {
	return r.steps
}

// ResetSteps resets the step counter limited by MaxSteps.
func (r *Runtime) ResetSteps() {
	r.steps = 0
}

// step accounts for one iteration of the evaluation loop.
func (r *Runtime) step(env *LEnv) *LVal {
	if r.ctx != nil {
		select {
		case <-r.ctx.Done():
			return env.ErrorConditionf(CondContextCancelled, "evaluation cancelled: %v", r.ctx.Err())
		default:
		}
	}
	r.steps++
	if r.MaxSteps > 0 && r.steps > r.MaxSteps {
		return env.ErrorConditionf(CondStepLimit, "evaluation exceeded %d steps", r.MaxSteps)
	}
	return nil
}

func (r *Runtime) traceEnabled() bool {
	return r.Logger != nil && r.Logger.IsLevelEnabled(logrus.TraceLevel)
}

type atomicCounter uint64

func (c *atomicCounter) Add(n uint) uint {
	return uint(atomic.AddUint64((*uint64)(c), uint64(n)))
}
