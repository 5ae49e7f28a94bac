// Copyright © 2018 The ELPS authors

package lisp

const ElkVersion = "0.1"

// Profiler observes function applications.  Implementations live in the
// x/profiler package.
type Profiler interface {
	// Is the profiler enabled?
	IsEnabled() bool
	// Enable the profiler
	Enable() error
	// End the profiling session
	Complete() error
	// Start marks the application of fun and returns a function that marks
	// its completion.
	Start(fun *LVal) func()
}

func (env *LEnv) trace(fun *LVal) func() {
	p := env.Runtime.Profiler
	if p == nil || !p.IsEnabled() {
		return nil
	}
	return p.Start(fun)
}
