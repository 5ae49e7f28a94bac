// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"io"

	"github.com/luthersystems/elk/parser/token"
)

// DefaultMaxStackHeight is the physical stack height used when a runtime is
// not configured with WithMaximumStackHeight.
const DefaultMaxStackHeight = 10000

// CallStack is a function call stack.
type CallStack struct {
	Frames            []CallFrame
	MaxHeightPhysical int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Source *token.Location
	Name   string
	// TailCalls counts the calls which have replaced this frame due to tail
	// call elimination.
	TailCalls int
}

func (f *CallFrame) String() string {
	name := f.Name
	if name == "" {
		name = "<anonymous>"
	}
	if f.TailCalls > 0 {
		name = fmt.Sprintf("%s [%d tail calls]", name, f.TailCalls)
	}
	if hasLocation(f.Source) {
		return fmt.Sprintf("%s: %s", f.Source, name)
	}
	return name
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{
		MaxHeightPhysical: s.MaxHeightPhysical,
		Frames:            frames,
	}
}

// Height returns the number of frames in s.
func (s *CallStack) Height() int {
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Push pushes a new frame for a call to fun onto s.  Push returns an error
// without modifying s if the new frame would exceed s.MaxHeightPhysical.
func (s *CallStack) Push(src *token.Location, fun *LVal) error {
	if s.MaxHeightPhysical > 0 && s.MaxHeightPhysical <= len(s.Frames) {
		return &StackOverflowError{len(s.Frames) + 1}
	}
	s.Frames = append(s.Frames, CallFrame{
		Source: src,
		Name:   fun.FunName(),
	})
	return nil
}

// Replace replaces the top frame of s with a frame for a tail call to fun.
func (s *CallStack) Replace(src *token.Location, fun *LVal) {
	top := s.Top()
	if top == nil {
		panic("replace called on an empty stack")
	}
	top.Source = src
	top.Name = fun.FunName()
	top.TailCalls++
}

// Pop removes the top CallFrame from the stack and returns it.  Pop panics if
// the stack is empty.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		fstr := s.Frames[i].String()
		_n, err := fmt.Fprintf(w, "%sheight %d: %s\n", indent, i, fstr)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// StackOverflowError is returned by CallStack.Push when the stack is full.
type StackOverflowError struct {
	Height int
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("stack height exceeded maximum: %v", e.Height)
}
