// Copyright © 2018 The ELPS authors

package profiler

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/luthersystems/elk/lisp"
)

// errWriter captures the first write error and drops subsequent writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// callgrindProfiler writes a callgrind profile which can be opened in
// KCacheGrind or QCacheGrind.  Each call records its duration and the bytes
// allocated while it ran.
type callgrindProfiler struct {
	profiler
	sync.Mutex
	w         *errWriter
	startTime time.Time
	refs      map[string]int
	calls     []*callRef
}

var _ lisp.Profiler = &callgrindProfiler{}

// callRef is a single function application.
type callRef struct {
	name        string
	file        string
	line        int
	start       time.Time
	duration    time.Duration
	startMemory uint64
	children    []*callRef
}

// NewCallgrindProfiler returns a profiler which writes a callgrind profile
// to w when Complete is called.
func NewCallgrindProfiler(runtime *lisp.Runtime, w io.Writer, opts ...Option) lisp.Profiler {
	p := &callgrindProfiler{
		profiler: profiler{
			runtime: runtime,
		},
		w: &errWriter{w: w},
	}
	p.applyConfigs(opts...)
	return p
}

func (p *callgrindProfiler) Enable() error {
	p.Lock()
	defer p.Unlock()
	if p.w.w == nil {
		return errors.New("no output set in profiler")
	}
	p.w.printf("version: 1\ncreator: elk %s (Go %s)\n", lisp.ElkVersion, runtime.Version())
	p.w.printf("cmd: Eval\npart: 1\npositions: line\n\n")
	p.w.printf("events: Time_(ns) Memory_(bytes)\n\n")
	if p.w.err != nil {
		return p.w.err
	}
	p.startTime = time.Now()
	p.refs = make(map[string]int)
	p.calls = []*callRef{newCallRef("ENTRYPOINT", "-", 0)}
	p.runtime.Profiler = p
	return p.profiler.Enable()
}

func newCallRef(name string, file string, line int) *callRef {
	ms := &runtime.MemStats{}
	runtime.ReadMemStats(ms)
	return &callRef{
		name:        name,
		file:        file,
		line:        line,
		start:       time.Now(),
		startMemory: ms.TotalAlloc,
	}
}

func (p *callgrindProfiler) Complete() error {
	p.Lock()
	defer p.Unlock()
	if len(p.calls) != 1 {
		return fmt.Errorf("profile completed with %d unfinished calls", len(p.calls)-1)
	}
	ref := p.calls[0]
	ref.duration = time.Since(ref.start)
	p.writeCall(ref, 0, 0)
	ms := &runtime.MemStats{}
	runtime.ReadMemStats(ms)
	p.w.printf("summary %d %d\n\n", time.Since(p.startTime).Nanoseconds(), ms.TotalAlloc-ref.startMemory)
	p.enabled = false
	return p.w.err
}

func (p *callgrindProfiler) getRef(name string) string {
	if ref, ok := p.refs[name]; ok {
		return fmt.Sprintf("(%d)", ref)
	}
	ref := len(p.refs) + 1
	p.refs[name] = ref
	return fmt.Sprintf("(%d) %s", ref, name)
}

func (p *callgrindProfiler) Start(fun *lisp.LVal) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	label, _ := p.funName(fun)
	file, line := "no-source", 0
	if loc := getSourceLoc(fun); loc != nil {
		file, line = loc.File, loc.Line
	}
	ref := newCallRef(label, file, line)
	p.Lock()
	parent := p.calls[len(p.calls)-1]
	parent.children = append(parent.children, ref)
	p.calls = append(p.calls, ref)
	p.Unlock()
	return func() {
		p.end(ref)
	}
}

func (p *callgrindProfiler) end(ref *callRef) {
	ms := &runtime.MemStats{}
	runtime.ReadMemStats(ms)
	p.Lock()
	defer p.Unlock()
	if !p.enabled || len(p.calls) < 2 || p.calls[len(p.calls)-1] != ref {
		return
	}
	p.calls = p.calls[:len(p.calls)-1]
	ref.duration = time.Since(ref.start)
	if ref.duration == 0 {
		ref.duration = 1
	}
	p.writeCall(ref, ref.line, ms.TotalAlloc-ref.startMemory)
}

func (p *callgrindProfiler) writeCall(ref *callRef, line int, memory uint64) {
	p.w.printf("fl=%s\n", p.getRef(ref.file))
	p.w.printf("fn=%s\n", p.getRef(ref.name))
	p.w.printf("%d %d %d\n", line, ref.duration.Nanoseconds(), memory)
	for _, child := range ref.children {
		p.w.printf("cfl=%s\n", p.getRef(child.file))
		p.w.printf("cfn=%s\n", p.getRef(child.name))
		p.w.printf("calls=1 %d\n", child.line)
		p.w.printf("%d %d %d\n", child.line, child.duration.Nanoseconds(), 0)
	}
	p.w.printf("\n")
}
