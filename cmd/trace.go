// Copyright © 2024 The ELPS authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/lisp/x/profiler"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	octrace "go.opencensus.io/trace"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Values accepted by the trace key.
const (
	traceOpenTelemetry = "otel"
	traceOpenCensus    = "opencensus"
	traceCallgrind     = "callgrind"
	tracePprof         = "pprof"
)

// tracer connects the trace configuration to a profiler.  Spans from the
// tracing backends are logged; callgrind and pprof write trace-output.
type tracer struct {
	kind   string
	logger *logrus.Logger
	out    *os.File
	p      lisp.Profiler
	finish []func() error
}

func newTracer() (*tracer, error) {
	tr := &tracer{
		kind:   viper.GetString(keyTrace),
		logger: logrus.New(),
	}
	tr.logger.SetOutput(os.Stderr)
	switch tr.kind {
	case "", traceOpenTelemetry, traceOpenCensus:
		return tr, nil
	case traceCallgrind, tracePprof:
		path := viper.GetString(keyTraceOutput)
		if path == "" {
			path = "elk." + tr.kind
		}
		f, err := os.Create(path) //#nosec G304
		if err != nil {
			return nil, fmt.Errorf("trace output: %w", err)
		}
		tr.out = f
		tr.finish = append(tr.finish, f.Close)
		return tr, nil
	default:
		return nil, fmt.Errorf("invalid %s: %q", keyTrace, tr.kind)
	}
}

// config returns the lisp configuration which installs the profiler.
func (tr *tracer) config() []lisp.Config {
	if tr.kind == "" {
		return nil
	}
	return []lisp.Config{func(env *lisp.LEnv) *lisp.LVal {
		p, err := tr.profiler(env.Runtime)
		if err != nil {
			return lisp.Error(err)
		}
		tr.p = p
		return lisp.WithProfiler(p)(env)
	}}
}

func (tr *tracer) profiler(rt *lisp.Runtime) (lisp.Profiler, error) {
	ctx := context.Background()
	switch tr.kind {
	case traceOpenTelemetry:
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(&logExporter{logger: tr.logger}))
		otel.SetTracerProvider(tp)
		tr.finish = append(tr.finish, func() error { return tp.Shutdown(ctx) })
		return profiler.NewOpenTelemetryAnnotator(rt, ctx), nil
	case traceOpenCensus:
		exporter := &logExporter{logger: tr.logger}
		octrace.ApplyConfig(octrace.Config{DefaultSampler: octrace.AlwaysSample()})
		octrace.RegisterExporter(exporter)
		tr.finish = append(tr.finish, func() error {
			octrace.UnregisterExporter(exporter)
			return nil
		})
		return profiler.NewOpenCensusAnnotator(rt, ctx), nil
	case traceCallgrind:
		return profiler.NewCallgrindProfiler(rt, tr.out), nil
	case tracePprof:
		if err := pprof.StartCPUProfile(tr.out); err != nil {
			return nil, err
		}
		tr.finish = append([]func() error{func() error {
			pprof.StopCPUProfile()
			return nil
		}}, tr.finish...)
		return profiler.NewPprofAnnotator(rt, ctx), nil
	}
	return nil, fmt.Errorf("invalid %s: %q", keyTrace, tr.kind)
}

// complete ends the profiling session and releases trace resources.
func (tr *tracer) complete() error {
	var err error
	if tr.p != nil {
		err = tr.p.Complete()
	}
	for _, fn := range tr.finish {
		if ferr := fn(); ferr != nil && err == nil {
			err = ferr
		}
	}
	return err
}

// logExporter logs finished spans at info level.  It exports both
// OpenTelemetry and OpenCensus spans.
type logExporter struct {
	logger *logrus.Logger
}

var _ sdktrace.SpanExporter = &logExporter{}

func (e *logExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		fields := logrus.Fields{
			"span":     span.SpanContext().SpanID().String(),
			"duration": span.EndTime().Sub(span.StartTime()),
		}
		if span.Parent().IsValid() {
			fields["parent"] = span.Parent().SpanID().String()
		}
		for _, attr := range span.Attributes() {
			fields[string(attr.Key)] = attr.Value.Emit()
		}
		e.logger.WithFields(fields).Info(span.Name())
	}
	return nil
}

func (e *logExporter) Shutdown(ctx context.Context) error {
	return nil
}

func (e *logExporter) ExportSpan(sd *octrace.SpanData) {
	fields := logrus.Fields{
		"span":     sd.SpanID.String(),
		"duration": sd.EndTime.Sub(sd.StartTime),
	}
	if sd.ParentSpanID != (octrace.SpanID{}) {
		fields["parent"] = sd.ParentSpanID.String()
	}
	for k, v := range sd.Attributes {
		fields[k] = v
	}
	e.logger.WithFields(fields).Info(sd.Name)
}

func (tr *tracer) setOutput(w io.Writer) {
	tr.logger.SetOutput(w)
}
