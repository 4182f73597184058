// Package observability ships run traces and per-step observations to a
// Langfuse-compatible backend over OTLP/HTTP. Langfuse has no native Go SDK;
// its documented integration path for Go is OpenTelemetry with Basic auth
// derived from the project's public/secret key pair, which is what this
// package wires up.
package observability

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/hupe1980/searchagent/core"
)

// DefaultHost is the hosted Langfuse ingestion endpoint used when no host is
// configured explicitly.
const DefaultHost = "https://cloud.langfuse.com"

const otelTracesPath = "/api/public/otel/v1/traces"

// Config configures trace delivery. If PublicKey or SecretKey is empty the
// tracer is a no-op: all methods stay safe to call and nothing is exported.
type Config struct {
	// PublicKey / SecretKey form the Basic auth pair of the Langfuse project.
	PublicKey string
	SecretKey string

	// Host is the Langfuse base URL (defaults to DefaultHost).
	Host string

	// ServiceName identifies this process in exported traces.
	ServiceName string

	// Environment tags all spans with a deployment environment when set.
	Environment string
}

// Tracer emits one trace per agent run and one observation span per step.
// It is safe for concurrent use by multiple in-flight runs; span export is
// batched in the background.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewTracer builds a tracer from cfg. Returns a no-op tracer when credentials
// are missing, and an error only when the exporter cannot be constructed from
// otherwise complete credentials.
func NewTracer(ctx context.Context, cfg Config) (*Tracer, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "searchagent"
	}
	if cfg.PublicKey == "" || cfg.SecretKey == "" {
		return &Tracer{tracer: tracenoop.NewTracerProvider().Tracer(cfg.ServiceName)}, nil
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}

	auth := base64.StdEncoding.EncodeToString([]byte(cfg.PublicKey + ":" + cfg.SecretKey))
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(strings.TrimRight(cfg.Host, "/")+otelTracesPath),
		otlptracehttp.WithHeaders(map[string]string{"Authorization": "Basic " + auth}),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: failed to create exporter: %w", err)
	}

	attrs := []attribute.KeyValue{semconv.ServiceName(cfg.ServiceName)}
	if cfg.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(cfg.Environment))
	}
	res, err := resource.New(ctx, resource.WithAttributes(attrs...))
	if err != nil {
		res = resource.Default()
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	return &Tracer{provider: provider, tracer: provider.Tracer(cfg.ServiceName)}, nil
}

// RunSpan is the open trace for one agent run. End must be called exactly
// once before the run returns.
type RunSpan struct {
	span trace.Span
}

// StartRun opens the trace for a single agent run. The returned context
// parents all observation spans emitted during the run.
func (t *Tracer) StartRun(ctx context.Context, name, input string) (context.Context, *RunSpan) {
	ctx, span := t.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("langfuse.trace.input", input)),
	)
	return ctx, &RunSpan{span: span}
}

// RecordError marks the run trace as failed.
func (s *RunSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// End closes the run trace, attaching the final answer, the ordered tool
// calls and the iteration count from the finished record.
func (s *RunSpan) End(rec *core.RunRecord) {
	s.span.SetAttributes(
		attribute.String("langfuse.trace.output", rec.FinalAnswer),
		attribute.Int("agent.iterations", rec.Iterations),
		attribute.Int("agent.tool_call_count", len(rec.ToolCalls)),
	)
	if calls, err := json.Marshal(rec.ToolCalls); err == nil {
		s.span.SetAttributes(attribute.String("agent.tool_calls", string(calls)))
	}
	s.span.End()
}

// Observation emits one closed span for a single step within the active run
// trace (tool execution, degraded-mode synthesis, ...). A non-nil err sets
// the Langfuse ERROR level. Implements tool.Observer.
func (t *Tracer) Observation(ctx context.Context, name, input, output string, err error) {
	_, span := t.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("langfuse.observation.input", input),
			attribute.String("langfuse.observation.output", output),
		),
	)
	if err != nil {
		span.SetAttributes(attribute.String("langfuse.observation.level", "ERROR"))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Flush forces delivery of all buffered spans. Call once at process shutdown
// to guarantee delivery before exit.
func (t *Tracer) Flush(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.ForceFlush(ctx)
}

// Shutdown flushes and releases the exporter.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
