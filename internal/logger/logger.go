package logger

import (
	"context"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"company-analyzer/internal/trace"
)

var (
	// Global logger instance
	globalLogger *zap.Logger
	sugar        *zap.SugaredLogger
	// Whether detailed logging is enabled
	detailedLogging bool
)

func init() {
	SetLogger(zap.NewNop())
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level           string // DEBUG, INFO, WARN, ERROR
	Format          string // json or console
	DetailedLogging bool   // Enable debug logs and caller info
	TracingEnabled  bool   // Enable OpenTelemetry tracing
}

// Init initializes the global logger and tracer based on environment variables
func Init() error {
	return InitWithConfig(LoadConfigFromEnv())
}

// LoadConfigFromEnv loads logging configuration from environment variables
func LoadConfigFromEnv() LogConfig {
	return LogConfig{
		Level:           getEnvOrDefault("LOG_LEVEL", "INFO"),
		Format:          getEnvOrDefault("LOG_FORMAT", "json"),
		DetailedLogging: getEnvOrDefault("LOG_DETAILED", "false") == "true",
		TracingEnabled:  getEnvOrDefault("LOG_TRACING_ENABLED", "true") == "true",
	}
}

// InitWithConfig initializes the logger and tracer with specific configuration
func InitWithConfig(config LogConfig) error {
	level := parseLogLevel(config.Level)
	if config.DetailedLogging {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(config.Format, "json") {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zap.NewAtomicLevelAt(level))

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if config.DetailedLogging {
		opts = append(opts, zap.AddCaller())
	}
	SetLogger(zap.New(core, opts...))
	detailedLogging = config.DetailedLogging

	if err := trace.Setup(trace.Options{Enabled: config.TracingEnabled, Pretty: true}); err != nil {
		Warn(context.Background(), "Failed to initialize OpenTelemetry tracer, tracing disabled", "error", err)
	}

	return nil
}

// SetLogger replaces the global logger and returns a func restoring the
// previous one. Tests use it to install an observer core.
func SetLogger(l *zap.Logger) (restore func()) {
	prev, prevDetailed := globalLogger, detailedLogging
	globalLogger = l
	sugar = l.Sugar()
	return func() {
		if prev != nil {
			globalLogger = prev
			sugar = prev.Sugar()
		}
		detailedLogging = prevDetailed
	}
}

// SetDetailed toggles debug output without rebuilding the logger.
func SetDetailed(on bool) {
	detailedLogging = on
}

// Shutdown flushes the logger and shuts the tracer provider down
func Shutdown(ctx context.Context) error {
	_ = globalLogger.Sync()
	return trace.Shutdown(ctx)
}

// parseLogLevel converts a string log level to a zap level
func parseLogLevel(level string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// StartSpan starts a new OpenTelemetry span
func StartSpan(ctx context.Context, spanName string, opts ...oteltrace.SpanStartOption) (context.Context, oteltrace.Span) {
	return trace.StartSpan(ctx, spanName, opts...)
}

// Debug logs a debug message
func Debug(ctx context.Context, msg string, args ...interface{}) {
	if !detailedLogging {
		return
	}
	logWithTrace(ctx, zapcore.DebugLevel, msg, 2, args...)
}

// Info logs an info message
func Info(ctx context.Context, msg string, args ...interface{}) {
	logWithTrace(ctx, zapcore.InfoLevel, msg, 2, args...)
}

// Warn logs a warning message
func Warn(ctx context.Context, msg string, args ...interface{}) {
	logWithTrace(ctx, zapcore.WarnLevel, msg, 2, args...)
}

// Error logs an error message
func Error(ctx context.Context, msg string, args ...interface{}) {
	logWithTrace(ctx, zapcore.ErrorLevel, msg, 2, args...)
}

// ErrorWithErr logs an error message with an error object
func ErrorWithErr(ctx context.Context, msg string, err error, args ...interface{}) {
	recordSpanError(ctx, err)
	logWithTrace(ctx, zapcore.ErrorLevel, msg, 2, append([]interface{}{"error", err}, args...)...)
}

// DebugSkip is Debug for helpers; skip counts the helper frames above the caller.
func DebugSkip(ctx context.Context, skip int, msg string, args ...interface{}) {
	if !detailedLogging {
		return
	}
	logWithTrace(ctx, zapcore.DebugLevel, msg, skip+2, args...)
}

// InfoSkip is Info for helpers.
func InfoSkip(ctx context.Context, skip int, msg string, args ...interface{}) {
	logWithTrace(ctx, zapcore.InfoLevel, msg, skip+2, args...)
}

// WarnSkip is Warn for helpers.
func WarnSkip(ctx context.Context, skip int, msg string, args ...interface{}) {
	logWithTrace(ctx, zapcore.WarnLevel, msg, skip+2, args...)
}

// ErrorWithErrSkip is ErrorWithErr for helpers.
func ErrorWithErrSkip(ctx context.Context, skip int, msg string, err error, args ...interface{}) {
	recordSpanError(ctx, err)
	logWithTrace(ctx, zapcore.ErrorLevel, msg, skip+2, append([]interface{}{"error", err}, args...)...)
}

func recordSpanError(ctx context.Context, err error) {
	if err == nil || !trace.Enabled() {
		return
	}
	span := oteltrace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// logWithTrace logs a message with trace ID and span ID if available.
// skip is the number of frames between the real caller and this function.
func logWithTrace(ctx context.Context, level zapcore.Level, msg string, skip int, args ...interface{}) {
	if traceID, spanID, ok := trace.GetTraceFields(ctx); ok {
		args = append([]interface{}{"trace_id", traceID, "span_id", spanID}, args...)
	}

	l := sugar.WithOptions(zap.AddCallerSkip(skip))
	switch level {
	case zapcore.DebugLevel:
		l.Debugw(msg, args...)
	case zapcore.InfoLevel:
		l.Infow(msg, args...)
	case zapcore.WarnLevel:
		l.Warnw(msg, args...)
	default:
		l.Errorw(msg, args...)
	}
}

// spanAttributes converts alternating key/value pairs into span attributes.
// Pairs with a non-string key or an unsupported value type are skipped.
func spanAttributes(fields []interface{}) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case string:
			attrs = append(attrs, attribute.String(key, v))
		case int:
			attrs = append(attrs, attribute.Int(key, v))
		case int64:
			attrs = append(attrs, attribute.Int64(key, v))
		case float64:
			attrs = append(attrs, attribute.Float64(key, v))
		case bool:
			attrs = append(attrs, attribute.Bool(key, v))
		}
	}
	return attrs
}

// OperationTimer helps measure operation duration with OpenTelemetry spans
type OperationTimer struct {
	ctx    context.Context
	span   oteltrace.Span
	start  time.Time
	fields []interface{}
}

// StartOperation starts timing an operation with an OpenTelemetry span
func StartOperation(ctx context.Context, operation string, fields ...interface{}) *OperationTimer {
	var span oteltrace.Span
	if trace.Enabled() {
		ctx, span = StartSpan(ctx, operation)
		span.SetAttributes(spanAttributes(fields)...)
	}

	DebugSkip(ctx, 1, "Operation started", append([]interface{}{"operation", operation}, fields...)...)

	return &OperationTimer{
		ctx:    ctx,
		span:   span,
		start:  time.Now(),
		fields: append([]interface{}{"operation", operation}, fields...),
	}
}

// End completes the operation timer and logs the duration
func (ot *OperationTimer) End(additionalFields ...interface{}) {
	duration := time.Since(ot.start)

	if ot.span != nil {
		ot.span.SetAttributes(attribute.Int64("duration_ms", duration.Milliseconds()))
		ot.span.SetAttributes(spanAttributes(additionalFields)...)
		ot.span.SetStatus(codes.Ok, "completed")
		ot.span.End()
	}

	fields := append(append([]interface{}{}, ot.fields...), "duration_ms", duration.Milliseconds())
	DebugSkip(ot.ctx, 1, "Operation completed", append(fields, additionalFields...)...)
}

// EndWithError completes the operation timer with an error
func (ot *OperationTimer) EndWithError(err error, additionalFields ...interface{}) {
	duration := time.Since(ot.start)

	if ot.span != nil {
		ot.span.SetAttributes(attribute.Int64("duration_ms", duration.Milliseconds()))
		ot.span.RecordError(err)
		ot.span.SetStatus(codes.Error, err.Error())
		ot.span.End()
	}

	fields := append(append([]interface{}{}, ot.fields...), "duration_ms", duration.Milliseconds())
	ErrorWithErrSkip(ot.ctx, 1, "Operation failed", err, append(fields, additionalFields...)...)
}

// GetContext returns the context with the span
func (ot *OperationTimer) GetContext() context.Context {
	return ot.ctx
}

// Analysis logs a completed company analysis (always logged regardless of level)
func Analysis(ctx context.Context, company, grade string, score int, fields ...interface{}) {
	if trace.Enabled() {
		span := oteltrace.SpanFromContext(ctx)
		if span.SpanContext().IsValid() {
			span.AddEvent("company_analyzed", oteltrace.WithAttributes(
				attribute.String("company", company),
				attribute.String("grade", grade),
				attribute.Int("score", score),
			))
		}
	}

	allFields := append([]interface{}{
		"type", "ANALYSIS",
		"company", company,
		"grade", grade,
		"score", score,
	}, fields...)
	logWithTrace(ctx, zapcore.InfoLevel, "Company analyzed", 2, allFields...)
}

// IsDebugEnabled returns whether debug logging is enabled
func IsDebugEnabled() bool {
	return detailedLogging
}

// IsTracingEnabled returns whether tracing is enabled
func IsTracingEnabled() bool {
	return trace.Enabled()
}
