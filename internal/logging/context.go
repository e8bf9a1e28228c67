package logging

import (
	"context"

	"go.uber.org/zap"
)

type transcriptCtxKey struct{}
type requestCtxKey struct{}
type loggerCtxKey struct{}

// ContextFields extracts correlation identifiers from context.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if id := TranscriptIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("transcript.id", id))
	}
	if id := RequestIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("request.id", id))
	}
	return fields
}

// WithTranscriptID tags the context with the transcript being processed.
func WithTranscriptID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, transcriptCtxKey{}, id)
}

// TranscriptIDFromContext extracts the transcript ID, or "".
func TranscriptIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(transcriptCtxKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID tags the context with an HTTP request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestCtxKey{}, id)
}

// RequestIDFromContext extracts the request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestCtxKey{}).(string); ok {
		return id
	}
	return ""
}

// WithLogger stores the logger in context.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// FromContext retrieves the logger from context, or a nop logger.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*Logger); ok {
		return l
	}
	return NewNop()
}
