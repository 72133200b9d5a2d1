package logging

import (
	"context"
	"log/slog"

	"showlink/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldIndexer is the standardized structured logging key for indexer names.
	FieldIndexer = "indexer"
	// FieldSeriesID is the standardized structured logging key for series identifiers.
	FieldSeriesID = "series_id"
	// FieldExternalKey is the standardized structured logging key for external ID keys (e.g. imdb_id).
	FieldExternalKey = "external_key"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 4)
	if component, ok := services.ComponentFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldComponent, component))
	}
	if indexer, ok := services.IndexerFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldIndexer, indexer))
	}
	if id, ok := services.SeriesIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSeriesID, id))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
