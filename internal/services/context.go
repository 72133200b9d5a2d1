package services

import "context"

type contextKey string

const (
	componentKey contextKey = "component"
	indexerKey   contextKey = "indexer"
	seriesIDKey  contextKey = "series_id"
	requestIDKey contextKey = "request_id"
)

// WithComponent annotates context with the active component name.
func WithComponent(ctx context.Context, component string) context.Context {
	if component == "" {
		return ctx
	}
	return context.WithValue(ctx, componentKey, component)
}

// ComponentFromContext returns the component name if present.
func ComponentFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(componentKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithIndexer annotates context with the indexer name being queried.
func WithIndexer(ctx context.Context, indexer string) context.Context {
	if indexer == "" {
		return ctx
	}
	return context.WithValue(ctx, indexerKey, indexer)
}

// IndexerFromContext returns the indexer name if present.
func IndexerFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(indexerKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSeriesID annotates context with the series identifier being reconciled.
func WithSeriesID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, seriesIDKey, id)
}

// SeriesIDFromContext returns the series identifier if present.
func SeriesIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(seriesIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
