package services_test

import (
	"context"
	"testing"

	"showlink/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithComponent(ctx, "resolver")
	ctx = services.WithIndexer(ctx, "tvdb")
	ctx = services.WithSeriesID(ctx, "12345")
	ctx = services.WithRequestID(ctx, "req-123")

	if component, ok := services.ComponentFromContext(ctx); !ok || component != "resolver" {
		t.Fatalf("unexpected component: %v %v", component, ok)
	}
	if indexer, ok := services.IndexerFromContext(ctx); !ok || indexer != "tvdb" {
		t.Fatalf("unexpected indexer: %v %v", indexer, ok)
	}
	if id, ok := services.SeriesIDFromContext(ctx); !ok || id != "12345" {
		t.Fatalf("unexpected series id: %v %v", id, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithIndexer(ctx, "")
	if _, ok := services.IndexerFromContext(ctx); ok {
		t.Fatal("expected no indexer value")
	}
}
