package externals

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"showlink/internal/indexers"
	"showlink/internal/logging"
	"showlink/internal/services"
	"showlink/internal/trakt"
)

// traktIDTypes maps external ID keys to the id_type segment Trakt's
// search-by-id endpoint expects. Keys without an entry cannot seed a
// Trakt lookup. Order matters: earlier keys are tried first.
var traktIDTypes = []struct {
	key    string
	idType string
}{
	{indexers.KeyTVDB, "tvdb"},
	{indexers.KeyIMDB, "imdb"},
	{indexers.KeyTMDB, "tmdb"},
	{indexers.KeyTrakt, "trakt"},
}

// Resolver aggregates external IDs for a show across indexers.
type Resolver struct {
	registry *indexers.Registry
	trakt    trakt.Searcher
	logger   *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTrakt enables the Trakt fallback lookup.
func WithTrakt(searcher trakt.Searcher) ResolverOption {
	return func(r *Resolver) {
		r.trakt = searcher
	}
}

// NewResolver builds a resolver over the given indexer registry.
func NewResolver(registry *indexers.Registry, logger *slog.Logger, opts ...ResolverOption) (*Resolver, error) {
	if registry == nil {
		return nil, services.Wrap(services.ErrConfiguration, "externals", "new resolver", "indexer registry is required", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	resolver := &Resolver{
		registry: registry,
		logger:   logging.NewComponentLogger(logger, "externals"),
	}
	for _, opt := range opts {
		opt(resolver)
	}
	return resolver, nil
}

// Resolve probes every other indexer for additional external IDs, starting
// from the seed set the origin indexer reported. Each probe receives the IDs
// accumulated so far minus the probed indexer's own key, and later answers
// overwrite earlier ones. Indexer failures are logged and skipped. When a
// Trakt searcher is configured its IDs are merged in last.
func (r *Resolver) Resolve(ctx context.Context, origin indexers.Indexer, seed indexers.Externals) (indexers.Externals, error) {
	if !indexers.Known(origin) {
		return nil, services.Wrap(services.ErrValidation, "externals", "resolve", fmt.Sprintf("unknown indexer %d", int(origin)), nil)
	}
	logger := logging.WithContext(ctx, r.logger)
	merged := seed.Clone()

	for _, other := range indexers.Others(origin) {
		if !other.HasAPI() {
			continue
		}
		searcher, err := r.registry.SearcherFor(other)
		if err != nil {
			logger.DebugContext(ctx, "indexer not configured, skipping",
				logging.String(logging.FieldIndexer, other.Slug()))
			continue
		}
		found, err := searcher.GetIDByExternal(ctx, merged.Without(other.MappedTo()))
		if err != nil {
			if services.IsSoft(err) {
				logger.DebugContext(ctx, "indexer unavailable, skipping",
					logging.String(logging.FieldIndexer, other.Slug()),
					logging.Error(err))
			} else {
				logger.WarnContext(ctx, "indexer lookup failed, continuing without it",
					logging.String(logging.FieldIndexer, other.Slug()),
					logging.Error(err))
			}
			continue
		}
		merged.Update(found)
	}

	if r.trakt != nil {
		merged.Update(r.traktExternals(ctx, merged))
	}
	return merged, nil
}

// traktExternals asks Trakt for the IDs it knows, seeded by the first
// aggregated key Trakt can search on. Trakt failures yield an empty set.
func (r *Resolver) traktExternals(ctx context.Context, known indexers.Externals) indexers.Externals {
	logger := logging.WithContext(ctx, r.logger)
	for _, candidate := range traktIDTypes {
		id := known.Get(candidate.key)
		if id == "" {
			continue
		}
		results, err := r.trakt.SearchShowByID(ctx, candidate.idType, id)
		if err != nil {
			logger.WarnContext(ctx, "trakt lookup failed, continuing without it",
				logging.String(logging.FieldExternalKey, candidate.key),
				logging.Error(err))
			return indexers.Externals{}
		}
		if len(results) == 0 {
			continue
		}
		return traktToExternals(results[0].Show.IDs)
	}
	return indexers.Externals{}
}

// traktToExternals translates a Trakt ID block into external ID keys,
// dropping zero values.
func traktToExternals(ids trakt.IDs) indexers.Externals {
	externals := indexers.Externals{}
	if ids.Trakt != 0 {
		externals[indexers.KeyTrakt] = strconv.FormatInt(ids.Trakt, 10)
	}
	if ids.TVDB != 0 {
		externals[indexers.KeyTVDB] = strconv.FormatInt(ids.TVDB, 10)
	}
	if ids.TMDB != 0 {
		externals[indexers.KeyTMDB] = strconv.FormatInt(ids.TMDB, 10)
	}
	if ids.IMDB != "" {
		externals[indexers.KeyIMDB] = ids.IMDB
	}
	return externals
}
