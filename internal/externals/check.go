package externals

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"showlink/internal/indexers"
	"showlink/internal/library"
	"showlink/internal/logging"
	"showlink/internal/services"
)

// ErrShowExists marks a duplicate conflict found by CheckExisting.
var ErrShowExists = errors.New("show already in library")

// ConflictError reports that a show being added already exists in the
// library under another indexer.
type ConflictError struct {
	// Existing is the library show that matched.
	Existing *library.Show
	// Candidate is the indexer the show was about to be added through.
	Candidate indexers.Indexer
	// Key is the external ID key that matched.
	Key string
	// Value is the matching ID.
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s was already added by %s (%s=%s), remove it before adding it through %s",
		e.Existing.Title, e.Existing.Indexer.Name(), e.Key, e.Value, e.Candidate.Name())
}

func (e *ConflictError) Unwrap() error {
	return ErrShowExists
}

// Checker answers duplicate and membership questions against the library.
type Checker struct {
	resolver *Resolver
	store    *library.Store
	logger   *slog.Logger
}

// NewChecker builds a checker over the given resolver and library store.
func NewChecker(resolver *Resolver, store *library.Store) (*Checker, error) {
	if resolver == nil {
		return nil, services.Wrap(services.ErrConfiguration, "externals", "new checker", "resolver is required", nil)
	}
	if store == nil {
		return nil, services.Wrap(services.ErrConfiguration, "externals", "new checker", "library store is required", nil)
	}
	return &Checker{resolver: resolver, store: store, logger: resolver.logger}, nil
}

// CheckExisting verifies that the show identified by (origin, seriesID) is
// not already in the library under any indexer. The native ID is merged into
// the seed so a bare (origin, seriesID) pair still drives the indexer sweep,
// then the aggregated set is compared against each library show: a show on
// any indexer conflicts when its external ID for the origin's key equals
// seriesID, and a show on a different indexer conflicts when any aggregated
// external ID matches one of its own. The first conflict is returned as a
// *ConflictError wrapping ErrShowExists. On success the aggregated set is
// returned so callers can persist it without a second sweep.
func (c *Checker) CheckExisting(ctx context.Context, origin indexers.Indexer, seriesID string, seed indexers.Externals) (indexers.Externals, error) {
	if !indexers.Known(origin) {
		return nil, services.Wrap(services.ErrValidation, "externals", "check existing", fmt.Sprintf("unknown indexer %d", int(origin)), nil)
	}
	if seriesID == "" {
		return nil, services.Wrap(services.ErrValidation, "externals", "check existing", "series id must not be empty", nil)
	}

	withNative := seed.Clone()
	withNative[origin.MappedTo()] = seriesID

	merged, err := c.resolver.Resolve(ctx, origin, withNative)
	if err != nil {
		return nil, err
	}

	shows, err := c.store.ListShows(ctx)
	if err != nil {
		return nil, err
	}

	logger := logging.WithContext(ctx, c.logger)
	originKey := origin.MappedTo()
	for _, show := range shows {
		if value := show.Externals.Get(originKey); value != "" && value == seriesID {
			logger.DebugContext(ctx, "show already in library",
				logging.Int64("show_id", show.ID),
				logging.String(logging.FieldExternalKey, originKey))
			return nil, &ConflictError{Existing: show, Candidate: origin, Key: originKey, Value: value}
		}
		if show.Indexer == origin {
			continue
		}
		for _, key := range merged.Keys() {
			value := merged.Get(key)
			if value == "" {
				continue
			}
			if show.Externals.Get(key) == value {
				logger.DebugContext(ctx, "show already in library under external id",
					logging.Int64("show_id", show.ID),
					logging.String(logging.FieldExternalKey, key))
				return nil, &ConflictError{Existing: show, Candidate: origin, Key: key, Value: value}
			}
		}
	}
	return merged, nil
}

// ShowInLibrary looks up the library show linked to (ix, seriesID) through
// the persisted ID mappings. It returns nil without error when no mapping
// or no matching show exists.
func (c *Checker) ShowInLibrary(ctx context.Context, ix indexers.Indexer, seriesID string) (*library.Show, error) {
	if !indexers.Known(ix) {
		return nil, services.Wrap(services.ErrValidation, "externals", "show in library", fmt.Sprintf("unknown indexer %d", int(ix)), nil)
	}
	externals, err := c.store.LoadExternals(ctx, ix, seriesID)
	if err != nil {
		return nil, err
	}
	if len(externals) == 0 {
		return nil, nil
	}
	shows, err := c.store.ListShows(ctx)
	if err != nil {
		return nil, err
	}
	for _, show := range shows {
		if key := show.Indexer.MappedTo(); externals.Get(key) == show.SeriesID && show.SeriesID != "" {
			return show, nil
		}
	}
	return nil, nil
}
