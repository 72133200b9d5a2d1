package indexers

import (
	"context"
	"strconv"

	"showlink/internal/indexers/tmdb"
	"showlink/internal/indexers/tvdb"
	"showlink/internal/indexers/tvmaze"
	"showlink/internal/services"
)

// tvdbSearcher resolves a TheTVDB series ID from an IMDb ID.
type tvdbSearcher struct {
	client tvdb.Searcher
}

func (s *tvdbSearcher) GetIDByExternal(ctx context.Context, externals Externals) (Externals, error) {
	found := Externals{}
	imdbID := externals.Get(KeyIMDB)
	if imdbID == "" {
		return found, nil
	}

	series, err := s.client.SearchByIMDB(ctx, imdbID)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "tvdb", "search by imdb", "", err)
	}
	if len(series) > 0 && series[0].ID > 0 {
		found[KeyTVDB] = strconv.FormatInt(series[0].ID, 10)
	}
	return found, nil
}

// tmdbSearcher resolves a TMDB series ID from an IMDb or TheTVDB ID.
type tmdbSearcher struct {
	client tmdb.Finder
}

func (s *tmdbSearcher) GetIDByExternal(ctx context.Context, externals Externals) (Externals, error) {
	found := Externals{}
	attempts := []struct {
		key    string
		source string
	}{
		{KeyIMDB, tmdb.SourceIMDB},
		{KeyTVDB, tmdb.SourceTVDB},
	}

	for _, attempt := range attempts {
		value := externals.Get(attempt.key)
		if value == "" {
			continue
		}
		resp, err := s.client.FindByExternalID(ctx, value, attempt.source)
		if err != nil {
			return nil, services.Wrap(services.ErrTransient, "tmdb", "find by "+attempt.key, "", err)
		}
		if resp != nil && len(resp.TVResults) > 0 && resp.TVResults[0].ID > 0 {
			found[KeyTMDB] = strconv.FormatInt(resp.TVResults[0].ID, 10)
			return found, nil
		}
	}
	return found, nil
}

// tvmazeSearcher resolves a TVmaze show from an IMDb or TheTVDB ID. A TVmaze
// hit also carries the show's own externals, so one lookup can fill several
// keys at once.
type tvmazeSearcher struct {
	client tvmaze.Looker
}

func (s *tvmazeSearcher) GetIDByExternal(ctx context.Context, externals Externals) (Externals, error) {
	found := Externals{}
	lookup := tvmaze.Lookup{
		IMDB: externals.Get(KeyIMDB),
		TVDB: externals.Get(KeyTVDB),
	}
	if lookup.IMDB == "" && lookup.TVDB == "" {
		return found, nil
	}

	show, err := s.client.LookupShow(ctx, lookup)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "tvmaze", "lookup show", "", err)
	}
	if show == nil {
		return found, nil
	}

	if show.ID > 0 {
		found[KeyTVmaze] = strconv.FormatInt(show.ID, 10)
	}
	if show.Externals.TheTVDB > 0 {
		found[KeyTVDB] = strconv.FormatInt(show.Externals.TheTVDB, 10)
	}
	if show.Externals.IMDB != "" {
		found[KeyIMDB] = show.Externals.IMDB
	}
	return found, nil
}
