package indexers

import "context"

// ExternalSearcher resolves additional external IDs for a show from whatever
// subset of IDs the caller already has. Implementations return only the keys
// they discovered; a lookup with no usable input or no match returns an empty
// set and no error.
type ExternalSearcher interface {
	GetIDByExternal(ctx context.Context, externals Externals) (Externals, error)
}
