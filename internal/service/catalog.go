package service

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"gameboxd/backend/internal/rawg"
)

// Catalog is the slice of the provider client the enrichment helpers need.
// *rawg.Client satisfies it; tests and catalog-less wiring pass nil.
type Catalog interface {
	Game(ctx context.Context, id string) (*rawg.GameDetails, error)
}

// gameRefs resolves minimal game records for a set of ids, fetching distinct
// ids concurrently through the provider client (and so through its cache).
// Resolution is best effort: a game the provider cannot serve is simply left
// without a record rather than failing the whole read.
func gameRefs(ctx context.Context, catalog Catalog, ids []string) map[string]*rawg.GameRef {
	if catalog == nil || len(ids) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(ids))
	var distinct []string
	for _, id := range ids {
		if id != "" && !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}

	var mu sync.Mutex
	refs := make(map[string]*rawg.GameRef, len(distinct))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(5)
	for _, id := range distinct {
		g.Go(func() error {
			details, err := catalog.Game(gctx, id)
			if err != nil {
				return nil
			}
			mu.Lock()
			refs[id] = &rawg.GameRef{
				ID:              id,
				Name:            details.Name,
				BackgroundImage: details.BackgroundImage,
				Released:        details.Released,
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return refs
}
