// Package jobs holds background work run alongside the HTTP server.
package jobs

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-company-repository/internal/logger"
	"github.com/goliatone/go-company-repository/repository"
)

// CacheWarmer preloads the cached reads so the first requests after startup
// hit the cache. It only reads; filling happens inside the cached repository.
type CacheWarmer struct {
	repo        repository.CompanyRepository
	concurrency int
	log         *logger.Logger
}

func NewCacheWarmer(repo repository.CompanyRepository, concurrency int, log *logger.Logger) *CacheWarmer {
	if concurrency < 1 {
		concurrency = 1
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &CacheWarmer{
		repo:        repo,
		concurrency: concurrency,
		log:         log.With("job", "cache_warmer"),
	}
}

// Run loads the company list and then every company by id, with at most
// concurrency lookups in flight. It returns the number of companies warmed
// and stops at the first error.
func (w *CacheWarmer) Run(ctx context.Context) (int, error) {
	companies, err := w.repo.GetCompanies(ctx)
	if err != nil {
		return 0, fmt.Errorf("warm company list: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	for _, c := range companies {
		id := c.ID
		g.Go(func() error {
			if _, err := w.repo.GetCompany(gctx, id); err != nil {
				return fmt.Errorf("warm company %d: %w", id, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		w.log.Warn("cache warm-up aborted", "error", err)
		return 0, err
	}

	w.log.Info("cache warm-up complete", "companies", len(companies))
	return len(companies), nil
}
