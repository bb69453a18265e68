package jobs

import (
	"context"
	"time"

	"github.com/emrgen/bioref/internal/cache"
	"github.com/emrgen/bioref/internal/store"
	"github.com/sirupsen/logrus"
)

const cacheWarmBatch = 100

// CacheWarmTask loads every ontology term and organism into the cache so
// lookups by GO accession and scientific name rarely reach the database.
type CacheWarmTask struct {
	store store.Store
	cache cache.Cache
	cron  string
}

func NewCacheWarmTask(interval string, store store.Store, cache cache.Cache) *CacheWarmTask {
	return &CacheWarmTask{
		store: store,
		cache: cache,
		cron:  interval,
	}
}

func (c *CacheWarmTask) Name() string {
	return "cache_warm"
}

func (c *CacheWarmTask) Schedule() string {
	return c.cron
}

func (c *CacheWarmTask) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := c.Warm(ctx)
	if err != nil {
		logrus.Errorf("cache warm failed after %d entries: %v", n, err)
		return
	}
	logrus.Infof("cache warm: %d entries", n)
}

// Warm writes the entries in batches and returns how many were written.
func (c *CacheWarmTask) Warm(ctx context.Context) (int, error) {
	written := 0
	batch := make(map[string]any, cacheWarmBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := c.cache.SetMany(ctx, batch); err != nil {
			return err
		}
		written += len(batch)
		batch = make(map[string]any, cacheWarmBatch)
		return nil
	}

	terms, err := c.store.ListOntologyTerms(ctx, nil)
	if err != nil {
		return written, err
	}
	for _, term := range terms {
		batch[cache.TermKey(term.GoID)] = term
		if len(batch) == cacheWarmBatch {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}

	orgs, err := c.store.ListOrganisms(ctx)
	if err != nil {
		return written, err
	}
	for _, org := range orgs {
		batch[cache.OrganismKey(org.BinaryName)] = org
		if len(batch) == cacheWarmBatch {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}

	return written, flush()
}
