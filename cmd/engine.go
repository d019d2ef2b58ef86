package cmd

import (
	"fmt"
	"time"

	"github.com/certivault/pdp-engine/config"
	"github.com/certivault/pdp-engine/pdp"
	"github.com/certivault/pdp-engine/retrieval"
	"github.com/certivault/pdp-engine/store"
)

// engine bundles the assembled service with the resources it owns.
type engine struct {
	service   *pdp.Service
	records   *store.Store
	localfs   *retrieval.LocalStore
	cache     *retrieval.CachingRetriever
	challenge int
}

func (e *engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
	if e.records != nil {
		_ = e.records.Close()
	}
}

// buildEngine wires the retrieval chain and record store into a service.
// The chain is local filesystem, then per-call timeout, then an in-memory
// cache of verified payloads.
func buildEngine(cfg *config.Config) (*engine, error) {
	records, err := store.NewStore(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}

	localfs, err := retrieval.NewLocalStore(cfg.Retrieval.Dir)
	if err != nil {
		_ = records.Close()
		return nil, fmt.Errorf("open content store: %w", err)
	}

	timeout := retrieval.NewTimeoutRetriever(localfs, time.Duration(cfg.Retrieval.TimeoutSeconds)*time.Second)

	cache, err := retrieval.NewCachingRetriever(timeout, cfg.Retrieval.CacheMaxBytes)
	if err != nil {
		_ = records.Close()
		return nil, fmt.Errorf("build retrieval cache: %w", err)
	}

	service, err := pdp.NewService(cache, records)
	if err != nil {
		cache.Close()
		_ = records.Close()
		return nil, err
	}

	return &engine{
		service:   service,
		records:   records,
		localfs:   localfs,
		cache:     cache,
		challenge: cfg.Engine.ChallengeCount,
	}, nil
}
