package dataset

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"company-analyzer/internal/interfaces"
	"company-analyzer/internal/logger"
	"company-analyzer/internal/types"
)

// DefaultTTL is how long a loaded database is served before reloading.
const DefaultTTL = 30 * time.Minute

// RetryAfter is how long a stale copy is served after a failed reload
// before the source is tried again. Capped by the store's TTL.
const RetryAfter = 30 * time.Second

// snapshot is one loaded database plus its folded name list.
type snapshot struct {
	db     *types.FinancialDatabase
	folded []string
}

// Store caches the financial database loaded from a source and answers
// lookups against it. When a reload fails the previous copy is served.
type Store struct {
	source interfaces.DatabaseSource
	ttl    time.Duration
	now    func() time.Time

	group  singleflight.Group
	mu     sync.RWMutex
	cached *snapshot
	expiry time.Time
}

// NewStore creates a store over source. A ttl of zero uses DefaultTTL.
func NewStore(source interfaces.DatabaseSource, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Store) fresh(now time.Time) *snapshot {
	if s.cached != nil && now.Before(s.expiry) {
		return s.cached
	}
	return nil
}

func (s *Store) load(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	snap, stale := s.fresh(s.now()), s.cached
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	// One reload runs at a time and outlives the caller that started it.
	ch := s.group.DoChan("load", func() (interface{}, error) {
		return s.reload(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*snapshot), nil
	case <-ctx.Done():
		if stale != nil {
			return stale, nil
		}
		return nil, ctx.Err()
	}
}

// reload fetches the database from the source and swaps it in. On failure
// the cached copy, if any, stays in service until RetryAfter elapses.
func (s *Store) reload(ctx context.Context) (*snapshot, error) {
	// A reload that finished just before this one started is reused.
	s.mu.RLock()
	snap := s.fresh(s.now())
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	op := logger.StartOperation(ctx, "dataset.load", "source", s.source.Describe())
	db, err := s.source.Load(op.GetContext())

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()

	if err != nil {
		op.EndWithError(err)
		if s.cached != nil {
			s.expiry = now.Add(min(s.ttl, RetryAfter))
			logger.Warn(ctx, "Database reload failed, serving cached copy",
				"source", s.source.Describe(),
				"retry_in", min(s.ttl, RetryAfter).String())
			return s.cached, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}
	op.End("companies", db.Metadata.TotalCompanies)

	s.cached = &snapshot{db: db, folded: foldAll(db.SearchIndex.CompanyNames)}
	s.expiry = now.Add(s.ttl)
	logger.Info(ctx, "Financial database loaded",
		"source", s.source.Describe(),
		"companies", db.Metadata.TotalCompanies,
		"buildDate", db.Metadata.BuildDate)

	return s.cached, nil
}

// Database returns the current database, loading it when the cache is
// empty or expired.
func (s *Store) Database(ctx context.Context) (*types.FinancialDatabase, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.db, nil
}

// ClearCache drops the cached database; the next query reloads.
func (s *Store) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.expiry = time.Time{}
}

// CacheStatus reports whether a copy is cached and how long until it expires.
func (s *Store) CacheStatus() interfaces.CacheStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiresIn := s.expiry.Sub(s.now())
	if expiresIn < 0 {
		expiresIn = 0
	}
	return interfaces.CacheStatus{
		HasCache:  s.cached != nil,
		ExpiresIn: expiresIn,
	}
}
