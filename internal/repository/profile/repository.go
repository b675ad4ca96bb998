// Package profile memoizes per-resume skill analyses so repeated insight
// and chat requests for the same resume skip the extraction round-trip.
package profile

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/careerlens/careerlens/internal/db"
	"github.com/careerlens/careerlens/internal/domain"
)

var profileKeyPrefix = domain.KeyPrefix + "profile:"

// store is the consumer interface for the profile cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Repository caches resume skill analyses keyed by resume content hash.
type Repository struct {
	store  store
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a Repository with the given entry TTL.
func New(s store, ttl time.Duration, logger *zap.Logger) *Repository {
	return &Repository{store: s, ttl: ttl, logger: logger}
}

// Get returns the cached analysis for the resume, if present. Store errors
// degrade to a miss.
func (r *Repository) Get(ctx context.Context, resume string) (string, bool) {
	key := profileKey(resume)

	data, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			r.logger.Warn("Failed to read cached profile", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// Put stores the analysis for the resume. Write failures are logged, not
// returned: the cache is best-effort.
func (r *Repository) Put(ctx context.Context, resume, analysis string) {
	key := profileKey(resume)
	if err := r.store.SetWithTTL(ctx, key, []byte(analysis), r.ttl); err != nil {
		r.logger.Warn("Failed to cache profile", zap.String("key", key), zap.Error(err))
	}
}

// profileKey derives the cache key from the full resume text, so any edit
// to the resume produces a fresh profile.
func profileKey(resume string) string {
	h := sha256.Sum256([]byte(resume))
	return fmt.Sprintf("%s%s", profileKeyPrefix, hex.EncodeToString(h[:]))
}
