package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"places-api/cache"
	"places-api/events"
	"places-api/models"
	"places-api/provider"
	"places-api/transform"
)

const placeCacheFeature = "place-details"

// Resolver materializes place detail views through the tiered pipeline:
// cache, then durable store, then external provider with write-back. The
// cache is advisory; the store is the source of truth; ordering is always
// store-then-cache.
type Resolver struct {
	db       *gorm.DB
	cache    cache.Store
	provider provider.Client
	events   events.Publisher
	ttl      time.Duration
	log      zerolog.Logger
}

func NewResolver(db *gorm.DB, cacheStore cache.Store, providerClient provider.Client, publisher events.Publisher, ttl time.Duration, log zerolog.Logger) *Resolver {
	return &Resolver{
		db:       db,
		cache:    cacheStore,
		provider: providerClient,
		events:   publisher,
		ttl:      ttl,
		log:      log,
	}
}

// Resolve returns the detail view for a place id and whether it was served
// from cache. With bypassCache the cache tier is never consulted (it is still
// repopulated on the way out).
func (r *Resolver) Resolve(ctx context.Context, id string, bypassCache bool) (*provider.PlaceDetails, bool, error) {
	if id == "" {
		return nil, false, E(KindValidation, "placeId is required")
	}
	key := cache.Key(placeCacheFeature, id)

	if !bypassCache {
		if doc := r.cacheLookup(ctx, key); doc != nil {
			return doc, true, nil
		}
	}

	// Durable store tier
	place, reviews, err := r.loadStored(ctx, r.db, id)
	if err != nil {
		return nil, false, err
	}
	if place != nil {
		doc := transform.ToExternal(place, reviews)
		r.fillCache(ctx, key, doc)
		return doc, false, nil
	}

	// Provider tier: fetch, persist, re-read what is now durable
	if err := r.fetchAndPersist(ctx, r.db, id); err != nil {
		return nil, false, err
	}
	place, reviews, err = r.loadStored(ctx, r.db, id)
	if err != nil {
		return nil, false, err
	}
	if place == nil {
		return nil, false, E(KindInternal, "place missing after persist")
	}

	doc := transform.ToExternal(place, reviews)
	r.fillCache(ctx, key, doc)
	r.events.PlaceUpserted(ctx, id)
	return doc, false, nil
}

// EnsurePlace returns the Place row for id, materializing it from the
// provider when absent. It runs against the given db handle so callers can
// scope it inside their own transaction. The cache is not touched here.
func (r *Resolver) EnsurePlace(ctx context.Context, db *gorm.DB, id string) (*models.Place, error) {
	place, _, err := r.loadStored(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if place != nil {
		return place, nil
	}
	if err := r.fetchAndPersist(ctx, db, id); err != nil {
		return nil, err
	}
	place, _, err = r.loadStored(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, E(KindInternal, "place missing after persist")
	}
	r.events.PlaceUpserted(ctx, id)
	return place, nil
}

// cacheLookup returns nil on miss. Lookup or decode failures count as misses,
// never as errors.
func (r *Resolver) cacheLookup(ctx context.Context, key string) *provider.PlaceDetails {
	raw, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("cache lookup failed, treating as miss")
		return nil
	}
	if !ok {
		return nil
	}
	var doc provider.PlaceDetails
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("corrupt cache entry, treating as miss")
		return nil
	}
	return &doc
}

// fillCache is best-effort; failures are logged and swallowed
func (r *Resolver) fillCache(ctx context.Context, key string, doc *provider.PlaceDetails) {
	payload, err := json.Marshal(doc)
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("failed to marshal cache value")
		return
	}
	if err := r.cache.Set(ctx, key, payload, r.ttl); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("cache populate failed")
	}
}

// loadStored fetches a place with its reviews; a missing row is (nil, nil, nil)
func (r *Resolver) loadStored(ctx context.Context, db *gorm.DB, id string) (*models.Place, []models.Review, error) {
	var place models.Place
	err := db.WithContext(ctx).Preload("Reviews").First(&place, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, wrap(KindInternal, "failed to load place", err)
	}
	return &place, place.Reviews, nil
}

// fetchAndPersist pulls the provider document and writes place + reviews in
// one transaction. The create is an idempotent upsert keyed by id: a
// concurrent resolution racing on the same id leaves the winner's row intact
// and the loser's write a no-op.
func (r *Resolver) fetchAndPersist(ctx context.Context, db *gorm.DB, id string) error {
	doc, err := r.provider.FetchDetails(ctx, id)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return E(KindNotFound, "place not found")
		}
		return wrap(KindInternal, "provider fetch failed", err)
	}

	place, reviews, err := transform.ToInternal(doc)
	if err != nil {
		return wrap(KindInternal, "invalid provider document", err)
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(place).Error; err != nil {
			return err
		}
		if len(reviews) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&reviews).Error
	})
	if err != nil {
		return wrap(KindInternal, "failed to persist place", err)
	}

	r.log.Info().Str("place_id", id).Int("reviews", len(reviews)).Msg("place materialized from provider")
	return nil
}
