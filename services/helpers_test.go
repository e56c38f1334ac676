package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"places-api/cache"
	"places-api/models"
	"places-api/provider"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// An in-memory sqlite database exists per connection; pin the pool to one
	// so every query sees the same database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	err = db.AutoMigrate(
		&models.User{},
		&models.Merchant{},
		&models.Place{},
		&models.Review{},
		&models.Favorite{},
		&models.Rating{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

type fakeProvider struct {
	docs  map[string]*provider.PlaceDetails
	err   error
	calls int
}

func (f *fakeProvider) FetchDetails(_ context.Context, id string) (*provider.PlaceDetails, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	doc, ok := f.docs[id]
	if !ok {
		return nil, provider.ErrNotFound
	}
	return doc, nil
}

// trackingCache counts tier accesses so tests can assert bypass semantics
type trackingCache struct {
	inner cache.Store
	mu    sync.Mutex
	gets  int
	sets  int
}

func newTrackingCache() *trackingCache {
	return &trackingCache{inner: cache.NewMemoryStore()}
}

func (c *trackingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	c.gets++
	c.mu.Unlock()
	return c.inner.Get(ctx, key)
}

func (c *trackingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.inner.Set(ctx, key, value, ttl)
}

type recordingPublisher struct {
	mu       sync.Mutex
	upserted []string
}

func (p *recordingPublisher) PlaceUpserted(_ context.Context, placeID string) {
	p.mu.Lock()
	p.upserted = append(p.upserted, placeID)
	p.mu.Unlock()
}

func boolPtr(b bool) *bool { return &b }
func intPtr(v int) *int    { return &v }

// sampleDoc mirrors the canonical provider response used across scenarios:
// moderate price, one review whose original text is empty but whose primary
// text is set, and allowsDogs absent.
func sampleDoc(id string) *provider.PlaceDetails {
	return &provider.PlaceDetails{
		ID:               id,
		DisplayName:      &provider.LocalizedText{Text: "Griddle House"},
		Location:         &provider.LatLng{Latitude: 40.71, Longitude: -74.0},
		FormattedAddress: "1 Main St, New York, NY",
		PriceLevel:       "PRICE_LEVEL_MODERATE",
		Rating:           4.4,
		UserRatingCount:  219,
		Delivery:         boolPtr(true),
		Reviews: []provider.Review{
			{
				Name:                           "places/" + id + "/reviews/rev_a",
				Rating:                         5,
				Text:                           &provider.LocalizedText{Text: "Great!"},
				OriginalText:                   &provider.LocalizedText{Text: ""},
				RelativePublishTimeDescription: "2 weeks ago",
			},
		},
	}
}

type fixture struct {
	db        *gorm.DB
	provider  *fakeProvider
	cache     *trackingCache
	publisher *recordingPublisher
	resolver  *Resolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		db:        newTestDB(t),
		provider:  &fakeProvider{docs: map[string]*provider.PlaceDetails{}},
		cache:     newTrackingCache(),
		publisher: &recordingPublisher{},
	}
	f.resolver = NewResolver(f.db, f.cache, f.provider, f.publisher, time.Minute, zerolog.Nop())
	return f
}
