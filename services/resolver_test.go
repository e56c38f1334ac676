package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"places-api/models"
)

func TestResolveUnknownPlaceFetchesAndCaches(t *testing.T) {
	f := newFixture(t)
	f.provider.docs["place_1"] = sampleDoc("place_1")
	ctx := context.Background()

	detail, cacheHit, err := f.resolver.Resolve(ctx, "place_1", false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cacheHit {
		t.Errorf("first resolve must not be a cache hit")
	}
	if detail.ID != "place_1" {
		t.Errorf("unexpected detail id %q", detail.ID)
	}

	// End-to-end expectations for the canonical document
	level, _ := detailPriceLevel(t, f, "place_1")
	if level == nil || *level != 2 {
		t.Errorf("expected price level 2, got %v", level)
	}
	if detail.AllowsDogs == nil || *detail.AllowsDogs {
		t.Errorf("absent allowsDogs must resolve to false")
	}
	if len(detail.Reviews) != 1 || detail.Reviews[0].Text.Text != "Great!" {
		t.Errorf("expected exactly one review with text \"Great!\", got %+v", detail.Reviews)
	}

	// Second resolve is served from cache with identical data
	again, cacheHit, err := f.resolver.Resolve(ctx, "place_1", false)
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if !cacheHit {
		t.Errorf("second resolve should hit the cache")
	}
	if !reflect.DeepEqual(detail, again) {
		t.Errorf("cache hit returned different data:\nfirst:  %+v\nsecond: %+v", detail, again)
	}
	if f.provider.calls != 1 {
		t.Errorf("provider should be called once, got %d", f.provider.calls)
	}
}

func detailPriceLevel(t *testing.T, f *fixture, id string) (*int, bool) {
	t.Helper()
	var place models.Place
	if err := f.db.First(&place, "id = ?", id).Error; err != nil {
		t.Fatalf("load place: %v", err)
	}
	return place.PriceLevel, place.IsFree
}

func TestResolveBypassNeverQueriesCache(t *testing.T) {
	f := newFixture(t)
	f.provider.docs["place_1"] = sampleDoc("place_1")
	ctx := context.Background()

	// Warm the cache first
	if _, _, err := f.resolver.Resolve(ctx, "place_1", false); err != nil {
		t.Fatalf("warmup Resolve: %v", err)
	}
	getsBefore := f.cache.gets

	detail, cacheHit, err := f.resolver.Resolve(ctx, "place_1", true)
	if err != nil {
		t.Fatalf("bypass Resolve: %v", err)
	}
	if cacheHit {
		t.Errorf("bypass resolve must not report a cache hit")
	}
	if detail.ID != "place_1" {
		t.Errorf("unexpected detail id %q", detail.ID)
	}
	if f.cache.gets != getsBefore {
		t.Errorf("bypass resolve queried the cache tier")
	}
}

func TestResolveStoreHitPopulatesCache(t *testing.T) {
	f := newFixture(t)
	f.provider.docs["place_1"] = sampleDoc("place_1")
	ctx := context.Background()

	if _, _, err := f.resolver.Resolve(ctx, "place_1", false); err != nil {
		t.Fatalf("warmup Resolve: %v", err)
	}
	setsBefore := f.cache.sets

	// Bypass skips the read but still refreshes the cache afterwards
	if _, _, err := f.resolver.Resolve(ctx, "place_1", true); err != nil {
		t.Fatalf("bypass Resolve: %v", err)
	}
	if f.cache.sets <= setsBefore {
		t.Errorf("store hit should repopulate the cache")
	}
}

func TestResolveProviderNotFoundIsFatal(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.resolver.Resolve(context.Background(), "missing", false)
	if err == nil {
		t.Fatal("expected error for unknown place")
	}
	if KindOf(err) != KindNotFound {
		t.Errorf("expected KindNotFound, got %v", KindOf(err))
	}
	var count int64
	f.db.Model(&models.Place{}).Count(&count)
	if count != 0 {
		t.Errorf("no partial record may be created, found %d places", count)
	}
}

func TestResolveProviderFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	f.provider.err = errors.New("upstream exploded")
	_, _, err := f.resolver.Resolve(context.Background(), "place_1", false)
	if err == nil {
		t.Fatal("expected error when provider fails")
	}
	if KindOf(err) != KindInternal {
		t.Errorf("expected KindInternal, got %v", KindOf(err))
	}
}

func TestResolveEmptyIDIsValidationError(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.resolver.Resolve(context.Background(), "", false)
	if KindOf(err) != KindValidation {
		t.Fatalf("expected KindValidation, got %v", err)
	}
}

func TestResolveSkipsReviewInsertWhenNoneSurvive(t *testing.T) {
	f := newFixture(t)
	doc := sampleDoc("place_2")
	doc.Reviews[0].Text.Text = "   "
	doc.Reviews[0].OriginalText = nil
	f.provider.docs["place_2"] = doc

	detail, _, err := f.resolver.Resolve(context.Background(), "place_2", false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(detail.Reviews) != 0 {
		t.Errorf("expected no surviving reviews, got %d", len(detail.Reviews))
	}
}

func TestResolveTolerantOfConcurrentDuplicateCreate(t *testing.T) {
	f := newFixture(t)
	f.provider.docs["place_1"] = sampleDoc("place_1")
	ctx := context.Background()

	// Simulate the losing racer: the row already exists when the
	// provider-fetch path runs its create.
	if err := f.resolver.fetchAndPersist(ctx, f.db, "place_1"); err != nil {
		t.Fatalf("first persist: %v", err)
	}
	if err := f.resolver.fetchAndPersist(ctx, f.db, "place_1"); err != nil {
		t.Fatalf("duplicate persist must be a no-op, got: %v", err)
	}

	var count int64
	f.db.Model(&models.Place{}).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one place row, got %d", count)
	}
	f.db.Model(&models.Review{}).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one review row, got %d", count)
	}
}

func TestResolvePublishesUpsertEvent(t *testing.T) {
	f := newFixture(t)
	f.provider.docs["place_1"] = sampleDoc("place_1")

	if _, _, err := f.resolver.Resolve(context.Background(), "place_1", false); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(f.publisher.upserted) != 1 || f.publisher.upserted[0] != "place_1" {
		t.Errorf("expected one place.upserted event, got %v", f.publisher.upserted)
	}
}
