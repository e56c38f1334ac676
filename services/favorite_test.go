package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"places-api/models"
)

func TestFavoriteToggleAddsThenRemoves(t *testing.T) {
	f := newFixture(t)
	f.provider.docs["place_1"] = sampleDoc("place_1")
	user := createUser(t, f.db, "alice", "alice@example.com")
	svc := NewFavoriteService(f.db, f.resolver, zerolog.Nop())
	ctx := context.Background()

	favorite, action, err := svc.Toggle(ctx, user.ID, "place_1")
	if err != nil {
		t.Fatalf("first Toggle: %v", err)
	}
	if action != ActionAdded || favorite == nil {
		t.Fatalf("expected added with favorite, got action=%q favorite=%v", action, favorite)
	}
	if favorite.UserID != user.ID || favorite.PlaceID != "place_1" {
		t.Errorf("favorite keyed wrong: %+v", favorite)
	}

	favorite, action, err = svc.Toggle(ctx, user.ID, "place_1")
	if err != nil {
		t.Fatalf("second Toggle: %v", err)
	}
	if action != ActionRemoved || favorite != nil {
		t.Fatalf("expected removed with nil favorite, got action=%q favorite=%v", action, favorite)
	}

	// toggle;toggle is a no-op on persisted state
	var count int64
	f.db.Model(&models.Favorite{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no favorites after double toggle, got %d", count)
	}
}

func TestFavoriteToggleMaterializesPlace(t *testing.T) {
	f := newFixture(t)
	f.provider.docs["place_1"] = sampleDoc("place_1")
	user := createUser(t, f.db, "alice", "alice@example.com")
	svc := NewFavoriteService(f.db, f.resolver, zerolog.Nop())

	if _, _, err := svc.Toggle(context.Background(), user.ID, "place_1"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	var count int64
	f.db.Model(&models.Place{}).Count(&count)
	if count != 1 {
		t.Errorf("toggle must materialize the place first, got %d rows", count)
	}
}

func TestFavoriteToggleUnknownUser(t *testing.T) {
	f := newFixture(t)
	svc := NewFavoriteService(f.db, f.resolver, zerolog.Nop())
	_, _, err := svc.Toggle(context.Background(), 42, "place_1")
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestFavoriteToggleUnknownPlace(t *testing.T) {
	f := newFixture(t)
	user := createUser(t, f.db, "alice", "alice@example.com")
	svc := NewFavoriteService(f.db, f.resolver, zerolog.Nop())
	_, _, err := svc.Toggle(context.Background(), user.ID, "missing")
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected KindNotFound for unresolvable place, got %v", err)
	}
}
