package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreSetGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(val) != "v" {
		t.Fatalf("expected hit with v, got %q ok=%v err=%v", val, ok, err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatal("expired entry must miss")
	}
}

func TestKeyFormatIncludesSchemaVersion(t *testing.T) {
	got := Key("place-details", "abc")
	want := "place-details:" + SchemaVersion + ":abc"
	if got != want {
		t.Fatalf("Key = %q, want %q", got, want)
	}
}
