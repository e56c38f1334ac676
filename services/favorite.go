package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"places-api/models"
)

const (
	ActionAdded   = "added"
	ActionUpdated = "updated"
	ActionRemoved = "removed"
)

// FavoriteService flips per-user favorite state on a place. Every call flips:
// two calls in a row restore the original state.
type FavoriteService struct {
	db       *gorm.DB
	resolver *Resolver
	log      zerolog.Logger
}

func NewFavoriteService(db *gorm.DB, resolver *Resolver, log zerolog.Logger) *FavoriteService {
	return &FavoriteService{db: db, resolver: resolver, log: log}
}

// Toggle returns the created favorite and ActionAdded, or nil and
// ActionRemoved when an existing favorite was deleted.
func (s *FavoriteService) Toggle(ctx context.Context, userID uint, placeID string) (*models.Favorite, string, error) {
	if placeID == "" {
		return nil, "", E(KindValidation, "placeId is required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", E(KindNotFound, "user not found")
		}
		return nil, "", wrap(KindInternal, "failed to load user", err)
	}

	// Cache-aware resolution guarantees the place row exists before any
	// per-user state is touched.
	if _, _, err := s.resolver.Resolve(ctx, placeID, false); err != nil {
		return nil, "", err
	}

	var favorite models.Favorite
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		First(&favorite).Error
	if err == nil {
		if err := s.db.WithContext(ctx).Delete(&favorite).Error; err != nil {
			return nil, "", wrap(KindInternal, "failed to remove favorite", err)
		}
		s.log.Info().Uint("user_id", userID).Str("place_id", placeID).Msg("favorite removed")
		return nil, ActionRemoved, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", wrap(KindInternal, "failed to look up favorite", err)
	}

	favorite = models.Favorite{UserID: userID, PlaceID: placeID}
	if err := s.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		return nil, "", wrap(KindConflict, "favorite changed concurrently", err)
	}
	s.log.Info().Uint("user_id", userID).Str("place_id", placeID).Msg("favorite added")
	return &favorite, ActionAdded, nil
}
