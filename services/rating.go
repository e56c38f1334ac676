package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"places-api/models"
)

// RatingService upserts per-user star ratings with clear-on-repeat semantics:
// resubmitting the current value deletes the rating, and that rule takes
// precedence over the update branch.
type RatingService struct {
	db       *gorm.DB
	resolver *Resolver
	log      zerolog.Logger
}

func NewRatingService(db *gorm.DB, resolver *Resolver, log zerolog.Logger) *RatingService {
	return &RatingService{db: db, resolver: resolver, log: log}
}

// Submit applies a rating value (nil clears). Returns the place, the rating
// row (nil when removed), and the action taken.
func (s *RatingService) Submit(ctx context.Context, userID uint, placeID string, value *int) (*models.Place, *models.Rating, string, error) {
	if placeID == "" {
		return nil, nil, "", E(KindValidation, "placeId is required")
	}
	if value != nil && (*value < 1 || *value > 5) {
		return nil, nil, "", E(KindValidation, "rating must be between 1 and 5")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, "", E(KindNotFound, "user not found")
		}
		return nil, nil, "", wrap(KindInternal, "failed to load user", err)
	}

	place, err := s.resolver.EnsurePlace(ctx, s.db, placeID)
	if err != nil {
		return nil, nil, "", err
	}

	var existing models.Rating
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		First(&existing).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, "", wrap(KindInternal, "failed to look up rating", err)
	}

	switch {
	case !found && value == nil:
		return nil, nil, "", E(KindValidation, "rating is required")

	case !found:
		rating := models.Rating{UserID: userID, PlaceID: placeID, Value: *value}
		if err := s.db.WithContext(ctx).Create(&rating).Error; err != nil {
			return nil, nil, "", wrap(KindConflict, "rating changed concurrently", err)
		}
		s.log.Info().Uint("user_id", userID).Str("place_id", placeID).Int("value", *value).Msg("rating added")
		return place, &rating, ActionAdded, nil

	case value == nil || *value == existing.Value:
		// No value, or the same value resubmitted: both clear the rating
		if err := s.db.WithContext(ctx).Delete(&existing).Error; err != nil {
			return nil, nil, "", wrap(KindInternal, "failed to remove rating", err)
		}
		s.log.Info().Uint("user_id", userID).Str("place_id", placeID).Msg("rating removed")
		return place, nil, ActionRemoved, nil

	default:
		if err := s.db.WithContext(ctx).Model(&existing).Update("value", *value).Error; err != nil {
			return nil, nil, "", wrap(KindInternal, "failed to update rating", err)
		}
		existing.Value = *value
		s.log.Info().Uint("user_id", userID).Str("place_id", placeID).Int("value", *value).Msg("rating updated")
		return place, &existing, ActionUpdated, nil
	}
}
