package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"places-api/models"
)

// ClaimService manages exclusive ownership of places by merchants. Each
// operation is one transaction against the durable store; uniqueness is
// enforced there, not by application-level locking.
type ClaimService struct {
	db       *gorm.DB
	resolver *Resolver
	log      zerolog.Logger
}

func NewClaimService(db *gorm.DB, resolver *Resolver, log zerolog.Logger) *ClaimService {
	return &ClaimService{db: db, resolver: resolver, log: log}
}

// Claim associates placeID with userID's merchant, creating the merchant on
// first claim. Fails with Conflict when another merchant already owns the
// place.
func (s *ClaimService) Claim(ctx context.Context, userID uint, placeID string) (*models.Merchant, error) {
	if placeID == "" {
		return nil, E(KindValidation, "placeId is required")
	}

	var result *models.Merchant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return E(KindNotFound, "user not found")
			}
			return wrap(KindInternal, "failed to load user", err)
		}

		place, err := s.resolver.EnsurePlace(ctx, tx, placeID)
		if err != nil {
			return err
		}

		if place.MerchantID != nil {
			var owner models.Merchant
			err := tx.Preload("User").First(&owner, *place.MerchantID).Error
			switch {
			case err == nil:
				return E(KindConflict, fmt.Sprintf("place already claimed by %s", owner.OwnerLabel()))
			case errors.Is(err, gorm.ErrRecordNotFound):
				// Dangling merchant reference: tolerated, treat as unclaimed
				s.log.Warn().Str("place_id", placeID).Uint("merchant_id", *place.MerchantID).
					Msg("place references missing merchant, treating as unclaimed")
			default:
				return wrap(KindInternal, "failed to load owning merchant", err)
			}
		}

		var merchant models.Merchant
		err = tx.Where("user_id = ?", userID).First(&merchant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			merchant = models.Merchant{UserID: userID}
			if err := tx.Create(&merchant).Error; err != nil {
				return wrap(KindInternal, "failed to create merchant", err)
			}
		} else if err != nil {
			return wrap(KindInternal, "failed to load merchant", err)
		}

		if err := tx.Model(place).Update("merchant_id", merchant.ID).Error; err != nil {
			return wrap(KindInternal, "failed to attach place", err)
		}

		var full models.Merchant
		if err := tx.Preload("User").Preload("Places").First(&full, merchant.ID).Error; err != nil {
			return wrap(KindInternal, "failed to reload merchant", err)
		}
		result = &full
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", userID).Str("place_id", placeID).Msg("place claimed")
	return result, nil
}

// Unclaim clears the merchant association. Only the owning merchant's user
// may unclaim.
func (s *ClaimService) Unclaim(ctx context.Context, userID uint, placeID string) (*models.Place, error) {
	if placeID == "" {
		return nil, E(KindValidation, "placeId is required")
	}

	var result *models.Place
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return E(KindNotFound, "user not found")
			}
			return wrap(KindInternal, "failed to load user", err)
		}

		var place models.Place
		err := tx.Preload("Merchant.User").First(&place, "id = ?", placeID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return E(KindNotFound, "place not found")
		}
		if err != nil {
			return wrap(KindInternal, "failed to load place", err)
		}

		if place.MerchantID == nil {
			return E(KindConflict, "no merchant associated with this place")
		}
		if place.Merchant == nil || place.Merchant.UserID != userID {
			return E(KindForbidden, "place is claimed by another user")
		}

		if err := tx.Model(&place).Update("merchant_id", nil).Error; err != nil {
			return wrap(KindInternal, "failed to unclaim place", err)
		}
		place.MerchantID = nil
		place.Merchant = nil
		result = &place
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", userID).Str("place_id", placeID).Msg("place unclaimed")
	return result, nil
}
