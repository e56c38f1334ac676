package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"places-api/models"
)

// ReviewStatusUpdate is one entry in a batch visibility change.
type ReviewStatusUpdate struct {
	ReviewID string              `json:"reviewId" binding:"required"`
	Status   models.ReviewStatus `json:"status" binding:"required"`
}

// ReviewService applies batch visibility updates. Authorization is the
// caller's responsibility; this layer only guarantees validation-before-write
// and all-or-nothing application.
type ReviewService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewReviewService(db *gorm.DB, log zerolog.Logger) *ReviewService {
	return &ReviewService{db: db, log: log}
}

// UpdateStatuses validates the whole batch up front, then applies it in a
// single transaction. Any unknown review id rolls the batch back.
func (s *ReviewService) UpdateStatuses(ctx context.Context, updates []ReviewStatusUpdate) ([]models.Review, error) {
	if len(updates) == 0 {
		return nil, E(KindValidation, "updates list cannot be empty")
	}
	var details []string
	for i, u := range updates {
		if u.ReviewID == "" {
			details = append(details, fmt.Sprintf("updates[%d]: reviewId is required", i))
		}
		if !models.ValidReviewStatus(u.Status) {
			details = append(details, fmt.Sprintf("updates[%d]: invalid status %q", i, u.Status))
		}
	}
	if len(details) > 0 {
		return nil, &Error{Kind: KindValidation, Message: "invalid review status updates", Details: details}
	}

	var updated []models.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]string, 0, len(updates))
		for _, u := range updates {
			res := tx.Model(&models.Review{}).Where("id = ?", u.ReviewID).Update("status", u.Status)
			if res.Error != nil {
				return wrap(KindInternal, "failed to update review status", res.Error)
			}
			if res.RowsAffected == 0 {
				return E(KindNotFound, fmt.Sprintf("review %s not found", u.ReviewID))
			}
			ids = append(ids, u.ReviewID)
		}
		return tx.Where("id IN ?", ids).Find(&updated).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("count", len(updated)).Msg("review statuses updated")
	return updated, nil
}
