package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"places-api/services"
)

type ReviewsHandler struct {
	reviews *services.ReviewService
}

func NewReviewsHandler(reviews *services.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews}
}

type UpdateReviewStatusesRequest struct {
	Updates []services.ReviewStatusUpdate `json:"updates"`
}

// UpdateStatuses applies a batch of review visibility changes atomically
func (h *ReviewsHandler) UpdateStatuses(c *gin.Context) {
	var req UpdateReviewStatusesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
			"details": nil,
		})
		return
	}

	updated, err := h.reviews.UpdateStatuses(c.Request.Context(), req.Updates)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"success": false,
			"error":   message(err),
			"details": services.DetailsOf(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"updatedReviews": updated,
	})
}
