package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"places-api/middleware"
	"places-api/services"
)

type EngagementHandler struct {
	favorites *services.FavoriteService
	ratings   *services.RatingService
}

func NewEngagementHandler(favorites *services.FavoriteService, ratings *services.RatingService) *EngagementHandler {
	return &EngagementHandler{favorites: favorites, ratings: ratings}
}

// ToggleFavorite flips the caller's favorite state for the place
func (h *EngagementHandler) ToggleFavorite(c *gin.Context) {
	userID := middleware.GetUserID(c)
	placeID := c.Param("id")

	favorite, action, err := h.favorites.Toggle(c.Request.Context(), userID, placeID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": message(err)})
		return
	}

	msg := "Favorite added"
	if action == services.ActionRemoved {
		msg = "Favorite removed"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  msg,
		"favorite": favorite,
		"action":   action,
	})
}

type SubmitRatingRequest struct {
	Rating *int `json:"rating"`
}

// SubmitRating creates, updates, or clears the caller's rating. Resubmitting
// the current value clears it; an empty body clears it too.
func (h *EngagementHandler) SubmitRating(c *gin.Context) {
	userID := middleware.GetUserID(c)
	placeID := c.Param("id")

	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	place, rating, action, err := h.ratings.Submit(c.Request.Context(), userID, placeID, req.Rating)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": message(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rating " + action,
		"place":   place,
		"rating":  rating,
		"action":  action,
	})
}
