package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"places-api/middleware"
	"places-api/services"
)

type ClaimHandler struct {
	claims *services.ClaimService
}

func NewClaimHandler(claims *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{claims: claims}
}

// Claim associates the place with the caller's merchant, creating the
// merchant on first claim
func (h *ClaimHandler) Claim(c *gin.Context) {
	userID := middleware.GetUserID(c)
	placeID := c.Param("id")

	merchant, err := h.claims.Claim(c.Request.Context(), userID, placeID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"merchant": merchant})
}

// Unclaim releases the caller's ownership of the place
func (h *ClaimHandler) Unclaim(c *gin.Context) {
	userID := middleware.GetUserID(c)
	placeID := c.Param("id")

	place, err := h.claims.Unclaim(c.Request.Context(), userID, placeID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"place": place})
}
