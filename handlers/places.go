package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"places-api/services"
)

type PlacesHandler struct {
	resolver *services.Resolver
}

func NewPlacesHandler(resolver *services.Resolver) *PlacesHandler {
	return &PlacesHandler{resolver: resolver}
}

// GetPlace resolves a place's detail view through cache, store, and provider.
// `?bypassCache=true` skips the cache tier.
func (h *PlacesHandler) GetPlace(c *gin.Context) {
	placeID := c.Param("id")
	bypassCache := c.Query("bypassCache") == "true"

	detail, cacheHit, err := h.resolver.Resolve(c.Request.Context(), placeID, bypassCache)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": message(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     detail,
		"cacheHit": cacheHit,
		"count":    1,
	})
}
