package routes

import (
	"github.com/gin-gonic/gin"

	"places-api/handlers"
	"places-api/middleware"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Places     *handlers.PlacesHandler
	Claims     *handlers.ClaimHandler
	Engagement *handlers.EngagementHandler
	Reviews    *handlers.ReviewsHandler
}

func Setup(r *gin.Engine, auth *middleware.Auth, h Handlers) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)

		// Place resolution (no auth needed)
		public.GET("/places/:id", h.Places.GetPlace)
	}

	// ── Authenticated routes ───────────────────────────────────────
	authed := r.Group("/api")
	authed.Use(auth.Required())
	{
		authed.GET("/profile", h.Auth.GetProfile)

		authed.POST("/places/:id/claim", h.Claims.Claim)
		authed.DELETE("/places/:id/claim", h.Claims.Unclaim)

		authed.POST("/places/:id/favorite", h.Engagement.ToggleFavorite)
		authed.POST("/places/:id/rating", h.Engagement.SubmitRating)

		authed.PATCH("/reviews/status", h.Reviews.UpdateStatuses)
	}
}
