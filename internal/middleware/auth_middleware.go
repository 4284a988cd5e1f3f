package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/seatsavvy/internal/auth"
	"github.com/farellandr/seatsavvy/internal/helpers"
	"github.com/farellandr/seatsavvy/internal/models"
)

const (
	actorKey  = "actor"
	userIDKey = "user_id"
)

// JWTAuthMiddleware rejects requests without a valid session token.
func JWTAuthMiddleware(tokens *auth.Tokens) gin.HandlerFunc {
	return authenticate(tokens, true)
}

// OptionalJWTMiddleware resolves the actor when a token is sent and treats
// the request as a guest otherwise. A token that is sent but invalid is still
// rejected.
func OptionalJWTMiddleware(tokens *auth.Tokens) gin.HandlerFunc {
	return authenticate(tokens, false)
}

func authenticate(tokens *auth.Tokens, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" && !required {
			c.Set(actorKey, models.Guest())
			c.Next()
			return
		}
		raw, ok := helpers.BearerToken(header)
		if !ok {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing or malformed bearer token.")
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		app := GetApp(c)
		if app == nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
			return
		}
		profile, err := app.Accounts.Profile(c.Request.Context(), claims.Subject)
		if errors.Is(err, models.ErrNotFound) {
			// The store is reset every session; older tokens point at nobody.
			helpers.RespondWithError(c, http.StatusUnauthorized, "Session no longer exists. Please log in again.")
			return
		}
		if err != nil {
			helpers.RespondWithDomainError(c, err, "Error resolving session.")
			return
		}

		c.Set(actorKey, *profile)
		c.Set(userIDKey, profile.ID)
		c.Next()
	}
}

// GetActor returns the authenticated profile, or a guest when there is none.
func GetActor(c *gin.Context) models.UserProfile {
	actor, exists := c.Get(actorKey)
	if !exists {
		return models.Guest()
	}
	return actor.(models.UserProfile)
}
