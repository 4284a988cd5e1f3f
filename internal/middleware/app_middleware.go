package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/farellandr/seatsavvy/internal/auth"
	"github.com/farellandr/seatsavvy/internal/services"
)

const (
	appKey    = "app"
	tokensKey = "tokens"
)

// AppMiddleware makes the services and the token issuer available to every
// handler.
func AppMiddleware(app *services.App, tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(appKey, app)
		c.Set(tokensKey, tokens)
		c.Next()
	}
}

func GetApp(c *gin.Context) *services.App {
	app, exists := c.Get(appKey)
	if !exists {
		return nil
	}
	return app.(*services.App)
}

func GetTokens(c *gin.Context) *auth.Tokens {
	tokens, exists := c.Get(tokensKey)
	if !exists {
		return nil
	}
	return tokens.(*auth.Tokens)
}
