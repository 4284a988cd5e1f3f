package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/seatsavvy/internal/helpers"
	"github.com/farellandr/seatsavvy/internal/middleware"
	"github.com/farellandr/seatsavvy/internal/models"
)

type LoginRequest struct {
	Role string `json:"role" binding:"required"`
}

type RegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// Login is the role picker: it hands out a session for the demo profile of
// the chosen role without checking credentials.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	profile, err := app.Accounts.Login(c.Request.Context(), req.Role)
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Failed to log in.")
		return
	}
	respondWithSession(c, http.StatusOK, *profile)
}

// Register signs up a new event organizer.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	profile, err := app.Accounts.RegisterSeller(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Failed to register.")
		return
	}
	respondWithSession(c, http.StatusCreated, *profile)
}

func respondWithSession(c *gin.Context, status int, profile models.UserProfile) {
	tokens := middleware.GetTokens(c)
	if tokens == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Token issuer not configured.")
		return
	}
	token, expires, err := tokens.Issue(profile)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(status, gin.H{
		"token":      token,
		"expires_at": expires,
		"user":       profile,
	})
}
