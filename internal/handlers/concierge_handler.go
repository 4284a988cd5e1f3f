package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/seatsavvy/internal/helpers"
	"github.com/farellandr/seatsavvy/internal/middleware"
)

type ConciergeRequest struct {
	Question string `json:"question" binding:"required"`
	EventID  string `json:"event_id"`
}

// AskConcierge always answers 200 once the input is valid; an unavailable
// model yields an apology rather than an error.
func AskConcierge(c *gin.Context) {
	var req ConciergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	answer, err := app.Concierge.Ask(c.Request.Context(), req.Question, req.EventID)
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Failed to reach the concierge.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
