package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/seatsavvy/internal/helpers"
	"github.com/farellandr/seatsavvy/internal/middleware"
)

func DashboardStats(c *gin.Context) {
	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	stats, err := app.Dashboard.Stats(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Error computing statistics.")
		return
	}

	c.JSON(http.StatusOK, stats)
}
