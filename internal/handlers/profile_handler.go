package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/seatsavvy/internal/middleware"
)

func GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.GetActor(c))
}
