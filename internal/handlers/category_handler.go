package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/seatsavvy/internal/models"
)

func ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": models.Categories,
		"total":      len(models.Categories),
	})
}
