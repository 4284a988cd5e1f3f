package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/seatsavvy/internal/helpers"
	"github.com/farellandr/seatsavvy/internal/middleware"
	"github.com/farellandr/seatsavvy/internal/models"
)

const maxPageSize = 100

func CreateEvent(c *gin.Context) {
	var draft models.EventDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	event, err := app.Catalog.CreateEvent(c.Request.Context(), middleware.GetActor(c), draft)
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully.",
		"event":   event,
	})
}

func GetEvent(c *gin.Context) {
	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	event, err := app.Catalog.GetEvent(c.Request.Context(), middleware.GetActor(c), c.Param("id"))
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}

// ListEvents returns the catalog in the caller's scope. category narrows the
// listing; page and limit slice it.
func ListEvents(c *gin.Context) {
	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	pageNum, err := helpers.BoundedInt(c.Query("page"), 1, 1, 1<<20)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}
	limitNum, err := helpers.BoundedInt(c.Query("limit"), maxPageSize, 1, maxPageSize)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	var category models.Category
	if raw := c.Query("category"); raw != "" {
		category, err = models.ParseCategory(raw)
		if err != nil {
			helpers.RespondWithDomainError(c, err, "Invalid category.")
			return
		}
	}

	events, err := app.Catalog.ListEvents(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Error retrieving events.")
		return
	}
	if category != "" {
		filtered := events[:0]
		for _, e := range events {
			if e.Category == category {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	totalCount := len(events)
	start := min((pageNum-1)*limitNum, totalCount)
	end := min(start+limitNum, totalCount)

	c.JSON(http.StatusOK, gin.H{
		"events":      events[start:end],
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + limitNum - 1) / limitNum,
	})
}

func UpdateEvent(c *gin.Context) {
	var draft models.EventDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	event, err := app.Catalog.UpdateEvent(c.Request.Context(), middleware.GetActor(c), c.Param("id"), draft)
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Failed to update event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

// CancelEvent starts the cancellation and answers before it commits. Clients
// poll GetCancellation until the status leaves pending.
func CancelEvent(c *gin.Context) {
	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	task, err := app.Cancellation.CancelEvent(c.Request.Context(), middleware.GetActor(c), c.Param("id"))
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Failed to cancel event.")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":      "Event cancellation in progress. Ticket holders are being notified and refunded.",
		"cancellation": task.Snapshot(),
	})
}

func GetCancellation(c *gin.Context) {
	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	task, err := app.Cancellation.Task(c.Request.Context(), middleware.GetActor(c), c.Param("id"))
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Error retrieving cancellation.")
		return
	}

	c.JSON(http.StatusOK, task.Snapshot())
}
