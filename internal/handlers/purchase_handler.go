package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/seatsavvy/internal/helpers"
	"github.com/farellandr/seatsavvy/internal/middleware"
)

type PurchaseRequest struct {
	HolderName  string `json:"holder_name"`
	HolderEmail string `json:"holder_email"`
}

// PurchaseTicket runs the simulated checkout for one ticket. Guests may buy
// too; the ticket then has no owning account.
func PurchaseTicket(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	ticket, err := app.Issuance.Purchase(c.Request.Context(), middleware.GetActor(c), c.Param("id"), req.HolderName, req.HolderEmail)
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Failed to purchase ticket.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ticket purchased successfully.",
		"ticket":  ticket,
	})
}
