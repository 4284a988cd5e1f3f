package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/seatsavvy/internal/helpers"
	"github.com/farellandr/seatsavvy/internal/middleware"
	"github.com/farellandr/seatsavvy/internal/qr"
	"github.com/farellandr/seatsavvy/internal/services"
)

type VerifyRequest struct {
	TicketID string `json:"ticket_id"`
	QRData   string `json:"qr_data"`
}

func ListTickets(c *gin.Context) {
	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	tickets, err := app.Tickets.ListTickets(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Error retrieving tickets.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tickets": tickets,
		"total":   len(tickets),
	})
}

func GetTicket(c *gin.Context) {
	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	ticket, err := app.Tickets.GetTicket(c.Request.Context(), middleware.GetActor(c), c.Param("id"))
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Error retrieving ticket.")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// GenerateTicketQR renders the ticket's payload as a PNG in-process, so the
// gate works even when the remote image service is down.
func GenerateTicketQR(c *gin.Context) {
	size, err := helpers.BoundedInt(c.Query("size"), qr.DefaultSize, 64, 1024)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid size: "+err.Error())
		return
	}

	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	ticket, err := app.Tickets.GetTicket(c.Request.Context(), middleware.GetActor(c), c.Param("id"))
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Error retrieving ticket.")
		return
	}

	qrImage, err := qr.PNG(ticket.QRPayload, size)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// VerifyTicket checks a ticket id typed at the gate or a scanned QR payload.
// It never marks the ticket as used.
func VerifyTicket(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}
	if (req.TicketID == "") == (req.QRData == "") {
		helpers.RespondWithError(c, http.StatusBadRequest, "Provide exactly one of ticket_id or qr_data.")
		return
	}

	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	var (
		result services.VerificationResult
		err    error
	)
	if req.QRData != "" {
		result, err = app.Verification.VerifyPayload(c.Request.Context(), middleware.GetActor(c), req.QRData)
	} else {
		result, err = app.Verification.Verify(c.Request.Context(), middleware.GetActor(c), req.TicketID)
	}
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Failed to verify ticket.")
		return
	}

	c.JSON(http.StatusOK, result)
}

// RedeemTicket records the holder's entry. A second scan is a conflict.
func RedeemTicket(c *gin.Context) {
	app := middleware.GetApp(c)
	if app == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Application services not found.")
		return
	}

	ticket, err := app.Verification.Redeem(c.Request.Context(), middleware.GetActor(c), c.Param("id"))
	if err != nil {
		helpers.RespondWithDomainError(c, err, "Failed to redeem ticket.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket redeemed successfully.",
		"ticket":  ticket,
	})
}
