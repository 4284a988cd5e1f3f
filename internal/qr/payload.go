// Package qr encodes ticket verification payloads and renders them as QR
// images.
package qr

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/farellandr/seatsavvy/internal/models"
)

// Encode serializes the ticket's payload. The output depends only on the
// ticket's own fields, never on the live event.
func Encode(ticket models.Ticket, secret []byte) (string, error) {
	payload := ticket.Payload()
	payload.Signature = Sign(payload, secret)
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode qr payload: %w", err)
	}
	return string(data), nil
}

func Decode(raw string) (models.QRPayload, error) {
	var payload models.QRPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		return models.QRPayload{}, fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}
	if payload.ID == "" {
		return models.QRPayload{}, fmt.Errorf("%w: missing ticket id", models.ErrInvalidPayload)
	}
	return payload, nil
}

// Sign returns the hex HMAC-SHA256 of the payload's ticket fields, or "" when
// no secret is configured.
func Sign(payload models.QRPayload, secret []byte) string {
	if len(secret) == 0 {
		return ""
	}
	data := strings.Join([]string{
		payload.ID,
		payload.EventID,
		payload.EventTitle,
		payload.EventDate,
		payload.HolderName,
		payload.HolderEmail,
	}, "\x1f")
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func CheckSignature(payload models.QRPayload, secret []byte) bool {
	if len(secret) == 0 {
		return true
	}
	expected := Sign(payload, secret)
	return hmac.Equal([]byte(expected), []byte(payload.Signature))
}
