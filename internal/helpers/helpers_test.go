package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/seatsavvy/internal/models"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: &models.ValidationError{Field: "title", Message: "is required"}, want: http.StatusBadRequest},
		{err: models.ValidationErrors{{Field: "title", Message: "is required"}}, want: http.StatusBadRequest},
		{err: fmt.Errorf("decode: %w", models.ErrInvalidPayload), want: http.StatusBadRequest},
		{err: models.ErrUnauthenticated, want: http.StatusUnauthorized},
		{err: fmt.Errorf("%w: nope", models.ErrForbidden), want: http.StatusForbidden},
		{err: &models.NotFoundError{Kind: "event", ID: "evt-1"}, want: http.StatusNotFound},
		{err: models.ErrCancellationPending, want: http.StatusConflict},
		{err: models.ErrTicketAlreadyRedeemed, want: http.StatusConflict},
		{err: &models.ExternalServiceError{Service: "qr", Err: errors.New("down")}, want: http.StatusBadGateway},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRespondWithDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantFields  int
	}{
		{
			name:        "validation fields",
			err:         models.ValidationErrors{{Field: "title", Message: "is required"}, {Field: "price", Message: "is required"}},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid input. Please check your fields.",
			wantFields:  2,
		},
		{
			name:        "not found",
			err:         &models.NotFoundError{Kind: "event", ID: "evt-1"},
			wantStatus:  http.StatusNotFound,
			wantMessage: "event evt-1 not found",
		},
		{
			name:        "internal hidden",
			err:         errors.New("database is locked"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Something went wrong.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondWithDomainError(c, tt.err, "Something went wrong.")

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != http.StatusText(tt.wantStatus) || body.Message != tt.wantMessage {
				t.Fatalf("unexpected body %+v", body)
			}
			if len(body.Fields) != tt.wantFields {
				t.Fatalf("expected %d fields, got %+v", tt.wantFields, body.Fields)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc.def", want: "abc.def", ok: true},
		{header: "bearer  abc ", want: "abc", ok: true},
		{header: "", ok: false},
		{header: "Basic abc", ok: false},
		{header: "Bearer ", ok: false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Errorf("BearerToken(%q) = %q, %v", tt.header, got, ok)
		}
	}
}

func TestBoundedInt(t *testing.T) {
	if n, err := BoundedInt("", 256, 64, 1024); err != nil || n != 256 {
		t.Fatalf("default: %d %v", n, err)
	}
	if n, err := BoundedInt("512", 256, 64, 1024); err != nil || n != 512 {
		t.Fatalf("parse: %d %v", n, err)
	}
	for _, bad := range []string{"abc", "10", "4096"} {
		if _, err := BoundedInt(bad, 256, 64, 1024); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
