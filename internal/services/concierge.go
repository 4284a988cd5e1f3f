package services

import (
	"context"
	"strings"

	"github.com/farellandr/seatsavvy/internal/models"
	"github.com/farellandr/seatsavvy/internal/store"
)

// Answerer is the AI concierge. Implementations never fail; they degrade to a
// fixed reply instead.
type Answerer interface {
	AnswerQuestion(ctx context.Context, question string, event *models.Event) string
}

type ConciergeService struct {
	store    *store.Store
	answerer Answerer
}

func NewConciergeService(s *store.Store, answerer Answerer) *ConciergeService {
	return &ConciergeService{store: s, answerer: answerer}
}

// Ask answers a question about one event, or about the catalog in general
// when eventID is empty.
func (c *ConciergeService) Ask(ctx context.Context, question, eventID string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", &models.ValidationError{Field: "question", Message: "is required"}
	}
	var event *models.Event
	if eventID != "" {
		found, err := c.store.GetEvent(ctx, eventID)
		if err != nil {
			return "", err
		}
		event = found
	}
	return c.answerer.AnswerQuestion(ctx, question, event), nil
}
