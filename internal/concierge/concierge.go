// Package concierge answers attendee questions about events through the
// Gemini generateContent API. It never fails: every error degrades to a fixed
// apology.
package concierge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/farellandr/seatsavvy/internal/models"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 10 * time.Second

	Apology     = "I'm sorry, I can't answer that right now. Please try again later."
	EmptyAnswer = "I'm having trouble connecting to the event database right now."
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

func New(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, httpClient: httpClient, logger: logger}
}

// AnswerQuestion returns the concierge's reply. event may be nil for general
// questions about the catalog.
func (c *Client) AnswerQuestion(ctx context.Context, question string, event *models.Event) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return Apology
	}
	answer, err := c.ask(ctx, question, event)
	if err != nil {
		c.logger.Warn("concierge request failed", "error", err)
		return Apology
	}
	if strings.TrimSpace(answer) == "" {
		return EmptyAnswer
	}
	return strings.TrimSpace(answer)
}

func (c *Client) ask(ctx context.Context, question string, event *models.Event) (string, error) {
	if c.cfg.APIKey == "" {
		return "", &models.ExternalServiceError{Service: "concierge", Err: errors.New("api key not configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: Prompt(event)}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: question}}}},
	})
	if err != nil {
		return "", fmt.Errorf("concierge: marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("concierge: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &models.ExternalServiceError{Service: "concierge", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &models.ExternalServiceError{
			Service: "concierge",
			Err:     fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &models.ExternalServiceError{Service: "concierge", Err: fmt.Errorf("decoding response: %w", err)}
	}
	return out.text(), nil
}

// Prompt builds the grounding instructions sent ahead of the question.
func Prompt(event *models.Event) string {
	var b strings.Builder
	b.WriteString("You are SeatSavvy's virtual event concierge. You help attendees decide whether an event is right for them.\n")
	if event == nil {
		b.WriteString("The attendee is asking a general question. SeatSavvy sells tickets for concerts, workshops, conferences and theater. ")
		b.WriteString("Encourage them to browse the catalog. Keep the answer under 50 words.")
		return b.String()
	}
	fmt.Fprintf(&b, "The attendee is asking about this event:\n")
	fmt.Fprintf(&b, "Title: %s\n", event.Title)
	fmt.Fprintf(&b, "Date: %s\n", event.Date)
	fmt.Fprintf(&b, "Location: %s\n", event.Location)
	fmt.Fprintf(&b, "Price: $%.2f\n", event.Price)
	fmt.Fprintf(&b, "Description: %s\n", event.LongDescription)
	b.WriteString("Answer only from these details. If the answer is not in them, say so plainly and suggest contacting the organizer; do not invent facts. ")
	b.WriteString("Keep the answer short and friendly, under 50 words.")
	return b.String()
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Contents          []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
