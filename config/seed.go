package config

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/farellandr/seatsavvy/internal/clock"
	"github.com/farellandr/seatsavvy/internal/idgen"
	"github.com/farellandr/seatsavvy/internal/models"
	"github.com/farellandr/seatsavvy/internal/store"
)

//go:embed seed.toml
var defaultSeed string

type Seed struct {
	Profiles []SeedProfile `toml:"profiles"`
	Events   []SeedEvent   `toml:"events"`
}

type SeedProfile struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Email string `toml:"email"`
	Role  string `toml:"role"`
}

type SeedEvent struct {
	ID              string  `toml:"id"`
	OrganizerID     string  `toml:"organizer_id"`
	Title           string  `toml:"title"`
	Category        string  `toml:"category"`
	Date            string  `toml:"date"`
	Price           float64 `toml:"price"`
	Location        string  `toml:"location"`
	Image           string  `toml:"image"`
	Description     string  `toml:"description"`
	LongDescription string  `toml:"long_description"`
}

// LoadSeed reads the seed catalog from path, or the built-in demo catalog
// when path is empty.
func LoadSeed(path string) (*Seed, error) {
	var seed Seed
	if path == "" {
		if _, err := toml.Decode(defaultSeed, &seed); err != nil {
			return nil, fmt.Errorf("decode built-in seed: %w", err)
		}
		return &seed, nil
	}
	if _, err := toml.DecodeFile(path, &seed); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}
	return &seed, nil
}

// Apply validates every entry and writes the whole seed in one transaction.
func (s *Seed) Apply(ctx context.Context, st *store.Store, c clock.Clock) error {
	now := c.Now()
	profiles := make([]models.UserProfile, 0, len(s.Profiles))
	for i, p := range s.Profiles {
		role, err := models.ParseRole(p.Role)
		if err != nil {
			return fmt.Errorf("seed profile %d: %w", i, err)
		}
		if p.ID == "" {
			if p.ID, err = idgen.NewProfileID(); err != nil {
				return err
			}
		}
		// Staggered timestamps keep seed order for FindProfileByRole.
		profiles = append(profiles, models.UserProfile{
			ID:        p.ID,
			Name:      p.Name,
			Email:     p.Email,
			Role:      role,
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		})
	}

	events := make([]models.Event, 0, len(s.Events))
	for i, e := range s.Events {
		price := e.Price
		draft := models.EventDraft{
			OrganizerID:     e.OrganizerID,
			Title:           e.Title,
			Category:        models.Category(e.Category),
			Date:            e.Date,
			Price:           &price,
			Location:        e.Location,
			Image:           e.Image,
			Description:     e.Description,
			LongDescription: e.LongDescription,
		}
		if err := models.ValidateEventDraft(&draft); err != nil {
			return fmt.Errorf("seed event %d (%s): %w", i, e.Title, err)
		}
		id := e.ID
		if id == "" {
			var err error
			if id, err = idgen.NewEventID(); err != nil {
				return err
			}
		}
		events = append(events, models.Event{
			ID:              id,
			OrganizerID:     draft.OrganizerID,
			Title:           draft.Title,
			Category:        draft.Category,
			Date:            draft.Date,
			Price:           *draft.Price,
			Location:        draft.Location,
			Image:           draft.Image,
			Description:     draft.Description,
			LongDescription: draft.LongDescription,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	return st.WithTx(ctx, func(tx *store.Store) error {
		for i := range profiles {
			if err := tx.CreateProfile(ctx, &profiles[i]); err != nil {
				return fmt.Errorf("seed profile %s: %w", profiles[i].ID, err)
			}
		}
		for i := range events {
			if err := tx.CreateEvent(ctx, &events[i]); err != nil {
				return fmt.Errorf("seed event %s: %w", events[i].ID, err)
			}
		}
		return nil
	})
}
