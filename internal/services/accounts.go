package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/farellandr/seatsavvy/internal/idgen"
	"github.com/farellandr/seatsavvy/internal/models"
	"github.com/farellandr/seatsavvy/internal/store"
)

// AccountService resolves the demo identities. Login is a role picker:
// no credentials are checked.
type AccountService struct {
	store *store.Store
	opts  options
}

func NewAccountService(s *store.Store, opts ...Option) *AccountService {
	return &AccountService{store: s, opts: newOptions(opts)}
}

// Login returns the demo profile for the chosen role.
func (a *AccountService) Login(ctx context.Context, role string) (*models.UserProfile, error) {
	parsed, err := models.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return a.store.FindProfileByRole(ctx, parsed)
}

// RegisterSeller creates a new manager profile for an event organizer.
func (a *AccountService) RegisterSeller(ctx context.Context, name, email string) (*models.UserProfile, error) {
	if err := models.ValidateSeller(name, email); err != nil {
		return nil, err
	}
	id, err := idgen.NewProfileID()
	if err != nil {
		return nil, fmt.Errorf("generate profile id: %w", err)
	}
	profile := &models.UserProfile{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Role:      models.RoleManager,
		CreatedAt: a.opts.clock.Now(),
	}
	if err := a.store.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	a.opts.logger.Info("seller registered", "profile_id", profile.ID)
	return profile, nil
}

// Profile resolves a session subject back to its profile.
func (a *AccountService) Profile(ctx context.Context, id string) (*models.UserProfile, error) {
	return a.store.GetProfile(ctx, id)
}
