package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"sketch/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Account Service: role routing and registration
// ─────────────────────────────────────────────────────────────
//
// Credentials are checked by the login collaborator before Route is called;
// this service only decides where an authenticated user lands.

// EventAccountRouted is emitted with the user after a successful route.
const EventAccountRouted = "account:routed"

// ErrEmptyUsername rejects blank registrations.
var ErrEmptyUsername = errors.New("username is required")

// AccountService maps users to screens.
type AccountService struct {
	users   domain.UserStore
	nav     domain.Navigator
	emitter EventEmitter
}

// NewAccountService creates an AccountService.
func NewAccountService(users domain.UserStore, nav domain.Navigator, emitter EventEmitter) *AccountService {
	return &AccountService{users: users, nav: nav, emitter: emitter}
}

// ScreenFor returns the landing screen for u's role.
func ScreenFor(u *domain.User) domain.Screen {
	if u.IsAdmin() {
		return domain.ScreenAdmin
	}
	return domain.ScreenUser
}

// Route looks username up and navigates to the admin or user screen.
func (s *AccountService) Route(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.users.FindUser(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("route user: %w", err)
	}
	screen := ScreenFor(u)
	if err := s.nav.Navigate(ctx, screen); err != nil {
		return nil, fmt.Errorf("navigate to %s: %w", screen, err)
	}
	log.Printf("account: %s routed to %s", u.Username, screen)
	if s.emitter != nil {
		s.emitter.Emit(ctx, EventAccountRouted, u)
	}
	return u, nil
}

// Register stores a new account. It reports false when the username is
// taken. An empty role registers a regular user.
func (s *AccountService) Register(ctx context.Context, username, passwordHash string, role domain.Role) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, ErrEmptyUsername
	}
	switch {
	case role == "":
		role = domain.RoleUser
	case strings.EqualFold(string(role), string(domain.RoleAdmin)):
		role = domain.RoleAdmin
	case strings.EqualFold(string(role), string(domain.RoleUser)):
		role = domain.RoleUser
	default:
		return false, fmt.Errorf("register user: unknown role %q", role)
	}
	ok, err := s.users.InsertUser(ctx, username, passwordHash, role)
	if err != nil {
		return false, fmt.Errorf("register user: %w", err)
	}
	return ok, nil
}

// Logout returns to the login screen.
func (s *AccountService) Logout(ctx context.Context) error {
	if err := s.nav.Navigate(ctx, domain.ScreenLogin); err != nil {
		return fmt.Errorf("navigate to login: %w", err)
	}
	return nil
}
