package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chickpick/internal/domain"
	profilerepo "chickpick/internal/repository/profile"
	tokenrepo "chickpick/internal/repository/token"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service resolves identities and handles signup/login flows.
type Service struct {
	profiles    profilerepo.Repository
	tokens      *tokenManager
	accessTTL   time.Duration
	refreshTTL  time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(profiles profilerepo.Repository, tokens tokenrepo.Repository) *Service {
	return &Service{
		profiles:    profiles,
		tokens:      newTokenManager(tokens),
		accessTTL:   48 * time.Hour,
		refreshTTL:  30 * 24 * time.Hour,
		passwordMin: 8,
	}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// Signup registers a new customer profile.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.Profile, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, errors.New("email required")
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.profiles.Create(ctx, domain.Profile{
		Email:        email,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Role:         domain.RoleCustomer,
		PasswordHash: string(hashed),
	})
}

// Login validates credentials and returns issued tokens plus the profile.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Profile, string, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	p, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, p.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.Issue(ctx, p.ID, "refresh", s.refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return p, access, refresh, nil
}

// Current resolves the profile bound to an access token. It fails open:
// a missing, invalid, or expired token yields (nil, nil), never an error,
// so callers can treat "not logged in" as an ordinary state.
func (s *Service) Current(ctx context.Context, token string) (*domain.Profile, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, nil
	}
	p, err := s.profiles.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// EnsureProfile creates the profile row if it does not exist. Idempotent;
// calling it for an existing identity is a no-op.
func (s *Service) EnsureProfile(ctx context.Context, id, email, displayName string) error {
	return s.profiles.Ensure(ctx, id, email, displayName)
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

func validatePassword(p string, min int) error {
	trimmed := strings.TrimSpace(p)
	if len(trimmed) < min {
		return fmt.Errorf("password must be at least %d characters", min)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errors.New("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
