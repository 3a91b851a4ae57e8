package supabase

import (
	"errors"
	"fmt"
	"time"

	"care-doc-assistant/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// ErrNotConfigured is returned when Supabase credentials are missing.
var ErrNotConfigured = errors.New("supabase URL and key must be provided")

// SupabaseClient implements the domain.SupabaseClient interface using
// Supabase Auth for bearer-token validation.
type SupabaseClient struct {
	client *supabase.Client
	config domain.Config
	logger domain.Logger

	// fetchUser resolves a token to its user; replaced in tests.
	fetchUser func(token string) (*domain.SupabaseUser, error)
}

// NewSupabaseClient creates a new Supabase client instance
func NewSupabaseClient(config domain.Config, logger domain.Logger) *SupabaseClient {
	return &SupabaseClient{
		config: config,
		logger: logger,
	}
}

// IsConfigured reports whether both the URL and anon key are set.
func (s *SupabaseClient) IsConfigured() bool {
	return s.config.GetSupabaseURL() != "" && s.config.GetSupabaseKey() != ""
}

// Initialize establishes a connection to Supabase
func (s *SupabaseClient) Initialize() error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	supabaseURL := s.config.GetSupabaseURL()
	client, err := supabase.NewClient(supabaseURL, s.config.GetSupabaseKey(), &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	s.client = client
	s.fetchUser = s.userFromAuth
	s.logger.Info("Supabase client initialized successfully", "url", supabaseURL)
	return nil
}

// ValidateToken validates a Supabase JWT and returns the user it belongs to.
func (s *SupabaseClient) ValidateToken(token string) (*domain.SupabaseUser, error) {
	if s.fetchUser == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}
	user, err := s.fetchUser(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrInvalidToken)
	}
	return user, nil
}

func (s *SupabaseClient) userFromAuth(token string) (*domain.SupabaseUser, error) {
	// Client headers do not reach GoTrue; the token must go through WithToken.
	user, err := s.client.Auth.WithToken(token).GetUser()
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return &domain.SupabaseUser{
		ID:           user.ID.String(),
		Email:        user.Email,
		UserMetadata: user.UserMetadata,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    user.UpdatedAt.Format(time.RFC3339),
	}, nil
}
