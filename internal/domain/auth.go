package domain

// AuthService validates bearer tokens for the API.
type AuthService interface {
	ValidateToken(token string) (*SupabaseUser, error)
}
