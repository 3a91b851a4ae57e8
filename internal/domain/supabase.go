package domain

// SupabaseClient is the subset of Supabase used for authentication.
type SupabaseClient interface {
	Initialize() error
	IsConfigured() bool
	ValidateToken(token string) (*SupabaseUser, error)
}
