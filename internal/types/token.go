package types

// TokenClaims is what the auth middleware learns from a valid session token.
type TokenClaims struct {
	UserID string `json:"user_id"`
}

// Context keys set by the auth middleware.
const (
	ContextUserID = "user_id"
)
