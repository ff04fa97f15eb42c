package dto

// LoginRequest exchanges the shared password for a signed token.
// A still-valid Token lets the caller keep its identity.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
	Token    string `json:"token,omitempty"`
}

// LoginResponse carries the signed token and the identity it embeds
type LoginResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	ExpiresIn int64  `json:"expires_in" example:"604800"`
}
