package dto

// LoginRequest authenticates a staff member.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // seconds
	User      UserResponse `json:"user"`
}
