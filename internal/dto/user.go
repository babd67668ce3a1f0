package dto

// CreateUserRequest creates a staff account (admin only).
type CreateUserRequest struct {
	Name       string `json:"name"       binding:"required,min=2,max=100"`
	Email      string `json:"email"      binding:"required,email"`
	Password   string `json:"password"   binding:"required,min=6"`
	Role       string `json:"role"       binding:"required,oneof=admin director faculty guard"`
	Department string `json:"department" binding:"omitempty,max=100"`
}

// UpdateUserRequest patches a staff account (admin only).
type UpdateUserRequest struct {
	Name       *string `json:"name"       binding:"omitempty,min=2,max=100"`
	Email      *string `json:"email"      binding:"omitempty,email"`
	Role       *string `json:"role"       binding:"omitempty,oneof=admin director faculty guard"`
	Department *string `json:"department" binding:"omitempty,max=100"`
}

// UserResponse is a staff account with the password hash stripped.
type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}
