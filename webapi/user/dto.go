package user

// RegisterRequest is the payload for registering a user.
type RegisterRequest struct {
	DNI      string `json:"dni" validate:"required,min=6,max=32"`
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUserRequest is the payload for a partial user update.
type UpdateUserRequest struct {
	DNI      *string `json:"dni" validate:"omitempty,min=6,max=32"`
	Username *string `json:"username" validate:"omitempty,min=3,max=64"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}
