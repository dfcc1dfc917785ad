package dto

// RegisterRequest entrada para registro.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID       FlexibleID `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
}

// AuthResponse salida de login y registro. User puede faltar en servidores antiguos;
// el cliente lo resuelve entonces con GET /auth/user/.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user,omitempty"`
}

// AccountStatusResponse estado de la cuenta. Limit es null para cuentas PRO.
type AccountStatusResponse struct {
	IsPro        bool `json:"is_pro"`
	InvoiceCount int  `json:"invoice_count"`
	Limit        *int `json:"limit"`
}
