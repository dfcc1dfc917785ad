package entity

import "time"

// User representa una cuenta de la aplicación.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	IsPro        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthToken registro de un token emitido. Borrarlo revoca el token (logout).
type AuthToken struct {
	ID        string // jti del JWT
	UserID    string
	CreatedAt time.Time
}
