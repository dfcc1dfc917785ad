package repository

import (
	"context"

	"github.com/jhoicas/mtaabiz/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// SetPro actualiza el flag is_pro y updated_at.
	SetPro(ctx context.Context, id string, isPro bool) error
	// LockByID bloquea la fila del usuario hasta el fin de la transacción (SELECT ... FOR UPDATE).
	LockByID(ctx context.Context, id string) error
}
