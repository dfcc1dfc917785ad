package repository

import (
	"context"

	"github.com/jhoicas/mtaabiz/internal/domain/entity"
)

// TokenRepository persiste los tokens emitidos; borrar el registro revoca el token.
type TokenRepository interface {
	Create(ctx context.Context, token *entity.AuthToken) error
	GetByID(ctx context.Context, id string) (*entity.AuthToken, error)
	Delete(ctx context.Context, id string) error
}
