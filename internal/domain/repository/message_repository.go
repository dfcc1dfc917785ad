package repository

import (
	"context"

	"github.com/jhoicas/mtaabiz/internal/domain/entity"
)

// MessageRepository define el puerto de persistencia para la biblioteca de mensajes.
type MessageRepository interface {
	Create(ctx context.Context, msg *entity.MessageTemplate) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.MessageTemplate, error)
	GetByIdempotencyKey(ctx context.Context, userID, key string) (*entity.MessageTemplate, error)
}
