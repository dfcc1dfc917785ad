package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mtaabiz/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas guardadas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	// ListByUser devuelve las facturas del usuario, más recientes primero.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Invoice, error)
	// CountByUserSince cuenta las facturas creadas por el usuario desde since (inclusive).
	CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error)
	GetByIdempotencyKey(ctx context.Context, userID, key string) (*entity.Invoice, error)
}
