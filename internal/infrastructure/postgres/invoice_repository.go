package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mtaabiz/internal/domain"
	"github.com/jhoicas/mtaabiz/internal/domain/entity"
	"github.com/jhoicas/mtaabiz/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, user_id, client_name, amount, date_issued, due_date, status, idempotency_key, request_hash, created_at`

// Create persiste la factura. Una idempotency_key repetida para el mismo usuario devuelve ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.UserID, inv.ClientName, inv.Amount, inv.DateIssued, inv.DueDate,
		inv.Status, nullIfEmpty(inv.IdempotencyKey), nullIfEmpty(inv.RequestHash), inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice (%s)", domain.ErrDuplicate, uniqueConstraint(err))
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// ListByUser facturas del usuario, más recientes primero.
func (r *InvoiceRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Invoice, error) {
	lim, off := pageArgs(limit, offset)
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// CountByUserSince cuenta facturas creadas desde since (inclusive).
func (r *InvoiceRepo) CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE user_id = $1 AND created_at >= $2`, userID, since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

func (r *InvoiceRepo) GetByIdempotencyKey(ctx context.Context, userID, key string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1 AND idempotency_key = $2`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, userID, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by key: %w", err)
	}
	return inv, nil
}

func scanInvoice(row pgxScanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	var key, hash *string
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.ClientName, &inv.Amount, &inv.DateIssued, &inv.DueDate,
		&inv.Status, &key, &hash, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.IdempotencyKey = emptyIfNull(key)
	inv.RequestHash = emptyIfNull(hash)
	return &inv, nil
}
