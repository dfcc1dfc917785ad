package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mtaabiz/internal/domain"
	"github.com/jhoicas/mtaabiz/internal/domain/entity"
	"github.com/jhoicas/mtaabiz/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo biblioteca de mensajes guardados (message_templates).
type MessageRepo struct {
	q Querier
}

// NewMessageRepository construye el adaptador.
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

const messageColumns = `id, user_id, title, content, category, idempotency_key, request_hash, created_at`

func (r *MessageRepo) Create(ctx context.Context, m *entity.MessageTemplate) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO message_templates (`+messageColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.UserID, m.Title, m.Content, m.Category, nullIfEmpty(m.IdempotencyKey), nullIfEmpty(m.RequestHash), m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: message (%s)", domain.ErrDuplicate, uniqueConstraint(err))
		}
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.MessageTemplate, error) {
	lim, off := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT `+messageColumns+`
		FROM message_templates WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`, userID, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.MessageTemplate
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MessageRepo) GetByIdempotencyKey(ctx context.Context, userID, key string) (*entity.MessageTemplate, error) {
	m, err := scanMessage(r.q.QueryRow(ctx,
		`SELECT `+messageColumns+` FROM message_templates WHERE user_id = $1 AND idempotency_key = $2`, userID, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message by key: %w", err)
	}
	return m, nil
}

func scanMessage(row pgxScanner) (*entity.MessageTemplate, error) {
	var m entity.MessageTemplate
	var key, hash *string
	if err := row.Scan(&m.ID, &m.UserID, &m.Title, &m.Content, &m.Category, &key, &hash, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.IdempotencyKey = emptyIfNull(key)
	m.RequestHash = emptyIfNull(hash)
	return &m, nil
}
