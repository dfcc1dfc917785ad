package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mtaabiz/internal/domain"
	"github.com/jhoicas/mtaabiz/internal/domain/entity"
	"github.com/jhoicas/mtaabiz/internal/domain/repository"
)

var _ repository.TokenRepository = (*TokenRepo)(nil)

// TokenRepo registros de tokens emitidos (auth_tokens).
type TokenRepo struct {
	q Querier
}

// NewTokenRepository construye el adaptador.
func NewTokenRepository(q Querier) *TokenRepo {
	return &TokenRepo{q: q}
}

func (r *TokenRepo) Create(ctx context.Context, t *entity.AuthToken) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO auth_tokens (id, user_id, created_at) VALUES ($1, $2, $3)`,
		t.ID, t.UserID, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

func (r *TokenRepo) GetByID(ctx context.Context, id string) (*entity.AuthToken, error) {
	var t entity.AuthToken
	err := r.q.QueryRow(ctx, `SELECT id, user_id, created_at FROM auth_tokens WHERE id = $1`, id).
		Scan(&t.ID, &t.UserID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get token: %w", err)
	}
	return &t, nil
}

// Delete revoca el token. Borrar uno inexistente no es error.
func (r *TokenRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM auth_tokens WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
