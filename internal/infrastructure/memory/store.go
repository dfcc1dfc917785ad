// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con STORAGE_DRIVER=memory (desarrollo local) y en los tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/mtaabiz/internal/application/billing"
	"github.com/jhoicas/mtaabiz/internal/domain"
	"github.com/jhoicas/mtaabiz/internal/domain/entity"
	"github.com/jhoicas/mtaabiz/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.TokenRepository   = (*TokenRepo)(nil)
	_ repository.InvoiceRepository = (*InvoiceRepo)(nil)
	_ repository.MessageRepository = (*MessageRepo)(nil)
	_ billing.InvoiceTxRunner      = (*TxRunner)(nil)
)

// Store datos compartidos por los repos en memoria.
type Store struct {
	mu       sync.RWMutex
	users    map[string]entity.User
	tokens   map[string]entity.AuthToken
	invoices []entity.Invoice
	messages []entity.MessageTemplate
	txMu     sync.Mutex
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:  make(map[string]entity.User),
		tokens: make(map[string]entity.AuthToken),
	}
}

// Users, Tokens, Invoices, Messages y TxRunner devuelven los adaptadores sobre este almacén.
func (s *Store) Users() *UserRepo       { return &UserRepo{s: s} }
func (s *Store) Tokens() *TokenRepo     { return &TokenRepo{s: s} }
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s} }
func (s *Store) Messages() *MessageRepo { return &MessageRepo{s: s} }
func (s *Store) TxRunner() *TxRunner    { return &TxRunner{s: s} }

// ── Usuarios ──────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) SetPro(_ context.Context, id string, isPro bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsPro = isPro
	u.UpdatedAt = time.Now()
	r.s.users[id] = u
	return nil
}

// LockByID no hace nada: RunInvoice ya serializa las transacciones.
func (r *UserRepo) LockByID(context.Context, string) error { return nil }

// ── Tokens ────────────────────────────────────────────────────────────────────

// TokenRepo tokens emitidos en memoria.
type TokenRepo struct{ s *Store }

func (r *TokenRepo) Create(_ context.Context, t *entity.AuthToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tokens[t.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.tokens[t.ID] = *t
	return nil
}

func (r *TokenRepo) GetByID(_ context.Context, id string) (*entity.AuthToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tokens[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *TokenRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.tokens, id)
	return nil
}

// ── Facturas ──────────────────────────────────────────────────────────────────

// InvoiceRepo facturas en memoria.
type InvoiceRepo struct{ s *Store }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv.IdempotencyKey != "" {
		for _, e := range r.s.invoices {
			if e.UserID == inv.UserID && e.IdempotencyKey == inv.IdempotencyKey {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.invoices = append(r.s.invoices, *inv)
	return nil
}

func (r *InvoiceRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Invoice
	for i := range r.s.invoices {
		if r.s.invoices[i].UserID == userID {
			inv := r.s.invoices[i]
			out = append(out, &inv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (r *InvoiceRepo) CountByUserSince(_ context.Context, userID string, since time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, inv := range r.s.invoices {
		if inv.UserID == userID && !inv.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *InvoiceRepo) GetByIdempotencyKey(_ context.Context, userID, key string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, inv := range r.s.invoices {
		if inv.UserID == userID && inv.IdempotencyKey == key {
			inv := inv
			return &inv, nil
		}
	}
	return nil, nil
}

// ── Mensajes ──────────────────────────────────────────────────────────────────

// MessageRepo plantillas de mensaje en memoria.
type MessageRepo struct{ s *Store }

func (r *MessageRepo) Create(_ context.Context, m *entity.MessageTemplate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.IdempotencyKey != "" {
		for _, e := range r.s.messages {
			if e.UserID == m.UserID && e.IdempotencyKey == m.IdempotencyKey {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.messages = append(r.s.messages, *m)
	return nil
}

func (r *MessageRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.MessageTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.MessageTemplate
	for i := range r.s.messages {
		if r.s.messages[i].UserID == userID {
			m := r.s.messages[i]
			out = append(out, &m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (r *MessageRepo) GetByIdempotencyKey(_ context.Context, userID, key string) (*entity.MessageTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.messages {
		if m.UserID == userID && m.IdempotencyKey == key {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

// ── Transacciones ─────────────────────────────────────────────────────────────

// TxRunner serializa las transacciones de facturación.
type TxRunner struct{ s *Store }

// RunInvoice ejecuta fn con exclusión mutua. No hay rollback: fn solo escribe al final.
func (t *TxRunner) RunInvoice(ctx context.Context, fn func(repository.UserRepository, repository.InvoiceRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	return fn(t.s.Users(), t.s.Invoices())
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
