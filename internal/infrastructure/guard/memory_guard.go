// Package guard implementa ports.SubmissionGuard: en memoria del proceso o con locks de Redis.
package guard

import (
	"context"
	"sync"

	"github.com/jhoicas/mtaabiz/internal/application/ports"
	"github.com/jhoicas/mtaabiz/internal/domain"
)

var _ ports.SubmissionGuard = (*MemoryGuard)(nil)

// MemoryGuard guardia de un solo proceso (sin Redis configurado).
type MemoryGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewMemoryGuard construye la guardia vacía.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{held: make(map[string]struct{})}
}

// Acquire toma la clave o devuelve domain.ErrSubmissionPending si ya está tomada.
func (g *MemoryGuard) Acquire(_ context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.held[key]; ok {
		return nil, domain.ErrSubmissionPending
	}
	g.held[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, nil
}
