package apiclient

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// inflight garantiza a lo sumo un envío por clave: los duplicados concurrentes comparten
// la misma llamada y los posteriores a un éxito reciben el resultado recordado.
// Un envío fallido no se recuerda, así que puede reintentarse.
type inflight struct {
	group singleflight.Group

	mu   sync.Mutex
	done map[string]any
}

func newInflight() *inflight {
	return &inflight{done: make(map[string]any)}
}

func (g *inflight) do(key string, fn func() (any, error)) (any, bool, error) {
	if v, ok := g.completed(key); ok {
		return v, true, nil
	}
	v, err, shared := g.group.Do(key, func() (any, error) {
		if v, ok := g.completed(key); ok {
			return v, nil
		}
		v, err := fn()
		if err == nil {
			g.mu.Lock()
			g.done[key] = v
			g.mu.Unlock()
		}
		return v, err
	})
	return v, shared, err
}

func (g *inflight) completed(key string) (any, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, ok := g.done[key]
	return v, ok
}
