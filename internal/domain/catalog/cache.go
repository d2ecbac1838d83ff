package catalog

import (
	"sync"
	"time"
)

// Entry es el snapshot cacheado del catálogo: lista filtrada + timestamp
// del fetch. Se reemplaza entero en cada refetch, nunca se muta campo a
// campo, para que un lector concurrente no vea estado a medias.
type Entry struct {
	Animals   []Animal
	FetchedAt time.Time
}

// Fresh indica si la entrada sigue vigente para el TTL dado.
func (e *Entry) Fresh(now time.Time, ttl time.Duration) bool {
	return e != nil && now.Sub(e.FetchedAt) < ttl
}

// cacheSlot es el único recurso mutable compartido entre requests del
// proceso: un slot con la última entrada buena conocida.
type cacheSlot struct {
	mu    sync.RWMutex
	entry *Entry
}

func (c *cacheSlot) load() *Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entry
}

// swap publica la entrada nueva de forma atómica (most-recent-wins).
func (c *cacheSlot) swap(e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = e
}
