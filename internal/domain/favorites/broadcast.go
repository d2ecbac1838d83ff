package favorites

import "sync"

// Subscription es el extremo de consumo de una suscripción viva a la
// colección de un usuario. Cancel desregistra en forma síncrona: después
// de volver, no se entrega ningún snapshot más por este canal.
type Subscription struct {
	C <-chan Snapshot

	cancel func()
	once   sync.Once
}

func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

// broadcaster reparte snapshots completos a todas las suscripciones
// activas de un usuario. Reemplaza el patrón de listeners/callbacks por
// canales con cancelación determinística.
type broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan Snapshot
}

func newBroadcaster() *broadcaster {
	return &broadcaster{
		subs: make(map[string]map[int]chan Snapshot),
	}
}

// subscribe registra un canal nuevo y lo siembra con el snapshot inicial.
// Cada suscriptor recibe su propio canal: cancelar uno no afecta al resto.
func (b *broadcaster) subscribe(userID string, initial Snapshot) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan Snapshot, 1)
	ch <- initial

	if b.subs[userID] == nil {
		b.subs[userID] = make(map[int]chan Snapshot)
	}
	b.subs[userID][id] = ch

	sub := &Subscription{C: ch}
	sub.cancel = func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		set, ok := b.subs[userID]
		if !ok {
			return
		}
		if _, ok := set[id]; !ok {
			return
		}
		delete(set, id)
		if len(set) == 0 {
			delete(b.subs, userID)
		}
		close(ch)
	}
	return sub
}

// publish entrega el snapshot a cada suscriptor del usuario. Buffer de 1
// con reemplazo del pendiente: ante mutaciones muy rápidas un consumidor
// lento puede saltearse estados intermedios, pero el último estado nunca
// se pierde.
func (b *broadcaster) publish(userID string, snap Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs[userID] {
		select {
		case ch <- snap:
		default:
			// Descarta el pendiente y deja el más nuevo. Los sends están
			// serializados por el mutex, así que acá siempre hay lugar.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
