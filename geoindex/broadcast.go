package geoindex

import "sync"

// observerChanCap is the per-observer buffer size, mirroring the bounded
// per-connection channel capacity the corpus's forwarding layer uses for a
// different resource (connections rather than dumps).
const observerChanCap = 20

// dropAfter is how many consecutive full-channel sends an observer can miss
// before Hub evicts it.
const dropAfter = 20

// Update is one broadcast: the session that mutated, and its resulting dump.
type Update struct {
	SessionKey string
	Snapshot   []NodeSnapshot
}

type observer struct {
	ch      chan Update
	fullFor int
}

// Hub fans out a dump to every registered observer after each session
// mutation. A full or unresponsive observer is evicted rather than allowed
// to block the mutating session.
type Hub struct {
	mu        sync.Mutex
	observers map[int]*observer
	nextID    int
}

// NewHub creates an empty broadcast hub.
func NewHub() *Hub {
	return &Hub{observers: make(map[int]*observer)}
}

// Subscribe registers a new observer and returns its channel and an
// identifier for later Unsubscribe. The channel is closed by Unsubscribe or
// when Hub evicts the observer for falling too far behind.
func (h *Hub) Subscribe() (<-chan Update, int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Update, observerChanCap)
	h.observers[id] = &observer{ch: ch}
	return ch, id
}

// Unsubscribe removes an observer and closes its channel. A no-op if id is
// unknown (already evicted).
func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if obs, ok := h.observers[id]; ok {
		close(obs.ch)
		delete(h.observers, id)
	}
}

// Publish sends an update to every registered observer, evicting any whose
// channel has been full for dropAfter consecutive publishes.
func (h *Hub) Publish(sessionKey string, snapshot []NodeSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	update := Update{SessionKey: sessionKey, Snapshot: snapshot}
	for id, obs := range h.observers {
		select {
		case obs.ch <- update:
			obs.fullFor = 0
		default:
			obs.fullFor++
			if obs.fullFor >= dropAfter {
				close(obs.ch)
				delete(h.observers, id)
			}
		}
	}
}
