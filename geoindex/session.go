package geoindex

import (
	"sync"

	"github.com/nullisland/omtree/rtree"
)

// DefaultMaxEntries is passed to rtree.New for every session's tree.
const DefaultMaxEntries = rtree.DefaultMaxEntries

// session pairs one tree with the mutex that serializes access to it.
type session struct {
	mu   sync.Mutex
	tree *rtree.RTree[string]
}

// SessionStore owns one tree per session key, created lazily on first use.
// Independent sessions proceed concurrently; a single session's own calls
// are serialized against each other by its own mutex.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	hub      *Hub
}

// NewSessionStore creates an empty store. hub may be nil, in which case
// mutations are not broadcast anywhere.
func NewSessionStore(hub *Hub) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		hub:      hub,
	}
}

// sessionFor returns the session for key, creating it (and its tree) on
// first use.
func (s *SessionStore) sessionFor(key string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		sess = &session{tree: rtree.New[string](DefaultMaxEntries, nil)}
		s.sessions[key] = sess
	}
	return sess
}

// Insert decodes a geometry document, computes its bounding envelope, and
// inserts payload under key's tree. Broadcasts the resulting dump to the
// hub (if any) after the mutation.
func (s *SessionStore) Insert(key string, payload string, geomJSON []byte) error {
	g, err := ParseGeometry(geomJSON)
	if err != nil {
		return err
	}

	sess := s.sessionFor(key)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.tree.Insert(payload, g.BoundingEnvelope()); err != nil {
		return err
	}
	s.broadcast(key, sess.tree)
	return nil
}

// Search returns every entry in key's session whose envelope intersects
// window.
func (s *SessionStore) Search(key string, window rtree.Envelope) ([]rtree.Entry[string], error) {
	sess := s.sessionFor(key)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.tree.Search(window)
}

// Remove deletes payload from key's session if it covers env, broadcasting
// the resulting dump afterward regardless of whether anything was removed.
func (s *SessionStore) Remove(key string, payload string, env rtree.Envelope) error {
	sess := s.sessionFor(key)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.tree.Remove(payload, env); err != nil {
		return err
	}
	s.broadcast(key, sess.tree)
	return nil
}

// Clear resets key's session to an empty tree and broadcasts the result.
func (s *SessionStore) Clear(key string) {
	sess := s.sessionFor(key)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.tree.Clear()
	s.broadcast(key, sess.tree)
}

// broadcast must be called with sess.mu held.
func (s *SessionStore) broadcast(key string, tree *rtree.RTree[string]) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(key, Dump(tree))
}
