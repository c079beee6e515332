package geoindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishDeliversToSubscriber(t *testing.T) {
	h := NewHub()
	ch, id := h.Subscribe()
	defer h.Unsubscribe(id)

	snapshot := []NodeSnapshot{{ID: 0, Leaf: true}}
	h.Publish("alice", snapshot)

	update := <-ch
	assert.Equal(t, "alice", update.SessionKey)
	assert.Equal(t, snapshot, update.Snapshot)
}

func TestHubPublishFansOutToAllObservers(t *testing.T) {
	h := NewHub()
	ch1, id1 := h.Subscribe()
	ch2, id2 := h.Subscribe()
	defer h.Unsubscribe(id1)
	defer h.Unsubscribe(id2)

	h.Publish("alice", nil)

	u1 := <-ch1
	u2 := <-ch2
	assert.Equal(t, "alice", u1.SessionKey)
	assert.Equal(t, "alice", u2.SessionKey)
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	ch, id := h.Subscribe()
	h.Unsubscribe(id)

	_, ok := <-ch
	assert.False(t, ok)
}

func TestHubEvictsObserverAfterSustainedFullChannel(t *testing.T) {
	h := NewHub()
	ch, id := h.Subscribe()

	// Fill the observer's buffer, then publish past it until eviction.
	for i := 0; i < observerChanCap+dropAfter+1; i++ {
		h.Publish("alice", nil)
	}

	h.mu.Lock()
	_, stillRegistered := h.observers[id]
	h.mu.Unlock()
	assert.False(t, stillRegistered)

	// Drain the buffered updates; channel should be closed, not leak blocked senders.
	for range ch {
	}
	_, ok := <-ch
	require.False(t, ok)
}
