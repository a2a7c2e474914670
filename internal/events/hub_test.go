package events

import (
	"testing"

	"github.com/alfagnish/itemsd/internal/items"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_Notify(t *testing.T) {
	t.Run("delivers to every subscriber", func(t *testing.T) {
		h := NewHub(4)
		a, unsubA := h.Subscribe()
		defer unsubA()
		b, unsubB := h.Subscribe()
		defer unsubB()

		e := items.Event{Type: items.EventCreated, Item: items.Item{ID: 1, Title: "a"}}
		h.Notify(e)

		assert.Equal(t, e, <-a)
		assert.Equal(t, e, <-b)
	})

	t.Run("drops events for a full subscriber", func(t *testing.T) {
		h := NewHub(1)
		ch, unsub := h.Subscribe()
		defer unsub()

		h.Notify(items.Event{Type: items.EventCreated, Item: items.Item{ID: 1}})
		h.Notify(items.Event{Type: items.EventCreated, Item: items.Item{ID: 2}})

		got := <-ch
		assert.Equal(t, 1, got.Item.ID)
		select {
		case e := <-ch:
			t.Fatalf("unexpected event: %+v", e)
		default:
		}
	})

	t.Run("works as the store notifier", func(t *testing.T) {
		h := NewHub(0)
		ch, unsub := h.Subscribe()
		defer unsub()

		s := items.NewStore(h)
		s.Create(items.Draft{Title: "from store"})

		e := <-ch
		assert.Equal(t, items.EventCreated, e.Type)
		assert.Equal(t, "from store", e.Item.Title)
	})
}

func TestHub_Subscribe(t *testing.T) {
	h := NewHub(1)
	ch, unsub := h.Subscribe()
	require.Equal(t, 1, h.Subscribers())

	unsub()
	unsub()
	assert.Equal(t, 0, h.Subscribers())

	_, open := <-ch
	assert.False(t, open)

	// Notifying with no subscribers must not panic.
	h.Notify(items.Event{Type: items.EventUpdated})
}
