package items

import (
	"fmt"
	"sync"
)

// Item is a single to-do style entry.
type Item struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Draft carries the fields accepted when creating an item. Omitted JSON
// fields keep their zero values.
type Draft struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Patch carries the fields accepted when updating an item. Nil fields are
// left untouched.
type Patch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// EventType names a change applied to the store.
type EventType string

const (
	EventCreated EventType = "item.created"
	EventUpdated EventType = "item.updated"
)

// Event describes a committed change to a single item.
type Event struct {
	Type EventType `json:"type"`
	Item Item      `json:"item"`
}

// Notifier receives store events in commit order. Notify must not block
// and must not call back into the Store.
type Notifier interface {
	Notify(Event)
}

// Store is a thread-safe, in-memory item collection. Items keep their
// insertion order and ids are never reused.
type Store struct {
	mu     sync.RWMutex
	items  []*Item
	index  map[int]int
	lastID int

	// notifyMu is taken before mu is released so that events reach the
	// notifier in the order their mutations were committed.
	notifyMu sync.Mutex
	notifier Notifier
}

// NewStore creates an empty store. A nil notifier disables events.
func NewStore(n Notifier) *Store {
	return &Store{
		index:    make(map[int]int),
		notifier: n,
	}
}

// Seed appends n placeholder items. Completed alternates, starting with
// false. No events are emitted.
func (s *Store) Seed(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < n; i++ {
		id := s.lastID + 1
		s.insert(Item{
			ID:        id,
			Title:     fmt.Sprintf("Item %d", id),
			Completed: id%2 == 0,
		})
	}
}

// Create assigns the next id to d and appends it to the collection.
func (s *Store) Create(d Draft) Item {
	s.mu.Lock()
	item := Item{
		ID:        s.lastID + 1,
		Title:     d.Title,
		Completed: d.Completed,
	}
	s.insert(item)
	s.notifyMu.Lock()
	s.mu.Unlock()

	s.notify(EventCreated, item)
	s.notifyMu.Unlock()
	return item
}

// All returns a copy of every item in insertion order.
func (s *Store) All() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, *it)
	}
	return out
}

// Get returns the item with the given id. The boolean is false when no
// such item exists.
func (s *Store) Get(id int) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return Item{}, false
	}
	return *s.items[pos], true
}

// Update merges p onto the item with the given id and returns the result.
// The boolean is false when no such item exists.
func (s *Store) Update(id int, p Patch) (Item, bool) {
	s.mu.Lock()
	pos, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return Item{}, false
	}

	it := s.items[pos]
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Completed != nil {
		it.Completed = *p.Completed
	}
	updated := *it
	s.notifyMu.Lock()
	s.mu.Unlock()

	s.notify(EventUpdated, updated)
	s.notifyMu.Unlock()
	return updated, true
}

// Len returns the number of stored items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// insert must be called with mu held.
func (s *Store) insert(it Item) {
	s.index[it.ID] = len(s.items)
	s.items = append(s.items, &it)
	s.lastID = it.ID
}

func (s *Store) notify(t EventType, it Item) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(Event{Type: t, Item: it})
}
