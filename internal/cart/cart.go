package cart

import "sync"

// Item is one cart line. Quantity is always positive while the line is
// stored; a quantity reaching zero removes the line entirely.
type Item struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Category  string  `json:"category"`
}

// Store holds the cart lines of a single checkout session. It is in-memory
// only and dies with the session. Mutations notify the registered change
// callback so the owning session can propagate the new state.
type Store struct {
	mu       sync.Mutex
	items    []Item
	onChange func(items []Item)
}

func New() *Store {
	return &Store{}
}

// OnChange registers the callback invoked after every mutation with a copy
// of the current lines. Only one callback is held; the last registration
// wins.
func (s *Store) OnChange(fn func(items []Item)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// AddOrIncrement adds one unit of the given product. If a line with the same
// ID already exists its quantity grows by one, otherwise a new line with
// quantity 1 is appended. Never fails.
func (s *Store) AddOrIncrement(p Item) {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		p.Quantity = 1
		s.items = append(s.items, p)
	}
	s.notifyLocked()
	s.mu.Unlock()
}

// UpdateQuantity adds delta (positive or negative) to the line's quantity,
// clamped at zero; a zero result removes the line. Unknown IDs are a no-op.
func (s *Store) UpdateQuantity(id int64, delta int) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		q := s.items[i].Quantity + delta
		if q <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = q
		}
		s.notifyLocked()
		break
	}
	s.mu.Unlock()
}

// Remove drops the line with the given ID, if present.
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.notifyLocked()
			break
		}
	}
	s.mu.Unlock()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.notifyLocked()
	s.mu.Unlock()
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

func (s *Store) copyLocked() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) notifyLocked() {
	if s.onChange != nil {
		s.onChange(s.copyLocked())
	}
}
