package auth

import "sync"

// Store is the process-wide auth state machine: it owns one State and
// serializes every Dispatch. The UI layer adapts Subscribe to whatever
// reactive binding it uses; the core never touches UI concerns.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

// NewStore creates a Store in the initial (loading) state.
func NewStore() *Store {
	return &Store{
		state:     initialState,
		listeners: map[int]func(State){},
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch runs the reducer and notifies subscribers with the new state.
// Dispatches are serialized; listeners are invoked synchronously in
// registration order while the lock is held, so they must not call back
// into the Store.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = reduce(s.state, action)

	for _, fn := range sortedListeners(s.listeners) {
		fn(s.state)
	}
}

// Subscribe registers a listener for state changes and returns an
// unsubscribe function.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func sortedListeners(m map[int]func(State)) []func(State) {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	// insertion sort; listener counts are tiny
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	fns := make([]func(State), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, m[id])
	}
	return fns
}
