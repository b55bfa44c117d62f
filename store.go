package settings

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// Store is the durable, key-indexed storage the Repository writes through.
//
// Implementations must return ErrNotFound from Replace when the id is
// unknown, ErrDuplicatePort when their own uniqueness constraint on the port
// fires, and must never hand out an id twice, even after deletion. List
// returns records in ascending id order. Enumerated fields read back from
// storage must be parsed strictly; unknown text is an error.
type Store interface {
	Insert(ctx context.Context, s Setting) (Setting, error)
	Replace(ctx context.Context, s Setting) error
	Delete(ctx context.Context, id int64) (bool, error)
	ByID(ctx context.Context, id int64) (Setting, bool, error)
	ByPort(ctx context.Context, port string) (Setting, bool, error)
	List(ctx context.Context) ([]Setting, error)
	Close() error
}

// memoryStore keeps records in process memory.
type memoryStore struct {
	mu     sync.RWMutex
	lastID int64
	byID   map[int64]Setting
	closed bool
}

// Ensure memoryStore implements Store at compile time
var _ Store = (*memoryStore)(nil)

// NewMemoryStore returns an empty in-memory Store, one per test or embedding.
func NewMemoryStore() Store {
	return &memoryStore{byID: make(map[int64]Setting)}
}

func (m *memoryStore) Insert(ctx context.Context, s Setting) (Setting, error) {
	if err := ctx.Err(); err != nil {
		return Setting{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Setting{}, errStoreClosed
	}
	if m.portTaken(s.Port, 0) {
		return Setting{}, ErrDuplicatePort
	}
	m.lastID++
	s.ID = m.lastID
	m.byID[s.ID] = s
	return s, nil
}

func (m *memoryStore) Replace(ctx context.Context, s Setting) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errStoreClosed
	}
	if _, ok := m.byID[s.ID]; !ok {
		return ErrNotFound
	}
	if m.portTaken(s.Port, s.ID) {
		return ErrDuplicatePort
	}
	m.byID[s.ID] = s
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false, errStoreClosed
	}
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

func (m *memoryStore) ByID(ctx context.Context, id int64) (Setting, bool, error) {
	if err := ctx.Err(); err != nil {
		return Setting{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return Setting{}, false, errStoreClosed
	}
	s, ok := m.byID[id]
	return s, ok, nil
}

func (m *memoryStore) ByPort(ctx context.Context, port string) (Setting, bool, error) {
	if err := ctx.Err(); err != nil {
		return Setting{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return Setting{}, false, errStoreClosed
	}
	for _, s := range m.byID {
		if s.Port == port {
			return s, true, nil
		}
	}
	return Setting{}, false, nil
}

func (m *memoryStore) List(ctx context.Context) ([]Setting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, errStoreClosed
	}
	out := make([]Setting, 0, len(m.byID))
	for _, s := range m.byID {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b Setting) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (m *memoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// portTaken must be called with m.mu held.
func (m *memoryStore) portTaken(port string, except int64) bool {
	for id, s := range m.byID {
		if id != except && s.Port == port {
			return true
		}
	}
	return false
}
