package settings

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
)

// Repository owns the set of serial terminal settings. All writes are
// validated and serialized; reads may run concurrently.
type Repository struct {
	mu        sync.RWMutex
	store     Store
	validator Validator
	log       *slog.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithValidator replaces the standard Validator.
func WithValidator(v Validator) Option {
	return func(r *Repository) {
		r.validator = v
	}
}

// WithLogger sets the logger used for debug output of write operations.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRepository returns a Repository persisting through store.
func NewRepository(store Store, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Validator returns the validator applied on every write.
func (r *Repository) Validator() Validator { return r.validator }

// Close closes the underlying store.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Close()
}

// Create validates candidate, checks its port is free and persists it under
// a fresh id. Any id set on candidate is ignored.
func (r *Repository) Create(ctx context.Context, candidate Setting) (Setting, error) {
	candidate.Port = strings.TrimSpace(candidate.Port)
	candidate.ID = 0
	if err := r.validator.Validate(candidate); err != nil {
		return Setting{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, found, err := r.store.ByPort(ctx, candidate.Port)
	if err != nil {
		return Setting{}, storageError("lookup port", err)
	}
	if found {
		return Setting{}, &DuplicatePortError{Port: candidate.Port, ExistingID: existing.ID}
	}

	created, err := r.store.Insert(ctx, candidate)
	if err != nil {
		if errors.Is(err, ErrDuplicatePort) {
			return Setting{}, &DuplicatePortError{Port: candidate.Port}
		}
		return Setting{}, storageError("insert", err)
	}
	r.log.Debug("setting created", "id", created.ID, "port", created.Port, "framing", created.Framing())
	return created, nil
}

// Update replaces every field of the record id with candidate, keeping the
// id. Renaming the port is allowed when no other record holds the new one.
func (r *Repository) Update(ctx context.Context, id int64, candidate Setting) (Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, found, err := r.store.ByID(ctx, id)
	if err != nil {
		return Setting{}, storageError("lookup id", err)
	}
	if !found {
		return Setting{}, &NotFoundError{ID: id}
	}

	candidate.Port = strings.TrimSpace(candidate.Port)
	candidate.ID = id
	if err := r.validator.Validate(candidate); err != nil {
		return Setting{}, err
	}

	if candidate.Port != current.Port {
		other, taken, err := r.store.ByPort(ctx, candidate.Port)
		if err != nil {
			return Setting{}, storageError("lookup port", err)
		}
		if taken && other.ID != id {
			return Setting{}, &DuplicatePortError{Port: candidate.Port, ExistingID: other.ID}
		}
	}

	if err := r.store.Replace(ctx, candidate); err != nil {
		switch {
		case errors.Is(err, ErrDuplicatePort):
			return Setting{}, &DuplicatePortError{Port: candidate.Port}
		case errors.Is(err, ErrNotFound):
			return Setting{}, &NotFoundError{ID: id}
		}
		return Setting{}, storageError("replace", err)
	}
	r.log.Debug("setting updated", "id", id, "port", candidate.Port, "framing", candidate.Framing())
	return candidate, nil
}

// Delete removes the record id. Deleting an unknown id is not an error; the
// result reports whether a record was removed.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted, err := r.store.Delete(ctx, id)
	if err != nil {
		return false, storageError("delete", err)
	}
	if deleted {
		r.log.Debug("setting deleted", "id", id)
	}
	return deleted, nil
}

// GetByID returns the record id. A missing record is reported through the
// boolean, not as an error.
func (r *Repository) GetByID(ctx context.Context, id int64) (Setting, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, found, err := r.store.ByID(ctx, id)
	if err != nil {
		return Setting{}, false, storageError("get by id", err)
	}
	return s, found, nil
}

// GetByPort returns the record configured for port, if any.
func (r *Repository) GetByPort(ctx context.Context, port string) (Setting, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, found, err := r.store.ByPort(ctx, strings.TrimSpace(port))
	if err != nil {
		return Setting{}, false, storageError("get by port", err)
	}
	return s, found, nil
}

// ListAll returns every record in ascending id order.
func (r *Repository) ListAll(ctx context.Context) ([]Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list, err := r.store.List(ctx)
	if err != nil {
		return nil, storageError("list", err)
	}
	return list, nil
}

// Prune deletes every record whose port is not in present, i.e. whose
// device has been deregistered, and returns the removed records.
func (r *Repository) Prune(ctx context.Context, present []string) ([]Setting, error) {
	keep := make(map[string]struct{}, len(present))
	for _, p := range present {
		keep[strings.TrimSpace(p)] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.store.List(ctx)
	if err != nil {
		return nil, storageError("list", err)
	}
	var removed []Setting
	for _, s := range list {
		if _, ok := keep[s.Port]; ok {
			continue
		}
		deleted, err := r.store.Delete(ctx, s.ID)
		if err != nil {
			return removed, storageError("delete", err)
		}
		if deleted {
			removed = append(removed, s)
			r.log.Debug("setting pruned", "id", s.ID, "port", s.Port)
		}
	}
	return removed, nil
}
