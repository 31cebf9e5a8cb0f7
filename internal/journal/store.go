package journal

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Namespace is the persistence key of the journal document.
const Namespace = "@radiant_journal"

// Persistence stores opaque documents by namespace.
type Persistence interface {
	Load(ctx context.Context, namespace string) (data []byte, found bool, err error)
	Save(ctx context.Context, namespace string, data []byte) error
	Delete(ctx context.Context, namespace string) error
}

// Store reads and writes the journal document.
type Store struct {
	persist Persistence
	log     *zap.Logger
}

// NewStore returns a Store. A nil logger discards diagnostics.
func NewStore(p Persistence, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{persist: p, log: log}
}

// Load returns the stored journal. Missing or unreadable data yields the
// initial journal.
func (s *Store) Load(ctx context.Context) Data {
	data, found, err := s.persist.Load(ctx, Namespace)
	if err != nil {
		s.log.Warn("reading journal failed, starting empty", zap.Error(err))
		return Initial()
	}
	if !found {
		return Initial()
	}
	d := Initial()
	if err := json.Unmarshal(data, &d); err != nil {
		s.log.Warn("journal data is corrupt, starting empty", zap.Error(err))
		return Initial()
	}
	d.normalize()
	return d
}

// Save writes the journal.
func (s *Store) Save(ctx context.Context, d Data) error {
	d.normalize()
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding journal: %w", err)
	}
	if err := s.persist.Save(ctx, Namespace, b); err != nil {
		return fmt.Errorf("saving journal: %w", err)
	}
	return nil
}

// Update loads the journal, applies fn and saves the result. Nothing is
// saved when fn returns an error.
func (s *Store) Update(ctx context.Context, fn func(*Data) error) (Data, error) {
	d := s.Load(ctx)
	if err := fn(&d); err != nil {
		return d, err
	}
	if err := s.Save(ctx, d); err != nil {
		return d, err
	}
	return d, nil
}

// Clear deletes the stored journal.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.persist.Delete(ctx, Namespace); err != nil {
		return fmt.Errorf("clearing journal: %w", err)
	}
	s.log.Info("journal cleared")
	return nil
}
