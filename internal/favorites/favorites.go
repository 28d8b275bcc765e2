// Package favorites keeps the user's ordered collection of saved items.
//
// This package enables the dashboard to:
// - Load the saved collection, recovering from missing or corrupt data
// - Add, remove, toggle and reorder favorites
// - Persist every change before returning
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/rastogi30/Personalized-Dashboard/internal/aggregator"
	"github.com/rastogi30/Personalized-Dashboard/internal/logging"
	"github.com/rastogi30/Personalized-Dashboard/internal/metrics"
	"github.com/rastogi30/Personalized-Dashboard/internal/storage"
)

// Key is the storage key of the favorites document.
const Key = "favorites"

// ErrNotFound is returned when no favorite has the requested id.
var ErrNotFound = errors.New("favorite not found")

// Document is where the collection is persisted. storage.Document satisfies it.
type Document interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// collection is the persisted layout.
type collection struct {
	Items []aggregator.Item `json:"items"`
}

// rawCollection is the persisted layout with items left undecoded.
type rawCollection struct {
	Items []json.RawMessage `json:"items"`
}

// Option configures a Store.
type Option func(*Store)

// WithLogger replaces the store's logger.
func WithLogger(logger *log.Entry) Option {
	return func(s *Store) { s.logger = logger }
}

// Store is the favorites collection. It is safe for concurrent use.
//
// Items are unique by ID and kept in user-chosen order. Mutations are written
// through; when a write fails the in-memory change stands and the error is
// returned.
type Store struct {
	mu     sync.Mutex
	doc    Document
	items  []aggregator.Item
	logger *log.Entry
}

// New creates a store over doc. Call Load to read the saved collection.
func New(doc Document, opts ...Option) *Store {
	s := &Store{
		doc:    doc,
		items:  make([]aggregator.Item, 0),
		logger: logging.For("favorites"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the stored one.
// Missing or unreadable data yields the empty collection.
func (s *Store) Load(ctx context.Context) []aggregator.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = s.read(ctx)
	metrics.FavoritesSize.Set(float64(len(s.items)))
	return s.snapshot()
}

func (s *Store) read(ctx context.Context) []aggregator.Item {
	data, err := s.doc.Read(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.WithError(err).Warn("Failed to read favorites, starting empty")
		}
		return make([]aggregator.Item, 0)
	}

	var stored rawCollection
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.WithError(err).Warn("Discarding corrupt favorites")
		metrics.RecordStorageError(Key, "decode")
		return make([]aggregator.Item, 0)
	}

	items := make([]aggregator.Item, 0, len(stored.Items))
	for i, raw := range stored.Items {
		var item aggregator.Item
		if err := json.Unmarshal(raw, &item); err != nil {
			s.logger.WithError(err).WithField("index", i).Warn("Skipping unreadable favorite")
			metrics.RecordStorageError(Key, "decode")
			continue
		}
		items = append(items, item)
	}
	return lo.UniqBy(items, func(item aggregator.Item) string { return item.ID })
}

// Items returns a copy of the current collection.
func (s *Store) Items() []aggregator.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Contains reports whether an item with id is saved.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Get returns the saved item with id.
func (s *Store) Get(id string) (aggregator.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return aggregator.Item{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return s.items[i], nil
}

// Add appends item unless its ID is already saved; the first add wins.
func (s *Store) Add(ctx context.Context, item aggregator.Item) ([]aggregator.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(item.ID) >= 0 {
		return s.snapshot(), nil
	}
	s.items = append(s.items, item)
	return s.snapshot(), s.persist(ctx)
}

// Remove deletes the item with id. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) ([]aggregator.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return s.snapshot(), nil
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return s.snapshot(), s.persist(ctx)
}

// Toggle removes item when saved and adds it otherwise.
// It reports whether the item is saved afterwards.
func (s *Store) Toggle(ctx context.Context, item aggregator.Item) (bool, []aggregator.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.ID); i >= 0 {
		s.items = append(s.items[:i:i], s.items[i+1:]...)
		return false, s.snapshot(), s.persist(ctx)
	}
	s.items = append(s.items, item)
	return true, s.snapshot(), s.persist(ctx)
}

// Reorder replaces the collection with items, as given.
//
// The caller is trusted: input that is not a permutation of the current
// collection is accepted and only logged. Use IsPermutation to reject it.
func (s *Store) Reorder(ctx context.Context, items []aggregator.Item) ([]aggregator.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !IsPermutation(s.items, items) {
		s.logger.WithFields(log.Fields{
			"current":   len(s.items),
			"requested": len(items),
		}).Warn("Reorder input is not a permutation of the saved favorites")
	}
	s.items = append(make([]aggregator.Item, 0, len(items)), items...)
	return s.snapshot(), s.persist(ctx)
}

// IsPermutation reports whether next holds exactly the IDs of current,
// each as often, in any order.
func IsPermutation(current, next []aggregator.Item) bool {
	byID := func(item aggregator.Item) string { return item.ID }
	return len(current) == len(next) &&
		maps.Equal(lo.CountValuesBy(current, byID), lo.CountValuesBy(next, byID))
}

func (s *Store) indexOf(id string) int {
	_, i, ok := lo.FindIndexOf(s.items, func(item aggregator.Item) bool { return item.ID == id })
	if !ok {
		return -1
	}
	return i
}

func (s *Store) snapshot() []aggregator.Item {
	return append(make([]aggregator.Item, 0, len(s.items)), s.items...)
}

func (s *Store) persist(ctx context.Context) error {
	metrics.FavoritesSize.Set(float64(len(s.items)))

	data, err := json.Marshal(collection{Items: s.items})
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.doc.Write(ctx, data); err != nil {
		s.logger.WithError(err).Error("Failed to save favorites")
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}
