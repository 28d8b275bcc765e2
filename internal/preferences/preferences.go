// Package preferences stores the user's display and content settings.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/rastogi30/Personalized-Dashboard/internal/logging"
	"github.com/rastogi30/Personalized-Dashboard/internal/metrics"
	"github.com/rastogi30/Personalized-Dashboard/internal/storage"
)

// Key is the storage key of the preferences document.
const Key = "userPreferences"

// DefaultCategory is used when no category is selected.
const DefaultCategory = "technology"

// AvailableCategories are the news categories a user can pick from.
var AvailableCategories = []string{
	"business",
	"entertainment",
	"general",
	"health",
	"science",
	"sports",
	"technology",
}

var ErrUnknownCategory = errors.New("unknown category")

// Preferences is the persisted settings record.
type Preferences struct {
	Categories []string `json:"categories"`
	DarkMode   bool     `json:"darkMode"`
	Language   string   `json:"language"`
}

// Defaults returns the settings of a new user.
func Defaults() Preferences {
	return Preferences{
		Categories: []string{"technology", "business", "entertainment"},
		DarkMode:   false,
		Language:   "en",
	}
}

// PrimaryCategory is the category used for the news feed.
func (p Preferences) PrimaryCategory() string {
	if len(p.Categories) == 0 {
		return DefaultCategory
	}
	return p.Categories[0]
}

func (p Preferences) clone() Preferences {
	p.Categories = append([]string(nil), p.Categories...)
	return p
}

// Document is where preferences are persisted. storage.Document satisfies it.
type Document interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Store holds the current preferences. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	doc    Document
	prefs  Preferences
	logger *log.Entry
}

// Option configures a Store.
type Option func(*Store)

// WithLogger replaces the store's logger.
func WithLogger(logger *log.Entry) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates a store over doc holding Defaults until Load is called.
func New(doc Document, opts ...Option) *Store {
	s := &Store{
		doc:    doc,
		prefs:  Defaults(),
		logger: logging.For("preferences"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads stored preferences over the defaults field by field. Fields that
// are missing, null or unreadable keep their default value; data that is not
// a JSON object yields Defaults.
func (s *Store) Load(ctx context.Context) Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs = Defaults()
	data, err := s.doc.Read(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.WithError(err).Warn("Failed to read preferences, using defaults")
		}
		return s.prefs.clone()
	}

	var stored map[string]json.RawMessage
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.WithError(err).Warn("Discarding corrupt preferences")
		metrics.RecordStorageError(Key, "decode")
		return s.prefs.clone()
	}

	loaded := Defaults()
	for name, err := range map[string]error{
		"categories": decodeField(stored, "categories", &loaded.Categories),
		"darkMode":   decodeField(stored, "darkMode", &loaded.DarkMode),
		"language":   decodeField(stored, "language", &loaded.Language),
	} {
		if err != nil {
			s.logger.WithError(err).WithField("field", name).Warn("Ignoring unreadable preference")
			metrics.RecordStorageError(Key, "decode")
		}
	}
	s.prefs = loaded
	return s.prefs.clone()
}

// decodeField overwrites dst with stored[name] when present and readable.
func decodeField[T any](stored map[string]json.RawMessage, name string, dst *T) error {
	raw, ok := stored[name]
	if !ok || string(raw) == "null" {
		return nil
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return err
	}
	*dst = value
	return nil
}

// Get returns the current preferences.
func (s *Store) Get() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.clone()
}

// PrimaryCategory returns the current primary category.
func (s *Store) PrimaryCategory() string {
	return s.Get().PrimaryCategory()
}

// ToggleDarkMode flips the theme.
func (s *Store) ToggleDarkMode(ctx context.Context) (Preferences, error) {
	return s.update(ctx, func(p *Preferences) error {
		p.DarkMode = !p.DarkMode
		return nil
	})
}

// UpdateCategories replaces the category list, dropping blanks and repeats.
func (s *Store) UpdateCategories(ctx context.Context, categories []string) (Preferences, error) {
	return s.update(ctx, func(p *Preferences) error {
		cleaned := lo.Map(categories, func(c string, _ int) string { return strings.TrimSpace(c) })
		cleaned = lo.Filter(cleaned, func(c string, _ int) bool { return c != "" })
		p.Categories = lo.Uniq(cleaned)
		return nil
	})
}

// ToggleCategory adds name when absent and removes it when present.
func (s *Store) ToggleCategory(ctx context.Context, name string) (Preferences, error) {
	if !lo.Contains(AvailableCategories, name) {
		return s.Get(), fmt.Errorf("%q: %w", name, ErrUnknownCategory)
	}
	return s.update(ctx, func(p *Preferences) error {
		if lo.Contains(p.Categories, name) {
			p.Categories = lo.Without(p.Categories, name)
		} else {
			p.Categories = append(p.Categories, name)
		}
		return nil
	})
}

// SetLanguage sets the content language.
func (s *Store) SetLanguage(ctx context.Context, lang string) (Preferences, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return s.Get(), errors.New("language is required")
	}
	return s.update(ctx, func(p *Preferences) error {
		p.Language = lang
		return nil
	})
}

// update applies fn and persists the whole record. When the write fails the
// change is kept in memory and the error returned.
func (s *Store) update(ctx context.Context, fn func(*Preferences) error) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs.clone()
	if err := fn(&next); err != nil {
		return s.prefs.clone(), err
	}
	s.prefs = next

	data, err := json.Marshal(s.prefs)
	if err != nil {
		return s.prefs.clone(), fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := s.doc.Write(ctx, data); err != nil {
		s.logger.WithError(err).Error("Failed to save preferences")
		return s.prefs.clone(), fmt.Errorf("failed to save preferences: %w", err)
	}
	return s.prefs.clone(), nil
}
