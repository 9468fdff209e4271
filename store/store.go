// ABOUTME: Call-note store owning every entity collection and its cache
// ABOUTME: Explicit New/Init/Close lifecycle; reads go through the cache, mutations write through
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/callbook/backing"
	"github.com/harperreed/callbook/models"
)

var (
	// ErrNotFound is returned when a mutation names an id that does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrWriteFailed wraps every backing write failure. The cache is left untouched.
	ErrWriteFailed = errors.New("store: write failed")
	// ErrClosed is returned by mutations after Close.
	ErrClosed = errors.New("store: closed")
)

// Topic names one cached collection or singleton.
type Topic string

const (
	TopicContacts        Topic = models.KeyContacts
	TopicNotes           Topic = models.KeyNotes
	TopicReminders       Topic = models.KeyReminders
	TopicOrders          Topic = models.KeyOrders
	TopicNoteTemplate    Topic = models.KeyNoteTemplate
	TopicFolders         Topic = models.KeyFolders
	TopicProductCatalogs Topic = models.KeyProductCatalogs
	TopicPresetTags      Topic = models.KeyPresetTags
	TopicNoteSettings    Topic = models.KeyNoteSettings
	TopicPremiumSettings Topic = models.KeyPremiumSettings
)

// errUnchanged lets a mutation step report that nothing needs writing.
var errUnchanged = errors.New("unchanged")

// collection binds a repository to its cache slot and serializes mutations.
type collection[T any] struct {
	topic Topic
	repo  *repository[T]
	cache *Cache[Topic, T]
	clone func(T) T
	mu    sync.Mutex
}

func newCollection[T any](topic Topic, repo *repository[T], clone func(T) T) *collection[T] {
	return &collection[T]{topic: topic, repo: repo, cache: NewCache[Topic, T](), clone: clone}
}

func (c *collection[T]) load(ctx context.Context, s *Store) (T, error) {
	v, err := c.cache.GetOrLoad(ctx, c.topic, func(ctx context.Context) (T, error) {
		return c.repo.load(ctx, s.backing, s.logger)
	})
	return c.clone(v), err
}

// get is the public read path. A failing backing read yields the default,
// which is not cached.
func (c *collection[T]) get(ctx context.Context, s *Store) T {
	v, err := c.load(ctx, s)
	if err != nil {
		s.logger.Warn("read failed, serving default", "key", c.repo.key, "reason", err)
	}
	return v
}

// commit writes next and, only on success, makes it the cached value.
func (c *collection[T]) commit(ctx context.Context, s *Store, next T) error {
	if err := c.repo.save(ctx, s.backing, next); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, c.repo.key, err)
	}
	c.cache.Put(c.topic, c.clone(next))
	return nil
}

// mutate reads the current value, applies fn to a private copy and commits
// the result. fn may return errUnchanged to skip the write.
func (c *collection[T]) mutate(ctx context.Context, s *Store, fn func(T) (T, error)) (T, error) {
	var zero T
	if s.closed.Load() {
		return zero, ErrClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, err := c.load(ctx, s)
	if err != nil {
		return zero, err
	}
	next, err := fn(cur)
	if errors.Is(err, errUnchanged) {
		return c.clone(cur), nil
	}
	if err != nil {
		return zero, err
	}
	if err := c.commit(ctx, s, next); err != nil {
		return zero, err
	}
	return c.clone(next), nil
}

func (c *collection[T]) invalidate() {
	c.cache.Invalidate(c.topic)
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock overrides the time source used for createdAt/updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides the id generator.
func WithIDs(next func() string) Option {
	return func(s *Store) { s.newID = next }
}

// Store is the single owner of all call-note state.
type Store struct {
	backing backing.Store
	logger  *log.Logger
	now     func() time.Time
	newID   func() string
	closed  atomic.Bool

	contacts        *collection[[]models.Contact]
	notes           *collection[[]models.CallNote]
	reminders       *collection[[]models.Reminder]
	orders          *collection[[]models.Order]
	folders         *collection[[]models.NoteFolder]
	catalogs        *collection[[]models.ProductCatalog]
	presetTags      *collection[[]string]
	noteSettings    *collection[models.NoteSettings]
	premiumSettings *collection[models.PremiumSettings]
	noteTemplate    *collection[models.NoteTemplate]
}

// New creates a store over b. Call Init before first use to run migrations.
func New(b backing.Store, opts ...Option) *Store {
	s := &Store{
		backing: b,
		logger:  log.NewWithOptions(os.Stderr, log.Options{Prefix: "store"}),
		now:     time.Now,
		newID:   newIDGenerator(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.contacts = newCollection(TopicContacts,
		newListRepository[models.Contact](models.KeyContacts, nil, nil), cloneSlice[models.Contact])
	s.notes = newCollection(TopicNotes,
		newListRepository(models.KeyNotes, (*models.CallNote).Migrate, nil), cloneNotes)
	s.reminders = newCollection(TopicReminders,
		newListRepository[models.Reminder](models.KeyReminders, nil, nil), cloneSlice[models.Reminder])
	s.orders = newCollection(TopicOrders,
		newListRepository(models.KeyOrders, (*models.Order).Migrate, nil), cloneOrders)
	s.folders = newCollection(TopicFolders,
		newListRepository(models.KeyFolders, (*models.NoteFolder).Migrate, func() []models.NoteFolder {
			return models.DefaultFolders(s.now())
		}), cloneSlice[models.NoteFolder])
	s.catalogs = newCollection(TopicProductCatalogs,
		newListRepository(models.KeyProductCatalogs, (*models.ProductCatalog).Migrate, nil), cloneCatalogs)
	s.presetTags = newCollection(TopicPresetTags,
		newListRepository[string](models.KeyPresetTags, nil, models.DefaultPresetTags), cloneSlice[string])
	s.noteSettings = newCollection(TopicNoteSettings,
		newObjectRepository(models.KeyNoteSettings, models.DefaultNoteSettings), identity[models.NoteSettings])
	s.premiumSettings = newCollection(TopicPremiumSettings,
		newObjectRepository(models.KeyPremiumSettings, models.DefaultPremiumSettings), identity[models.PremiumSettings])
	s.noteTemplate = newCollection(TopicNoteTemplate,
		newObjectRepository(models.KeyNoteTemplate, models.DefaultNoteTemplate), identity[models.NoteTemplate])

	return s
}

// Init loads every topic once so migrations and seeds are applied up front.
// Read failures are logged, not returned; the affected topics load again on
// next use.
func (s *Store) Init(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	s.contacts.get(ctx, s)
	s.notes.get(ctx, s)
	s.reminders.get(ctx, s)
	s.orders.get(ctx, s)
	s.folders.get(ctx, s)
	s.catalogs.get(ctx, s)
	s.presetTags.get(ctx, s)
	s.noteSettings.get(ctx, s)
	s.premiumSettings.get(ctx, s)
	s.noteTemplate.get(ctx, s)
	return nil
}

// Close drops cached state and rejects further mutations. It does not close
// the backing store.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.InvalidateAll()
	return nil
}

// Invalidate marks one topic stale so the next read reloads it.
func (s *Store) Invalidate(topic Topic) {
	switch topic {
	case TopicContacts:
		s.contacts.invalidate()
	case TopicNotes:
		s.notes.invalidate()
	case TopicReminders:
		s.reminders.invalidate()
	case TopicOrders:
		s.orders.invalidate()
	case TopicFolders:
		s.folders.invalidate()
	case TopicProductCatalogs:
		s.catalogs.invalidate()
	case TopicPresetTags:
		s.presetTags.invalidate()
	case TopicNoteSettings:
		s.noteSettings.invalidate()
	case TopicPremiumSettings:
		s.premiumSettings.invalidate()
	case TopicNoteTemplate:
		s.noteTemplate.invalidate()
	}
}

// InvalidateAll marks every topic stale.
func (s *Store) InvalidateAll() {
	for _, key := range models.AllKeys {
		s.Invalidate(Topic(key))
	}
}

func identity[T any](v T) T { return v }

func cloneSlice[E any](v []E) []E {
	out := make([]E, len(v))
	copy(out, v)
	return out
}

func cloneNotes(v []models.CallNote) []models.CallNote {
	out := cloneSlice(v)
	for i := range out {
		out[i].Tags = cloneSlice(out[i].Tags)
	}
	return out
}

func cloneOrders(v []models.Order) []models.Order {
	out := cloneSlice(v)
	for i := range out {
		out[i].Items = cloneSlice(out[i].Items)
	}
	return out
}

func cloneCatalogs(v []models.ProductCatalog) []models.ProductCatalog {
	out := cloneSlice(v)
	for i := range out {
		out[i].Products = cloneSlice(out[i].Products)
	}
	return out
}
