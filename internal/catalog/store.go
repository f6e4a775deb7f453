// Package catalog owns the product catalog: an ordered in-memory list that is
// written wholesale to its backend after every mutation.
package catalog

import (
	"context"
	"errors"
	"sync"

	EventBus "github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/vitrine/internal/domain"
	"github.com/talkincode/vitrine/pkg/common"
)

// TopicChanged is published with a Change after every successful mutation.
const TopicChanged = "catalog:changed"

const (
	ActionAdd     = "add"
	ActionUpdate  = "update"
	ActionRemove  = "remove"
	ActionToggle  = "toggle"
	ActionSeed    = "seed"
	ActionRestore = "restore"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateID     = errors.New("product id already exists")
	ErrInvalidProduct  = errors.New("invalid product")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Change describes one applied mutation.
type Change struct {
	Action string
	ID     string
	Size   int
}

type Option func(*Store)

// WithBus publishes changes on bus instead of a private one.
func WithBus(bus EventBus.Bus) Option {
	return func(s *Store) { s.bus = bus }
}

// WithIDFunc overrides id generation for new products.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithSeed overrides the records written when the key is absent.
func WithSeed(seed []domain.Product) Option {
	return func(s *Store) { s.seed = seed }
}

type Store struct {
	mu       sync.Mutex
	products []domain.Product
	backend  Backend
	bus      EventBus.Bus
	newID    func() string
	seed     []domain.Product
}

// Open loads the catalog from backend. When the key has never been written the
// seed records are stored; an explicitly stored empty list stays empty.
func Open(ctx context.Context, backend Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend: backend,
		newID:   common.ProductID,
		seed:    domain.SeedProducts(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil {
		s.bus = EventBus.New()
	}

	payload, found, err := backend.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		seed := append([]domain.Product{}, s.seed...)
		if err := s.flush(ctx, seed); err != nil {
			return nil, err
		}
		s.products = seed
		zap.L().Info("catalog seeded", zap.Int("count", len(seed)))
		s.publish(Change{Action: ActionSeed, Size: len(seed)})
		return s, nil
	}

	var products []domain.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, pkgerrors.Wrap(err, "decode catalog payload")
	}
	if products == nil {
		products = []domain.Product{}
	}
	s.products = products
	zap.L().Info("catalog loaded", zap.Int("count", len(products)))
	return s, nil
}

// Bus returns the event bus changes are published on.
func (s *Store) Bus() EventBus.Bus {
	return s.bus
}

// List returns a snapshot of the catalog in insertion order.
func (s *Store) List() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product{}, s.products...)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

func (s *Store) Get(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.products[i], true
	}
	return domain.Product{}, false
}

// Add appends p, assigning a fresh id when p.ID is empty.
func (s *Store) Add(ctx context.Context, p domain.Product) (domain.Product, error) {
	err := s.mutate(ctx, ActionAdd, func() (string, []domain.Product, error) {
		if p.ID == "" {
			p.ID = s.newID()
		}
		if s.indexOf(p.ID) >= 0 {
			return "", nil, ErrDuplicateID
		}
		next := make([]domain.Product, 0, len(s.products)+1)
		next = append(next, s.products...)
		return p.ID, append(next, p), nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Update replaces the record with the same id, keeping its position.
func (s *Store) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	err := s.mutate(ctx, ActionUpdate, func() (string, []domain.Product, error) {
		i := s.indexOf(p.ID)
		if i < 0 {
			return "", nil, ErrProductNotFound
		}
		next := append([]domain.Product{}, s.products...)
		next[i] = p
		return p.ID, next, nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Remove deletes the record with id. An unknown id is a no-op and reports false.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	removed := false
	err := s.mutate(ctx, ActionRemove, func() (string, []domain.Product, error) {
		i := s.indexOf(id)
		if i < 0 {
			return "", nil, nil
		}
		next := make([]domain.Product, 0, len(s.products)-1)
		next = append(next, s.products[:i]...)
		next = append(next, s.products[i+1:]...)
		removed = true
		return id, next, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// Toggle flips the availability of the record with id.
func (s *Store) Toggle(ctx context.Context, id string) (domain.Product, error) {
	var toggled domain.Product
	err := s.mutate(ctx, ActionToggle, func() (string, []domain.Product, error) {
		i := s.indexOf(id)
		if i < 0 {
			return "", nil, ErrProductNotFound
		}
		next := append([]domain.Product{}, s.products...)
		next[i].Available = !next[i].Available
		toggled = next[i]
		return id, next, nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return toggled, nil
}

// Reset replaces the catalog with the seed records.
func (s *Store) Reset(ctx context.Context) error {
	return s.mutate(ctx, ActionSeed, func() (string, []domain.Product, error) {
		return "", append([]domain.Product{}, s.seed...), nil
	})
}

// Replace swaps the whole catalog for products, as when restoring a backup.
// Records without an id get a fresh one. A repeated id or a record breaking
// the product rules rejects the whole batch.
func (s *Store) Replace(ctx context.Context, products []domain.Product) error {
	return s.mutate(ctx, ActionRestore, func() (string, []domain.Product, error) {
		next := make([]domain.Product, 0, len(products))
		seen := make(map[string]bool, len(products))
		for _, p := range products {
			if p.ID == "" {
				p.ID = s.newID()
			}
			if seen[p.ID] {
				return "", nil, pkgerrors.Wrapf(ErrDuplicateID, "restore %s", p.ID)
			}
			seen[p.ID] = true
			p.Normalize()
			if err := checkProduct(p); err != nil {
				return "", nil, err
			}
			next = append(next, p)
		}
		return "", next, nil
	})
}

// mutate computes the next catalog under the lock, persists it, swaps it in
// and publishes the change once the lock is released. A nil next slice with a
// nil error means nothing changed.
func (s *Store) mutate(ctx context.Context, action string, fn func() (string, []domain.Product, error)) error {
	s.mu.Lock()
	id, next, err := fn()
	if err == nil && next != nil {
		err = s.commit(ctx, next)
	}
	size := len(s.products)
	s.mu.Unlock()

	if err != nil || next == nil {
		return err
	}
	s.publish(Change{Action: action, ID: id, Size: size})
	return nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// commit persists next and only then makes it the current catalog.
func (s *Store) commit(ctx context.Context, next []domain.Product) error {
	if err := s.flush(ctx, next); err != nil {
		return err
	}
	s.products = next
	return nil
}

func (s *Store) flush(ctx context.Context, products []domain.Product) error {
	payload, err := json.Marshal(products)
	if err != nil {
		return pkgerrors.Wrap(err, "encode catalog payload")
	}
	return s.backend.Save(ctx, payload)
}

func (s *Store) publish(change Change) {
	s.bus.Publish(TopicChanged, change)
}

func (s *Store) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}
