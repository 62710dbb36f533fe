// Package shops implements the shop directory editor: an ordered list of
// shops that is written through to a key-value store after every change.
package shops

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store persists the full shop list.
type Store interface {
	Load(ctx context.Context) []Shop
	Save(ctx context.Context, shops []Shop)
}

// Editor owns the shop list. All methods are safe for concurrent use; each
// operation runs to completion before the next one starts.
type Editor struct {
	mu     sync.Mutex
	store  Store
	shops  []Shop
	newID  func() string
	logger zerolog.Logger
}

// Option customizes an Editor.
type Option func(*Editor)

// WithIDGenerator replaces the random id source.
func WithIDGenerator(newID func() string) Option {
	return func(e *Editor) {
		e.newID = newID
	}
}

// WithLogger sets the editor's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// NewEditor loads the current shop list from store.
func NewEditor(ctx context.Context, store Store, opts ...Option) *Editor {
	e := &Editor{
		store:  store,
		newID:  uuid.NewString,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.shops = store.Load(ctx)
	return e
}

// List returns a copy of the shops in display order.
func (e *Editor) List() []Shop {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Shop, len(e.shops))
	for i, shop := range e.shops {
		out[i] = shop.clone()
	}
	return out
}

// Get returns the shop with the given id.
func (e *Editor) Get(id string) (Shop, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(id)
	if i < 0 {
		return Shop{}, ErrShopNotFound
	}
	return e.shops[i].clone(), nil
}

// Edit loads the shop with the given id into form, replacing whatever it held.
func (e *Editor) Edit(form *Form, id string) error {
	shop, err := e.Get(id)
	if err != nil {
		return err
	}
	form.state = Editing{ID: shop.ID, Draft: DraftFromShop(shop)}
	return nil
}

// Submit commits form. Creating appends a new shop with defaults filled in;
// Editing merges the draft onto the existing shop in place. On success the
// form is cleared and the list is persisted. On failure nothing changes.
func (e *Editor) Submit(ctx context.Context, form *Form) (Shop, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var (
		shop Shop
		next []Shop
	)

	switch s := form.state.(type) {
	case Creating:
		d, err := s.Draft.validate()
		if err != nil {
			return Shop{}, err
		}
		shop = d.newShop(e.uniqueID())
		next = append(slices.Clip(e.shops), shop)
	case Editing:
		d, err := s.Draft.validate()
		if err != nil {
			return Shop{}, err
		}
		i := e.indexOf(s.ID)
		if i < 0 {
			return Shop{}, fmt.Errorf("update %q: %w", s.ID, ErrShopNotFound)
		}
		shop = d.mergeInto(e.shops[i])
		next = slices.Clone(e.shops)
		next[i] = shop
	default:
		return Shop{}, ErrNameRequired
	}

	e.commit(ctx, next)
	form.Reset()

	e.logger.Info().Str("shop_id", shop.ID).Str("name", shop.Name).Msg("shop saved")
	return shop.clone(), nil
}

// Delete removes the shop with the given id after confirm approves it.
// A nil confirm approves every delete.
func (e *Editor) Delete(ctx context.Context, id string, confirm func(id string) bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(id)
	if i < 0 {
		return ErrShopNotFound
	}
	if confirm != nil && !confirm(id) {
		return ErrNotConfirmed
	}

	e.commit(ctx, slices.Delete(slices.Clone(e.shops), i, i+1))

	e.logger.Info().Str("shop_id", id).Msg("shop deleted")
	return nil
}

// Seed adds drafts as new shops when the directory is empty. It reports how
// many shops were added; invalid drafts are skipped.
func (e *Editor) Seed(ctx context.Context, drafts []Draft) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.shops) > 0 {
		return 0, nil
	}

	next := make([]Shop, 0, len(drafts))
	for i, draft := range drafts {
		d, err := draft.validate()
		if err != nil {
			e.logger.Warn().Err(err).Int("index", i).Msg("skipping seed shop")
			continue
		}
		shop := d.newShop(e.uniqueID())
		e.shops = append(e.shops, shop)
		next = append(next, shop)
	}
	if len(next) == 0 {
		return 0, nil
	}

	e.commit(ctx, next)
	return len(next), nil
}

// commit replaces the in-memory list and writes it through to the store.
func (e *Editor) commit(ctx context.Context, next []Shop) {
	e.shops = next
	e.store.Save(ctx, next)
}

func (e *Editor) uniqueID() string {
	for {
		id := e.newID()
		if e.indexOf(id) < 0 {
			return id
		}
	}
}

func (e *Editor) indexOf(id string) int {
	return slices.IndexFunc(e.shops, func(s Shop) bool {
		return s.ID == id
	})
}
