// Package session holds the client-resident cart state that stays
// synchronized with the server without a write on every click. Adds are
// strongly durable (immediate per-item upsert plus refetch); quantity and
// remove edits are eventually durable (debounced wholesale overwrite).
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/poshakbd/storefront/internal/cart"
	"github.com/poshakbd/storefront/internal/models"
	"github.com/poshakbd/storefront/internal/utils"
)

// Store is the cart API surface the controller talks to. CartService
// satisfies it directly; an HTTP client would too.
type Store interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	UpsertItem(ctx context.Context, userID string, item *models.LineItem) (*models.Cart, error)
	ReplaceCart(ctx context.Context, userID string, items []models.LineItem) (*models.Cart, error)
}

type State int

const (
	StateUninitialized State = iota
	StateEmpty
	StateSynced
	StateDirty
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateSynced:
		return "synced"
	case StateDirty:
		return "dirty"
	default:
		return "uninitialized"
	}
}

// Controller owns one user session's cart replica. The user id is fixed at
// construction; a new login gets a new controller, so concurrent test
// sessions never share state.
type Controller struct {
	store    Store
	sched    Scheduler
	debounce time.Duration
	userID   string
	logger   *slog.Logger

	mu          sync.Mutex
	items       []models.LineItem
	state       State
	gen         uint64 // bumped on every local mutation
	cancelFlush func()
}

func NewController(store Store, sched Scheduler, debounce time.Duration, userID string, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		store:    store,
		sched:    sched,
		debounce: debounce,
		userID:   userID,
		logger:   logger.With(slog.String("userId", userID)),
	}
}

// Start fetches the server cart and seeds local state.
func (c *Controller) Start(ctx context.Context) error {

	serverCart, err := c.store.GetCart(ctx, c.userID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.adoptLocked(serverCart.Items)

	return nil
}

// AddToCart is the strong-durability path: one unit of the variant is
// upserted out-of-band, bypassing the debounce, then local state is
// reconciled against server truth. A transient failure keeps the optimistic
// local entry and leaves it for the next debounced write.
func (c *Controller) AddToCart(ctx context.Context, item models.LineItem) error {

	serverCart, err := c.store.GetCart(ctx, c.userID)
	if err != nil {
		c.keepOptimistic("fetch before add failed", err, item)
		return err
	}

	item.Quantity = cart.NextQuantity(serverCart.Items, cart.KeyOf(item))

	if _, err := c.store.UpsertItem(ctx, c.userID, &item); err != nil {
		c.keepOptimistic("immediate upsert failed", err, item)
		return err
	}

	refreshed, err := c.store.GetCart(ctx, c.userID)
	if err != nil {
		// The write landed; only the refetch failed. Local optimistic state
		// stands in until the next sync.
		c.keepOptimistic("refetch after add failed", err, item)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.adoptLocked(refreshed.Items)

	return nil
}

// SetQuantity is the eventual-durability path: mutate locally, then let the
// debounce collapse rapid clicks into one overwrite.
func (c *Controller) SetQuantity(key cart.Key, quantity int) {

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = cart.SetQuantity(c.items, key, quantity)
	c.markDirtyLocked()
}

func (c *Controller) RemoveProduct(productID uuid.UUID) {

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = cart.RemoveProduct(c.items, productID)
	c.markDirtyLocked()
}

// Flush forces any pending debounced write immediately.
func (c *Controller) Flush(ctx context.Context) error {

	c.mu.Lock()

	if c.state != StateDirty {
		c.mu.Unlock()
		return nil
	}

	if c.cancelFlush != nil {
		c.cancelFlush()
		c.cancelFlush = nil
	}

	c.mu.Unlock()

	return c.writeThrough(ctx)
}

// Logout discards local state. The pending flush is cancelled: the session
// is over and the optimistic edits go with it.
func (c *Controller) Logout() {

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelFlush != nil {
		c.cancelFlush()
		c.cancelFlush = nil
	}

	c.items = nil
	c.state = StateUninitialized
	c.gen++
}

func (c *Controller) Items() []models.LineItem {

	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]models.LineItem, len(c.items))
	copy(items, c.items)

	return items
}

func (c *Controller) State() State {

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *Controller) Total() float64 {

	c.mu.Lock()
	defer c.mu.Unlock()

	return cart.Total(c.items)
}

// adoptLocked replaces local state with server truth.
func (c *Controller) adoptLocked(items []models.LineItem) {

	c.items = make([]models.LineItem, len(items))
	copy(c.items, items)
	c.gen++

	if len(c.items) == 0 {
		c.state = StateEmpty
	} else {
		c.state = StateSynced
	}
}

func (c *Controller) markDirtyLocked() {

	c.state = StateDirty
	c.gen++

	if c.cancelFlush != nil {
		c.cancelFlush()
	}

	c.cancelFlush = c.sched.Schedule(c.debounce, func() {
		if err := c.writeThrough(context.Background()); err != nil {
			c.logger.Warn("Debounced cart save failed; keeping local state",
				slog.String("error", err.Error()))
		}
	})
}

// writeThrough pushes the local list to the store. Local state is only
// marked synced when no mutation raced the write; a failure keeps the
// optimistic view and re-arms the debounce so user intent is never dropped.
func (c *Controller) writeThrough(ctx context.Context) error {

	c.mu.Lock()

	if c.state != StateDirty {
		c.mu.Unlock()
		return nil
	}

	snapshot := make([]models.LineItem, len(c.items))
	copy(snapshot, c.items)
	genAtWrite := c.gen

	c.mu.Unlock()

	writeCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := c.store.ReplaceCart(writeCtx, c.userID, snapshot)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if c.state == StateDirty {
			c.cancelFlush = c.sched.Schedule(c.debounce, func() {
				if retryErr := c.writeThrough(context.Background()); retryErr != nil {
					c.logger.Warn("Cart save retry failed",
						slog.String("error", retryErr.Error()))
				}
			})
		}

		return err
	}

	if c.gen == genAtWrite && c.state == StateDirty {
		if len(c.items) == 0 {
			c.state = StateEmpty
		} else {
			c.state = StateSynced
		}
	}

	return nil
}

func (c *Controller) keepOptimistic(msg string, err error, item models.LineItem) {

	c.logger.Warn(msg, slog.String("error", err.Error()))

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = cart.AddUnit(c.items, item)
	c.markDirtyLocked()
}
