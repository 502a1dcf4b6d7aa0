// Package services holds the application state and its only write paths.
// Every mutation updates the in-memory collections and writes the affected
// collection through to storage before returning.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"prancheta/internal/core"
	"prancheta/internal/log"
)

// StateStore is the persistence gateway the tracker writes through to.
// Loads fail soft (empty on missing/corrupt data); saves overwrite the whole
// collection.
type StateStore interface {
	LoadOrders(ctx context.Context) []core.Order
	SaveOrders(ctx context.Context, orders []core.Order) error
	LoadStatuses(ctx context.Context) []core.MonthlyStatus
	SaveStatuses(ctx context.Context, statuses []core.MonthlyStatus) error
}

// Tracker owns the order and monthly status collections. All mutations are
// synchronous and serialized; there is a single local user.
type Tracker struct {
	mu    sync.Mutex
	store StateStore
	price core.Money

	orders   []core.Order
	statuses []core.MonthlyStatus

	now   func() time.Time
	newID func() string
}

type (
	// BoardInput is one board line of a new order.
	BoardInput struct {
		Name          string
		PositionCount int
	}

	// CreateOrderRequest carries the user-entered fields of a new order.
	// Identity, creation timestamp and the position total are assigned by
	// the tracker.
	CreateOrderRequest struct {
		Date        string // YYYY-MM-DD
		OrderNumber string
		InternalID  string
		Branch      string
		Region      string
		Observation string
		Boards      []BoardInput
	}
)

// NewTracker loads both collections from the store and returns a ready
// tracker. A missing or corrupt entry for one collection never prevents the
// other from loading.
func NewTracker(ctx context.Context, store StateStore, price core.Money) *Tracker {
	t := &Tracker{
		store:    store,
		price:    price,
		orders:   store.LoadOrders(ctx),
		statuses: store.LoadStatuses(ctx),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	slog.InfoContext(ctx, "Tracker state loaded",
		log.FieldComponent, log.ComponentTracker,
		"orders", len(t.orders),
		"statuses", len(t.statuses))
	return t
}

// PricePerPosition returns the configured unit price.
func (t *Tracker) PricePerPosition() core.Money {
	return t.price
}

// Orders returns a copy of the order collection, most recent entry first.
func (t *Tracker) Orders() []core.Order {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]core.Order, len(t.orders))
	copy(out, t.orders)
	return out
}

// Statuses returns a copy of the monthly status collection.
func (t *Tracker) Statuses() []core.MonthlyStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]core.MonthlyStatus, len(t.statuses))
	copy(out, t.statuses)
	return out
}

// CreateOrder validates the request, assigns identity and creation time,
// recomputes the position total from the boards and prepends the order to
// the collection. Validation failures leave the collection untouched.
func (t *Tracker) CreateOrder(ctx context.Context, req CreateOrderRequest) (core.Order, error) {
	order := core.Order{
		Date:        req.Date,
		OrderNumber: req.OrderNumber,
		InternalID:  req.InternalID,
		Branch:      req.Branch,
		Region:      req.Region,
		Observation: req.Observation,
	}
	for _, b := range req.Boards {
		order.Boards = append(order.Boards, core.Board{
			Name:          b.Name,
			PositionCount: b.PositionCount,
		})
	}

	// Preconditions are checked before any identity is assigned.
	if err := order.Validate(); err != nil {
		return core.Order{}, fmt.Errorf("create order: %w", err)
	}

	order.ID = t.newID()
	order.CreatedAt = t.now().UnixMilli()
	total := 0
	for i := range order.Boards {
		order.Boards[i].ID = t.newID()
		total += order.Boards[i].PositionCount
	}
	order.TotalPositions = total

	t.mu.Lock()
	t.orders = append([]core.Order{order}, t.orders...)
	orders := t.snapshotOrdersLocked()
	t.mu.Unlock()

	t.persistOrders(ctx, orders)

	slog.InfoContext(ctx, "Order created",
		log.FieldComponent, log.ComponentTracker,
		log.FieldOrderID, order.ID,
		log.FieldOrderNumber, order.OrderNumber,
		log.FieldBoards, len(order.Boards),
		log.FieldPositions, order.TotalPositions)

	return order, nil
}

// DeleteOrder removes the order with the given identity, discarding all its
// boards. Deleting an unknown identity is a no-op, not an error.
func (t *Tracker) DeleteOrder(ctx context.Context, id string) {
	t.mu.Lock()
	kept := t.orders[:0:0]
	removed := false
	for _, o := range t.orders {
		if o.ID == id {
			removed = true
			continue
		}
		kept = append(kept, o)
	}
	if !removed {
		t.mu.Unlock()
		slog.DebugContext(ctx, "Delete of unknown order ignored",
			log.FieldComponent, log.ComponentTracker,
			log.FieldOrderID, id)
		return
	}
	t.orders = kept
	orders := t.snapshotOrdersLocked()
	t.mu.Unlock()

	t.persistOrders(ctx, orders)

	slog.InfoContext(ctx, "Order deleted",
		log.FieldComponent, log.ComponentTracker,
		log.FieldOrderID, id)
}

// FindOrder returns the order with the given identity, if present.
func (t *Tracker) FindOrder(id string) (core.Order, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, o := range t.orders {
		if o.ID == id {
			return o, true
		}
	}
	return core.Order{}, false
}

// Status returns the payment status of a month; a month without a record is
// pending.
func (t *Tracker) Status(monthKey string) core.Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.statuses {
		if s.MonthKey == monthKey {
			return s.Status
		}
	}
	return core.StatusPending
}

// SetStatus records the payment status for a month, creating the record on
// first use and updating it in place thereafter.
func (t *Tracker) SetStatus(ctx context.Context, monthKey string, status core.Status) error {
	if !status.Valid() {
		return fmt.Errorf("set status for %s: %w", monthKey, core.ErrInvalidStatus)
	}

	t.mu.Lock()
	found := false
	for i, s := range t.statuses {
		if s.MonthKey == monthKey {
			t.statuses[i].Status = status
			found = true
			break
		}
	}
	if !found {
		t.statuses = append(t.statuses, core.MonthlyStatus{MonthKey: monthKey, Status: status})
	}
	statuses := t.snapshotStatusesLocked()
	t.mu.Unlock()

	t.persistStatuses(ctx, statuses)

	slog.InfoContext(ctx, "Monthly status set",
		log.FieldComponent, log.ComponentTracker,
		log.FieldMonthKey, monthKey,
		"status", status)
	return nil
}

// CycleStatus advances the month's status one step along the fixed cycle and
// persists the result, returning the new status.
func (t *Tracker) CycleStatus(ctx context.Context, monthKey string) core.Status {
	next := t.Status(monthKey).Next()
	// Next() of a stored status is always valid, so SetStatus cannot fail.
	_ = t.SetStatus(ctx, monthKey, next)
	return next
}

// ExportSnapshot captures the full application state as the versioned backup
// document.
func (t *Tracker) ExportSnapshot(ctx context.Context) ([]byte, error) {
	snap := core.NewSnapshot(t.Orders(), t.Statuses(), t.now())
	data, err := snap.Encode()
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	slog.InfoContext(ctx, "Snapshot exported",
		log.FieldComponent, log.ComponentTracker,
		"orders", len(snap.Orders),
		"statuses", len(snap.Statuses))
	return data, nil
}

// RestoreSnapshot replaces both collections with the contents of a backup
// document and persists them. The in-memory state is replaced even when
// persistence fails; the error reports that the restore will not survive a
// restart.
func (t *Tracker) RestoreSnapshot(ctx context.Context, data []byte) error {
	snap, err := core.DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	t.mu.Lock()
	t.orders = snap.Orders
	t.statuses = snap.Statuses
	orders := t.snapshotOrdersLocked()
	statuses := t.snapshotStatusesLocked()
	t.mu.Unlock()

	slog.InfoContext(ctx, "Snapshot restored",
		log.FieldComponent, log.ComponentTracker,
		"orders", len(orders),
		"statuses", len(statuses),
		"version", snap.Version)

	if err := t.store.SaveOrders(ctx, orders); err != nil {
		return fmt.Errorf("persist restored orders: %w", err)
	}
	if err := t.store.SaveStatuses(ctx, statuses); err != nil {
		return fmt.Errorf("persist restored statuses: %w", err)
	}
	return nil
}

// persistOrders writes the order collection through to storage. A write
// failure never fails the mutation; the state simply will not survive a
// restart until the next successful save.
func (t *Tracker) persistOrders(ctx context.Context, orders []core.Order) {
	if err := t.store.SaveOrders(ctx, orders); err != nil {
		slog.ErrorContext(ctx, "Failed to persist orders",
			log.FieldComponent, log.ComponentTracker,
			log.FieldError, err)
	}
}

func (t *Tracker) persistStatuses(ctx context.Context, statuses []core.MonthlyStatus) {
	if err := t.store.SaveStatuses(ctx, statuses); err != nil {
		slog.ErrorContext(ctx, "Failed to persist statuses",
			log.FieldComponent, log.ComponentTracker,
			log.FieldError, err)
	}
}

func (t *Tracker) snapshotOrdersLocked() []core.Order {
	out := make([]core.Order, len(t.orders))
	copy(out, t.orders)
	return out
}

func (t *Tracker) snapshotStatusesLocked() []core.MonthlyStatus {
	out := make([]core.MonthlyStatus, len(t.statuses))
	copy(out, t.statuses)
	return out
}
