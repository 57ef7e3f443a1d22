package commands_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"hawkerflow/internal/core/application/usecases/commands"
	"hawkerflow/internal/core/domain/model/kernel"
	"hawkerflow/internal/core/domain/model/stall"
	"hawkerflow/internal/core/domain/model/suborder"
	"hawkerflow/internal/core/ports"
	"hawkerflow/internal/pkg/errs"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type lineRecord struct {
	name          string
	quantity      int
	waitTime      int
	price         kernel.Money
	completed     bool
	timeStarted   time.Time
	timeCompleted *time.Time
}

type subOrderRecord struct {
	stall     kernel.StallRef
	orderID   kernel.OrderID
	userID    string
	contact   string
	createdAt time.Time
	lines     []lineRecord
}

type stallRecord struct {
	ref      kernel.StallRef
	waitTime int
	earned   kernel.Money
}

// memoryStore keeps rows the way the database would: every read returns a
// freshly restored aggregate, so in-memory mutation never leaks into storage.
type memoryStore struct {
	mu        sync.Mutex
	subOrders map[string]*subOrderRecord
	stalls    map[string]*stallRecord
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		subOrders: make(map[string]*subOrderRecord),
		stalls:    make(map[string]*stallRecord),
	}
}

func subOrderKey(ref kernel.StallRef, orderID kernel.OrderID) string {
	return ref.String() + "#" + orderID.String()
}

func (s *memoryStore) Create() commands.FulfillmentUoW {
	return memoryUoW{store: s}
}

func (s *memoryStore) stall(ref kernel.StallRef) (stallRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.stalls[ref.String()]
	if !ok {
		return stallRecord{}, false
	}
	return *rec, true
}

func (s *memoryStore) hasSubOrder(ref kernel.StallRef, orderID kernel.OrderID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.subOrders[subOrderKey(ref, orderID)]
	return ok
}

type memoryUoW struct {
	store *memoryStore
}

func (memoryUoW) Begin(context.Context) error    { return nil }
func (memoryUoW) Commit(context.Context) error   { return nil }
func (memoryUoW) Rollback(context.Context) error { return nil }

func (u memoryUoW) SubOrderRepository() ports.SubOrderRepository {
	return memorySubOrders{store: u.store}
}

func (u memoryUoW) StallRepository() ports.StallRepository {
	return memoryStalls{store: u.store}
}

type memorySubOrders struct {
	store *memoryStore
}

func (r memorySubOrders) AddIfAbsent(_ context.Context, s *suborder.StallSubOrder) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := subOrderKey(s.Stall(), s.OrderID())
	if _, ok := r.store.subOrders[key]; ok {
		return false, nil
	}

	rec := &subOrderRecord{
		stall:     s.Stall(),
		orderID:   s.OrderID(),
		userID:    s.UserID(),
		contact:   s.Contact(),
		createdAt: s.CreatedAt(),
	}
	for _, l := range s.Lines() {
		rec.lines = append(rec.lines, lineRecord{
			name:          l.Name(),
			quantity:      l.Quantity(),
			waitTime:      l.WaitTime(),
			price:         l.Price(),
			completed:     l.IsCompleted(),
			timeStarted:   l.TimeStarted(),
			timeCompleted: l.TimeCompleted(),
		})
	}
	r.store.subOrders[key] = rec
	return true, nil
}

func (r memorySubOrders) GetForUpdate(
	_ context.Context,
	ref kernel.StallRef,
	orderID kernel.OrderID,
) (*suborder.StallSubOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.subOrders[subOrderKey(ref, orderID)]
	if !ok {
		return nil, errs.NewObjectNotFoundError("subOrder", orderID.String())
	}

	lines := make([]*suborder.DishLine, 0, len(rec.lines))
	for _, l := range rec.lines {
		line, err := suborder.RestoreDishLine(
			l.name, l.quantity, l.waitTime, l.price, l.completed, l.timeStarted, l.timeCompleted,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return suborder.RestoreStallSubOrder(rec.stall, rec.orderID, rec.userID, rec.contact, rec.createdAt, lines)
}

func (r memorySubOrders) CompleteLine(
	_ context.Context,
	ref kernel.StallRef,
	orderID kernel.OrderID,
	dishName string,
	at time.Time,
) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.subOrders[subOrderKey(ref, orderID)]
	if !ok {
		return false, errs.NewObjectNotFoundError("subOrder", orderID.String())
	}
	for i := range rec.lines {
		if rec.lines[i].name != dishName {
			continue
		}
		if rec.lines[i].completed {
			return false, nil
		}
		completedAt := at
		rec.lines[i].completed = true
		rec.lines[i].timeCompleted = &completedAt
		return true, nil
	}
	return false, errs.NewObjectNotFoundError("dish", dishName)
}

func (r memorySubOrders) Delete(_ context.Context, ref kernel.StallRef, orderID kernel.OrderID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.subOrders, subOrderKey(ref, orderID))
	return nil
}

func (r memorySubOrders) DeleteAllForStall(_ context.Context, ref kernel.StallRef) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var purged int64
	for key, rec := range r.store.subOrders {
		if rec.stall.IsEqual(ref) {
			delete(r.store.subOrders, key)
			purged++
		}
	}
	return purged, nil
}

type memoryStalls struct {
	store *memoryStore
}

func (r memoryStalls) EnsureExists(_ context.Context, ref kernel.StallRef) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.stalls[ref.String()]; !ok {
		r.store.stalls[ref.String()] = &stallRecord{ref: ref, earned: kernel.ZeroMoney}
	}
	return nil
}

func (r memoryStalls) AdjustTotals(_ context.Context, ref kernel.StallRef, waitDelta int, earnedDelta kernel.Money) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.stalls[ref.String()]
	if !ok {
		return errs.NewObjectNotFoundError("stall", ref.String())
	}
	rec.waitTime = max(rec.waitTime+waitDelta, 0)
	rec.earned = rec.earned.Add(earnedDelta).ClampZero()
	return nil
}

func (r memoryStalls) Get(_ context.Context, ref kernel.StallRef) (*stall.Aggregate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.stalls[ref.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("stall", ref.String())
	}
	return stall.RestoreAggregate(ref, rec.waitTime, rec.earned)
}

func (r memoryStalls) Update(_ context.Context, a *stall.Aggregate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.stalls[a.Ref().String()]
	if !ok {
		return errs.NewObjectNotFoundError("stall", a.Ref().String())
	}
	rec.waitTime = a.EstimatedWaitTime()
	rec.earned = a.TotalEarned()
	return nil
}

func (r memoryStalls) ForEachBatch(ctx context.Context, size int, fn func([]*stall.Aggregate) error) error {
	r.store.mu.Lock()
	refs := make([]kernel.StallRef, 0, len(r.store.stalls))
	for _, rec := range r.store.stalls {
		refs = append(refs, rec.ref)
	}
	r.store.mu.Unlock()
	slices.SortFunc(refs, func(a, b kernel.StallRef) int {
		return strings.Compare(a.String(), b.String())
	})

	var batch []*stall.Aggregate
	for _, ref := range refs {
		a, err := r.Get(ctx, ref)
		if err != nil {
			return err
		}
		batch = append(batch, a)
		if len(batch) == size {
			if err = fn(batch); err != nil {
				return err
			}
			batch = nil
		}
	}
	if len(batch) > 0 {
		return fn(batch)
	}
	return nil
}
