package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

type fakeGuestRepo struct {
	mu     sync.Mutex
	nextID int
	guests map[string]domain.Guest
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{guests: make(map[string]domain.Guest)}
}

func (r *fakeGuestRepo) Create(_ context.Context, guest *domain.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	guest.ID = fmt.Sprintf("guest-%d", r.nextID)
	r.guests[guest.ID] = *guest
	return nil
}

func (r *fakeGuestRepo) GetByID(_ context.Context, id string) (*domain.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	guest, ok := r.guests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &guest, nil
}

func (r *fakeGuestRepo) ListByTable(_ context.Context, tableNumber int) ([]domain.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Guest
	for _, guest := range r.guests {
		if guest.TableNumber == tableNumber {
			out = append(out, guest)
		}
	}
	return out, nil
}

type fakeDishRepo struct {
	dishes map[string]domain.Dish
}

func newFakeDishRepo(dishes ...domain.Dish) *fakeDishRepo {
	repo := &fakeDishRepo{dishes: make(map[string]domain.Dish)}
	for _, dish := range dishes {
		repo.dishes[dish.ID] = dish
	}
	return repo
}

func (r *fakeDishRepo) Create(_ context.Context, dish *domain.Dish) error {
	r.dishes[dish.ID] = *dish
	return nil
}

func (r *fakeDishRepo) Update(_ context.Context, dish *domain.Dish) error {
	if _, ok := r.dishes[dish.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.dishes[dish.ID] = *dish
	return nil
}

func (r *fakeDishRepo) Delete(_ context.Context, id string) error {
	delete(r.dishes, id)
	return nil
}

func (r *fakeDishRepo) GetByID(_ context.Context, id string) (*domain.Dish, error) {
	dish, ok := r.dishes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &dish, nil
}

func (r *fakeDishRepo) List(_ context.Context, _ repository.DishFilter) ([]domain.Dish, error) {
	var out []domain.Dish
	for _, dish := range r.dishes {
		out = append(out, dish)
	}
	return out, nil
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	nextID    int
	orders    map[string]domain.Order
	snapshots int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]domain.Order)}
}

func (r *fakeOrderRepo) CreateSnapshot(_ context.Context, snapshot *domain.DishSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots++
	snapshot.ID = fmt.Sprintf("snapshot-%d", r.snapshots)
	return nil
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = fmt.Sprintf("order-%d", r.nextID)
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &order, nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	// Iterate in insertion order so batches stay deterministic.
	for i := 1; i <= r.nextID; i++ {
		order, ok := r.orders[fmt.Sprintf("order-%d", i)]
		if !ok {
			continue
		}
		if filter.GuestID != nil && (order.GuestID == nil || *order.GuestID != *filter.GuestID) {
			continue
		}
		if len(filter.Statuses) > 0 {
			matched := false
			for _, status := range filter.Statuses {
				if order.Status == status {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, order)
	}
	return out, nil
}

type fakeTableRepo struct {
	tables map[int]domain.Table
}

func newFakeTableRepo(tables ...domain.Table) *fakeTableRepo {
	repo := &fakeTableRepo{tables: make(map[int]domain.Table)}
	for _, table := range tables {
		repo.tables[table.Number] = table
	}
	return repo
}

func (r *fakeTableRepo) Create(_ context.Context, table *domain.Table) error {
	r.tables[table.Number] = *table
	return nil
}

func (r *fakeTableRepo) Update(_ context.Context, table *domain.Table) error {
	if _, ok := r.tables[table.Number]; !ok {
		return pgx.ErrNoRows
	}
	r.tables[table.Number] = *table
	return nil
}

func (r *fakeTableRepo) Delete(_ context.Context, number int) error {
	delete(r.tables, number)
	return nil
}

func (r *fakeTableRepo) GetByNumber(_ context.Context, number int) (*domain.Table, error) {
	table, ok := r.tables[number]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &table, nil
}

func (r *fakeTableRepo) List(_ context.Context) ([]domain.Table, error) {
	var out []domain.Table
	for _, table := range r.tables {
		out = append(out, table)
	}
	return out, nil
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	nextID   int
	accounts map[string]domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]domain.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	account.ID = fmt.Sprintf("account-%d", r.nextID)
	r.accounts[account.ID] = *account
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.accounts[account.ID] = *account
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accounts, id)
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &account, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Email == email {
			copied := account
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) List(_ context.Context) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Account
	for _, account := range r.accounts {
		out = append(out, account)
	}
	return out, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event(nil), d.events...)
}
