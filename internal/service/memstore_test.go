package service_test

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nikolayk812/shopping/internal/domain"
	"github.com/nikolayk812/shopping/internal/port"
	"github.com/shopspring/decimal"
)

var errReadOnly = errors.New("cannot execute in a read-only transaction")

// memStore is an in-memory port.Transactor. Transactions are serialized and
// a failed read-write transaction restores the state it started from.
type memStore struct {
	mu sync.Mutex

	users    map[int64]domain.User
	products map[int64]domain.Product
	cart     map[int64]domain.CartItem
	orders   map[int64]domain.Order
	nextID   int64

	// cartConflicts makes the next n cart inserts fail as if raced by another request
	cartConflicts int
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]domain.User{},
		products: map[int64]domain.Product{},
		cart:     map[int64]domain.CartItem{},
		orders:   map[int64]domain.Order{},
	}
}

func (s *memStore) ReadWrite(_ context.Context, fn func(r port.Repositories) error) error {
	return s.run(false, fn)
}

func (s *memStore) ReadOnly(_ context.Context, fn func(r port.Repositories) error) error {
	return s.run(true, fn)
}

func (s *memStore) run(readOnly bool, fn func(r port.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, products, cart, orders, nextID := maps.Clone(s.users), maps.Clone(s.products), maps.Clone(s.cart), maps.Clone(s.orders), s.nextID

	err := fn(port.Repositories{
		Users:     memUsers{s: s, readOnly: readOnly},
		Products:  memProducts{s: s},
		CartItems: memCart{s: s, readOnly: readOnly},
		Orders:    memOrders{s: s, readOnly: readOnly},
	})
	if err != nil {
		s.users, s.products, s.cart, s.orders, s.nextID = users, products, cart, orders, nextID
	}

	return err
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

// helpers used outside of transactions by tests

func (s *memStore) addUser(email string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.id()
	s.users[id] = domain.User{ID: id, Email: email, PasswordHash: "hash"}

	return id
}

func (s *memStore) addProduct(name, priceUSD string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.id()
	s.products[id] = domain.Product{
		ID:       id,
		Name:     name,
		ImageURL: "https://img.example.com/" + name,
		Price:    domain.USD(decimal.RequireFromString(priceUSD)),
	}

	return id
}

func (s *memStore) cartOf(userID int64) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return memCart{s: s}.list(userID)
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.orders)
}

type memUsers struct {
	s        *memStore
	readOnly bool
}

func (r memUsers) Get(_ context.Context, id int64) (domain.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("user[%d]: %w", id, domain.ErrUserNotFound)
	}
	return u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("user[%s]: %w", email, domain.ErrUserNotFound)
}

func (r memUsers) Create(ctx context.Context, user domain.User) (int64, error) {
	if r.readOnly {
		return 0, errReadOnly
	}
	if _, err := r.GetByEmail(ctx, user.Email); err == nil {
		return 0, domain.ErrDuplicateEmail
	}

	user.ID = r.s.id()
	r.s.users[user.ID] = user

	return user.ID, nil
}

type memProducts struct {
	s *memStore
}

func (r memProducts) Get(_ context.Context, id int64) (domain.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%d]: %w", id, domain.ErrProductNotFound)
	}
	return p, nil
}

func (r memProducts) List(context.Context) ([]domain.Product, error) {
	products := slices.Collect(maps.Values(r.s.products))
	slices.SortFunc(products, func(a, b domain.Product) int { return cmp.Compare(a.ID, b.ID) })

	return products, nil
}

type memCart struct {
	s        *memStore
	readOnly bool
}

func (r memCart) list(userID int64) []domain.CartItem {
	items := []domain.CartItem{}
	for _, item := range r.s.cart {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	slices.SortFunc(items, func(a, b domain.CartItem) int { return cmp.Compare(a.ID, b.ID) })

	return items
}

func (r memCart) ListByUser(_ context.Context, userID int64) ([]domain.CartItem, error) {
	return r.list(userID), nil
}

func (r memCart) ListByUserForUpdate(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	if r.readOnly {
		return nil, errReadOnly
	}
	return r.ListByUser(ctx, userID)
}

func (r memCart) Get(_ context.Context, id int64) (domain.CartItem, error) {
	item, ok := r.s.cart[id]
	if !ok {
		return domain.CartItem{}, fmt.Errorf("cart item[%d]: %w", id, domain.ErrCartItemNotFound)
	}
	return item, nil
}

func (r memCart) Add(_ context.Context, item domain.CartItem) (domain.CartItem, error) {
	if r.readOnly {
		return domain.CartItem{}, errReadOnly
	}
	if r.s.cartConflicts > 0 {
		r.s.cartConflicts--
		return domain.CartItem{}, domain.ErrCartItemConflict
	}
	for _, existing := range r.s.cart {
		if existing.UserID == item.UserID && existing.Product.ID == item.Product.ID {
			return domain.CartItem{}, domain.ErrCartItemConflict
		}
	}

	item.ID = r.s.id()
	item.CreatedAt = time.Now()
	r.s.cart[item.ID] = item

	return item, nil
}

func (r memCart) UpdateQuantity(_ context.Context, userID, id int64, quantity domain.Quantity) (bool, error) {
	if r.readOnly {
		return false, errReadOnly
	}
	item, ok := r.s.cart[id]
	if !ok || item.UserID != userID {
		return false, nil
	}

	item.Quantity = quantity
	r.s.cart[id] = item

	return true, nil
}

func (r memCart) Delete(_ context.Context, userID, id int64) (bool, error) {
	if r.readOnly {
		return false, errReadOnly
	}
	item, ok := r.s.cart[id]
	if !ok || item.UserID != userID {
		return false, nil
	}

	delete(r.s.cart, id)

	return true, nil
}

func (r memCart) DeleteByIDs(_ context.Context, userID int64, ids []int64) (int64, error) {
	if r.readOnly {
		return 0, errReadOnly
	}

	var n int64
	for _, id := range ids {
		if item, ok := r.s.cart[id]; ok && item.UserID == userID {
			delete(r.s.cart, id)
			n++
		}
	}

	return n, nil
}

type memOrders struct {
	s        *memStore
	readOnly bool
}

func (r memOrders) Create(_ context.Context, order domain.Order) (int64, error) {
	if r.readOnly {
		return 0, errReadOnly
	}

	order.ID = r.s.id()
	items := make([]domain.OrderItem, len(order.Items))
	for i, item := range order.Items {
		item.ID = r.s.id()
		item.OrderID = order.ID
		items[i] = item
	}
	order.Items = items
	r.s.orders[order.ID] = order

	return order.ID, nil
}

func (r memOrders) Get(_ context.Context, id int64) (domain.Order, error) {
	order, ok := r.s.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("order[%d]: %w", id, domain.ErrOrderNotFound)
	}
	return order, nil
}

func (r memOrders) ListByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	orders := []domain.Order{}
	for _, order := range r.s.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	slices.SortFunc(orders, func(a, b domain.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return orders, nil
}

type stubRates struct {
	rate  decimal.Decimal
	err   error
	calls atomic.Int32
}

func (s *stubRates) CurrentUSDToKRW(context.Context) (decimal.Decimal, error) {
	s.calls.Add(1)
	if s.err != nil {
		return decimal.Zero, s.err
	}
	return s.rate, nil
}
