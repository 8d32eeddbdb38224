package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovan/bookshop/internal/domain/book"
	"github.com/kovan/bookshop/internal/domain/inventory"
	"github.com/kovan/bookshop/internal/domain/order"
	"github.com/kovan/bookshop/internal/domain/payment"
	"github.com/kovan/bookshop/internal/domain/user"
	"github.com/kovan/bookshop/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	m.Run()
}

// ========================================
// 内存假仓储
// ========================================

// fakeTxManager 直接执行fn,不做真实事务
type fakeTxManager struct{}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeOrderRepo struct {
	orders map[uint]*order.Order
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*order.Order), nextID: 1}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	o.ID = r.nextID
	r.nextID++
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uint) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) FindByPaymentID(_ context.Context, paymentID uint) (*order.Order, error) {
	for _, o := range r.orders {
		if o.PaymentID != nil && *o.PaymentID == paymentID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) FindAll(_ context.Context) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	if _, ok := r.orders[o.ID]; !ok {
		return order.ErrOrderNotFound
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

type fakeBookRepo struct {
	books map[uint]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uint]*book.Book)}
	for _, b := range books {
		cp := *b
		r.books[b.ID] = &cp
	}
	return r
}

func (r *fakeBookRepo) Create(_ context.Context, b *book.Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) FindByISBN(_ context.Context, isbn string) (*book.Book, error) {
	for _, b := range r.books {
		if b.ISBN == isbn {
			cp := *b
			return &cp, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) FindAll(_ context.Context) ([]*book.Book, error) {
	out := make([]*book.Book, 0, len(r.books))
	for _, b := range r.books {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBookRepo) Update(_ context.Context, b *book.Book) error {
	if _, ok := r.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

type fakePaymentRepo struct {
	payments map[uint]*payment.Payment
	nextID   uint
}

func newFakePaymentRepo(payments ...*payment.Payment) *fakePaymentRepo {
	r := &fakePaymentRepo{payments: make(map[uint]*payment.Payment), nextID: 1}
	for _, p := range payments {
		cp := *p
		r.payments[p.ID] = &cp
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *fakePaymentRepo) Create(_ context.Context, p *payment.Payment) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uint) (*payment.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, payment.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) FindAll(_ context.Context) ([]*payment.Payment, error) {
	out := make([]*payment.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, p *payment.Payment) error {
	if _, ok := r.payments[p.ID]; !ok {
		return payment.ErrPaymentNotFound
	}
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.payments[id]; !ok {
		return payment.ErrPaymentNotFound
	}
	delete(r.payments, id)
	return nil
}

type fakeInventoryRepo struct {
	transactions []*inventory.Transaction
	nextID       uint
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{nextID: 1}
}

func (r *fakeInventoryRepo) Create(_ context.Context, t *inventory.Transaction) error {
	t.ID = r.nextID
	r.nextID++
	cp := *t
	r.transactions = append(r.transactions, &cp)
	return nil
}

func (r *fakeInventoryRepo) FindByID(_ context.Context, id uint) (*inventory.Transaction, error) {
	for _, t := range r.transactions {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, inventory.ErrTransactionNotFound
}

func (r *fakeInventoryRepo) FindAll(_ context.Context) ([]*inventory.Transaction, error) {
	return r.transactions, nil
}

func (r *fakeInventoryRepo) FindByBookID(_ context.Context, bookID uint) ([]*inventory.Transaction, error) {
	var out []*inventory.Transaction
	for _, t := range r.transactions {
		if t.BookID == bookID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) Update(_ context.Context, t *inventory.Transaction) error {
	for i, old := range r.transactions {
		if old.ID == t.ID {
			cp := *t
			r.transactions[i] = &cp
			return nil
		}
	}
	return inventory.ErrTransactionNotFound
}

func (r *fakeInventoryRepo) Delete(_ context.Context, id uint) error {
	for i, t := range r.transactions {
		if t.ID == id {
			r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
			return nil
		}
	}
	return inventory.ErrTransactionNotFound
}

type fakeUserRepo struct {
	users map[uint]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*user.User, error) {
	out := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

type fakeAddressRepo struct {
	addresses map[uint]*user.Address
}

func newFakeAddressRepo(addresses ...*user.Address) *fakeAddressRepo {
	r := &fakeAddressRepo{addresses: make(map[uint]*user.Address)}
	for _, a := range addresses {
		r.addresses[a.ID] = a
	}
	return r
}

func (r *fakeAddressRepo) Create(_ context.Context, a *user.Address) error {
	r.addresses[a.ID] = a
	return nil
}

func (r *fakeAddressRepo) FindByID(_ context.Context, id uint) (*user.Address, error) {
	a, ok := r.addresses[id]
	if !ok {
		return nil, user.ErrAddressNotFound
	}
	return a, nil
}

func (r *fakeAddressRepo) FindAll(_ context.Context) ([]*user.Address, error) {
	out := make([]*user.Address, 0, len(r.addresses))
	for _, a := range r.addresses {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAddressRepo) FindByUserID(_ context.Context, userID uint) ([]*user.Address, error) {
	var out []*user.Address
	for _, a := range r.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAddressRepo) Update(_ context.Context, a *user.Address) error {
	r.addresses[a.ID] = a
	return nil
}

func (r *fakeAddressRepo) Delete(_ context.Context, id uint) error {
	delete(r.addresses, id)
	return nil
}

// ========================================
// CreateOrderUseCase
// ========================================

func TestCreateOrder_PriceSnapshot(t *testing.T) {
	userRepo := newFakeUserRepo(&user.User{ID: 1, Email: "a@b.com"})
	addressRepo := newFakeAddressRepo(&user.Address{ID: 1, UserID: 1})
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Title: "Go语言实战", Price: 5900, Stock: 100})
	orderRepo := newFakeOrderRepo()

	uc := NewCreateOrderUseCase(orderRepo, userRepo, addressRepo, bookRepo, &fakeTxManager{}, nil)

	o, err := uc.Execute(context.Background(), CreateOrderRequest{
		UserID:            1,
		ShippingAddressID: 1,
		Items:             []CreateOrderItem{{BookID: 1, Quantity: 2}},
	})
	require.NoError(t, err)

	// 状态强制PENDING,单价取下单时刻快照,总价=单价×数量
	assert.Equal(t, order.StatusPending, o.Status)
	require.Len(t, o.Items, 1)
	assert.Equal(t, int64(5900), o.Items[0].UnitPrice)
	assert.Equal(t, int64(11800), o.Items[0].TotalPrice)

	// 下单不扣库存:库存在支付完成时才扣减
	b, err := bookRepo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 100, b.Stock)
}

func TestCreateOrder_UserNotFound(t *testing.T) {
	uc := NewCreateOrderUseCase(newFakeOrderRepo(), newFakeUserRepo(), newFakeAddressRepo(),
		newFakeBookRepo(), &fakeTxManager{}, nil)

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		UserID:            99,
		ShippingAddressID: 1,
		Items:             []CreateOrderItem{{BookID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	uc := NewCreateOrderUseCase(newFakeOrderRepo(), newFakeUserRepo(), newFakeAddressRepo(),
		newFakeBookRepo(), &fakeTxManager{}, nil)

	_, err := uc.Execute(context.Background(), CreateOrderRequest{UserID: 1, ShippingAddressID: 1})
	assert.ErrorIs(t, err, order.ErrInvalidOrderItems)
}

func TestCreateOrder_InvalidQuantity(t *testing.T) {
	uc := NewCreateOrderUseCase(newFakeOrderRepo(), newFakeUserRepo(), newFakeAddressRepo(),
		newFakeBookRepo(), &fakeTxManager{}, nil)

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		UserID:            1,
		ShippingAddressID: 1,
		Items:             []CreateOrderItem{{BookID: 1, Quantity: 0}},
	})
	assert.ErrorIs(t, err, order.ErrInvalidQuantity)
}

// ========================================
// CancelOrderUseCase
// ========================================

func TestCancelOrder_ShippedRejected(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	o := &order.Order{Status: order.StatusShipped, UserID: 1}
	require.NoError(t, orderRepo.Create(context.Background(), o))

	uc := NewCancelOrderUseCase(orderRepo, newFakePaymentRepo(), newFakeBookRepo(),
		newFakeInventoryRepo(), &fakeTxManager{}, nil)

	_, err := uc.Execute(context.Background(), o.ID)
	assert.ErrorIs(t, err, order.ErrOrderShipped)

	// 状态保持不变
	stored, err := orderRepo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, stored.Status)
}

func TestCancelOrder_CompletedPaymentRefundsAndRestocks(t *testing.T) {
	paymentID := uint(7)
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Price: 5900, Stock: 98})
	paymentRepo := newFakePaymentRepo(&payment.Payment{ID: paymentID, Status: payment.StatusCompleted, Amount: 11800})
	invRepo := newFakeInventoryRepo()
	orderRepo := newFakeOrderRepo()

	o := &order.Order{
		Status:    order.StatusPending,
		UserID:    1,
		PaymentID: &paymentID,
		Items:     []order.OrderItem{{BookID: 1, Quantity: 2, UnitPrice: 5900, TotalPrice: 11800}},
	}
	require.NoError(t, orderRepo.Create(context.Background(), o))

	uc := NewCancelOrderUseCase(orderRepo, paymentRepo, bookRepo, invRepo, &fakeTxManager{}, nil)

	result, err := uc.Execute(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, result.Status)

	// 支付转REFUNDED
	p, err := paymentRepo.FindByID(context.Background(), paymentID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusRefunded, p.Status)

	// 库存按明细数量回补:98 + 2 = 100
	b, err := bookRepo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 100, b.Stock)

	// 写入Restock审计流水
	require.Len(t, invRepo.transactions, 1)
	assert.Equal(t, inventory.TypeRestock, invRepo.transactions[0].Type)
	assert.Equal(t, 2, invRepo.transactions[0].Quantity)
}

func TestCancelOrder_PendingWithoutPayment(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	o := &order.Order{Status: order.StatusPending, UserID: 1}
	require.NoError(t, orderRepo.Create(context.Background(), o))

	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 50})
	invRepo := newFakeInventoryRepo()

	uc := NewCancelOrderUseCase(orderRepo, newFakePaymentRepo(), bookRepo, invRepo, &fakeTxManager{}, nil)

	result, err := uc.Execute(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, result.Status)

	// 无已完成支付时不动库存、不记流水
	b, _ := bookRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 50, b.Stock)
	assert.Empty(t, invRepo.transactions)
}
