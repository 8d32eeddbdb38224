package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovan/bookshop/internal/domain/book"
	"github.com/kovan/bookshop/internal/domain/inventory"
	"github.com/kovan/bookshop/internal/domain/order"
	"github.com/kovan/bookshop/internal/domain/payment"
	"github.com/kovan/bookshop/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	m.Run()
}

// fakeTxManager 直接执行fn;rollback=true时丢弃写入无法模拟,
// 因此断言依赖"失败路径在写入前返回"的实现顺序
type fakeTxManager struct{}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeOrderRepo struct {
	orders map[uint]*order.Order
	nextID uint
}

func newFakeOrderRepo(orders ...*order.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[uint]*order.Order), nextID: 1}
	for _, o := range orders {
		cp := *o
		r.orders[o.ID] = &cp
		if o.ID >= r.nextID {
			r.nextID = o.ID + 1
		}
	}
	return r
}

func (r *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	o.ID = r.nextID
	r.nextID++
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
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
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

func pendingOrder(items ...order.OrderItem) *order.Order {
	return &order.Order{ID: 1, Status: order.StatusPending, UserID: 1, Items: items}
}

// ========================================
// ProcessPaymentUseCase
// ========================================

func TestProcessPayment_CompletedShipsAndDeductsStock(t *testing.T) {
	orderRepo := newFakeOrderRepo(pendingOrder(
		order.OrderItem{BookID: 1, Quantity: 2, UnitPrice: 5900, TotalPrice: 11800},
	))
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Price: 5900, Stock: 100})
	paymentRepo := newFakePaymentRepo()
	invRepo := newFakeInventoryRepo()

	uc := NewProcessPaymentUseCase(paymentRepo, orderRepo, bookRepo, invRepo, &fakeTxManager{}, nil)

	p, err := uc.Execute(context.Background(), 1, ProcessPaymentRequest{
		Method: "CREDIT_CARD",
		Status: "COMPLETED",
		Amount: 11800,
	})
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCompleted, p.Status)
	assert.NotEmpty(t, p.ReferenceNo)

	// 订单转SHIPPED且回填PaymentID
	o, err := orderRepo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, o.Status)
	require.NotNil(t, o.PaymentID)
	assert.Equal(t, p.ID, *o.PaymentID)

	// 库存按明细数量扣减:100 - 2 = 98
	b, err := bookRepo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 98, b.Stock)

	// 写入Purchase审计流水
	require.Len(t, invRepo.transactions, 1)
	assert.Equal(t, inventory.TypePurchase, invRepo.transactions[0].Type)
	assert.Equal(t, 2, invRepo.transactions[0].Quantity)
}

func TestProcessPayment_FailedKeepsOrderPending(t *testing.T) {
	orderRepo := newFakeOrderRepo(pendingOrder(
		order.OrderItem{BookID: 1, Quantity: 2, UnitPrice: 5900, TotalPrice: 11800},
	))
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 100})
	invRepo := newFakeInventoryRepo()

	uc := NewProcessPaymentUseCase(newFakePaymentRepo(), orderRepo, bookRepo, invRepo, &fakeTxManager{}, nil)

	p, err := uc.Execute(context.Background(), 1, ProcessPaymentRequest{
		Method: "ALIPAY",
		Status: "FAILED",
		Amount: 11800,
	})
	require.NoError(t, err)
	assert.Equal(t, payment.StatusFailed, p.Status)

	// 支付失败:订单保持PENDING,库存不动,不记流水
	o, _ := orderRepo.FindByID(context.Background(), 1)
	assert.Equal(t, order.StatusPending, o.Status)
	b, _ := bookRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 100, b.Stock)
	assert.Empty(t, invRepo.transactions)
}

func TestProcessPayment_NonPendingOrderRejected(t *testing.T) {
	orderRepo := newFakeOrderRepo(&order.Order{ID: 1, Status: order.StatusShipped})
	paymentRepo := newFakePaymentRepo()

	uc := NewProcessPaymentUseCase(paymentRepo, orderRepo, newFakeBookRepo(),
		newFakeInventoryRepo(), &fakeTxManager{}, nil)

	_, err := uc.Execute(context.Background(), 1, ProcessPaymentRequest{
		Method: "CREDIT_CARD",
		Status: "COMPLETED",
		Amount: 100,
	})
	assert.ErrorIs(t, err, payment.ErrOrderNotPending)
	// 拒绝前未落任何支付记录
	assert.Empty(t, paymentRepo.payments)
}

func TestProcessPayment_InvalidAmount(t *testing.T) {
	uc := NewProcessPaymentUseCase(newFakePaymentRepo(), newFakeOrderRepo(), newFakeBookRepo(),
		newFakeInventoryRepo(), &fakeTxManager{}, nil)

	_, err := uc.Execute(context.Background(), 1, ProcessPaymentRequest{
		Method: "CREDIT_CARD",
		Status: "COMPLETED",
		Amount: 0,
	})
	assert.ErrorIs(t, err, payment.ErrInvalidAmount)
}

func TestProcessPayment_InsufficientStock(t *testing.T) {
	orderRepo := newFakeOrderRepo(pendingOrder(
		order.OrderItem{BookID: 1, Quantity: 5, UnitPrice: 5900, TotalPrice: 29500},
	))
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 3})

	uc := NewProcessPaymentUseCase(newFakePaymentRepo(), orderRepo, bookRepo,
		newFakeInventoryRepo(), &fakeTxManager{}, nil)

	_, err := uc.Execute(context.Background(), 1, ProcessPaymentRequest{
		Method: "CREDIT_CARD",
		Status: "COMPLETED",
		Amount: 29500,
	})
	assert.True(t, errors.Is(err, book.ErrInsufficientStock))
}

// ========================================
// UpdatePaymentUseCase
// ========================================

func TestUpdatePayment_CompletedShipsPendingOrder(t *testing.T) {
	paymentID := uint(3)
	paymentRepo := newFakePaymentRepo(&payment.Payment{ID: paymentID, Status: payment.StatusPending, Amount: 11800})
	orderRepo := newFakeOrderRepo(&order.Order{
		ID:        1,
		Status:    order.StatusPending,
		PaymentID: &paymentID,
		Items:     []order.OrderItem{{BookID: 1, Quantity: 2, UnitPrice: 5900, TotalPrice: 11800}},
	})
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 100})
	invRepo := newFakeInventoryRepo()

	uc := NewUpdatePaymentUseCase(paymentRepo, orderRepo, bookRepo, invRepo, &fakeTxManager{})

	p, err := uc.Execute(context.Background(), paymentID, UpdatePaymentRequest{
		Method: "CREDIT_CARD",
		Status: "COMPLETED",
		Amount: 11800,
	})
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCompleted, p.Status)

	o, _ := orderRepo.FindByID(context.Background(), 1)
	assert.Equal(t, order.StatusShipped, o.Status)
	b, _ := bookRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 98, b.Stock)
	require.Len(t, invRepo.transactions, 1)
	assert.Equal(t, inventory.TypePurchase, invRepo.transactions[0].Type)
}

func TestUpdatePayment_ShippedOrderNotDeductedTwice(t *testing.T) {
	paymentID := uint(3)
	paymentRepo := newFakePaymentRepo(&payment.Payment{ID: paymentID, Status: payment.StatusCompleted, Amount: 11800})
	orderRepo := newFakeOrderRepo(&order.Order{
		ID:        1,
		Status:    order.StatusShipped,
		PaymentID: &paymentID,
		Items:     []order.OrderItem{{BookID: 1, Quantity: 2, UnitPrice: 5900, TotalPrice: 11800}},
	})
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 98})
	invRepo := newFakeInventoryRepo()

	uc := NewUpdatePaymentUseCase(paymentRepo, orderRepo, bookRepo, invRepo, &fakeTxManager{})

	// 已发货订单的支付再次标记COMPLETED不应重复扣库存
	_, err := uc.Execute(context.Background(), paymentID, UpdatePaymentRequest{
		Method: "CREDIT_CARD",
		Status: "COMPLETED",
		Amount: 11800,
	})
	require.NoError(t, err)

	b, _ := bookRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 98, b.Stock)
	assert.Empty(t, invRepo.transactions)
}

func TestUpdatePayment_UnlinkedPaymentNoSideEffects(t *testing.T) {
	paymentRepo := newFakePaymentRepo(&payment.Payment{ID: 9, Status: payment.StatusPending, Amount: 500})
	bookRepo := newFakeBookRepo(&book.Book{ID: 1, Stock: 10})

	uc := NewUpdatePaymentUseCase(paymentRepo, newFakeOrderRepo(), bookRepo,
		newFakeInventoryRepo(), &fakeTxManager{})

	// 未关联任何订单的支付:只更新记录本身
	p, err := uc.Execute(context.Background(), 9, UpdatePaymentRequest{
		Method: "ALIPAY",
		Status: "COMPLETED",
		Amount: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCompleted, p.Status)
	b, _ := bookRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 10, b.Stock)
}
