package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovan/bookshop/internal/domain/book"
	"github.com/kovan/bookshop/internal/domain/user"
)

type fakeCartRepo struct {
	carts  map[uint]*ShoppingCart
	nextID uint
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uint]*ShoppingCart), nextID: 1}
}

func (r *fakeCartRepo) Create(_ context.Context, c *ShoppingCart) error {
	c.ID = r.nextID
	r.nextID++
	cp := *c
	r.carts[c.ID] = &cp
	return nil
}

func (r *fakeCartRepo) FindByID(_ context.Context, id uint) (*ShoppingCart, error) {
	c, ok := r.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCartRepo) FindByUserID(_ context.Context, userID uint) (*ShoppingCart, error) {
	for _, c := range r.carts {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrCartNotFound
}

func (r *fakeCartRepo) Update(_ context.Context, c *ShoppingCart) error {
	if _, ok := r.carts[c.ID]; !ok {
		return ErrCartNotFound
	}
	cp := *c
	r.carts[c.ID] = &cp
	return nil
}

type fakeItemRepo struct {
	items  map[uint]*CartItem
	nextID uint
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uint]*CartItem), nextID: 1}
}

func (r *fakeItemRepo) Create(_ context.Context, item *CartItem) error {
	item.ID = r.nextID
	r.nextID++
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uint) (*CartItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, ErrCartItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *fakeItemRepo) FindByCartAndBook(_ context.Context, cartID, bookID uint) (*CartItem, error) {
	for _, item := range r.items {
		if item.CartID == cartID && item.BookID == bookID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, ErrCartItemNotFound
}

func (r *fakeItemRepo) FindAll(_ context.Context) ([]*CartItem, error) {
	out := make([]*CartItem, 0, len(r.items))
	for _, item := range r.items {
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *CartItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return ErrCartItemNotFound
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.items[id]; !ok {
		return ErrCartItemNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeUserRepo struct {
	users map[uint]*user.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error { return nil }

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*user.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(_ context.Context, u *user.User) error    { return nil }
func (r *fakeUserRepo) Delete(_ context.Context, id uint) error         { return nil }

type fakeBookRepo struct {
	books map[uint]*book.Book
}

func (r *fakeBookRepo) Create(_ context.Context, b *book.Book) error { return nil }

func (r *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) FindByISBN(_ context.Context, isbn string) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) FindAll(_ context.Context) ([]*book.Book, error) { return nil, nil }
func (r *fakeBookRepo) Update(_ context.Context, b *book.Book) error    { return nil }
func (r *fakeBookRepo) Delete(_ context.Context, id uint) error         { return nil }

func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func newTestService() (Service, *fakeItemRepo) {
	itemRepo := newFakeItemRepo()
	userRepo := &fakeUserRepo{users: map[uint]*user.User{1: {ID: 1}, 2: {ID: 2}}}
	bookRepo := &fakeBookRepo{books: map[uint]*book.Book{10: {ID: 10, Stock: 5}}}
	return NewService(newFakeCartRepo(), itemRepo, userRepo, bookRepo), itemRepo
}

func TestGetOrCreateCart_LazyCreate(t *testing.T) {
	svc, _ := newTestService()

	c1, err := svc.GetOrCreateCart(context.Background(), 1)
	require.NoError(t, err)
	require.NotZero(t, c1.ID)

	// 第二次访问返回同一购物车
	c2, err := svc.GetOrCreateCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, c1.ID, c2.ID)
}

func TestGetOrCreateCart_UserNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetOrCreateCart(context.Background(), 99)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestAddToCart_AccumulatesQuantity(t *testing.T) {
	svc, itemRepo := newTestService()

	first, err := svc.AddToCart(context.Background(), 1, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	// 同一本书再次加购:数量累加,不产生新条目
	second, err := svc.AddToCart(context.Background(), 1, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	all, _ := itemRepo.FindAll(context.Background())
	assert.Len(t, all, 1)
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddToCart(context.Background(), 1, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestAddToCart_BookNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddToCart(context.Background(), 1, 999, 1)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestRemoveFromCart_OwnershipEnforced(t *testing.T) {
	svc, _ := newTestService()

	item, err := svc.AddToCart(context.Background(), 1, 10, 1)
	require.NoError(t, err)

	// 其他用户不能移除该条目
	err = svc.RemoveFromCart(context.Background(), 2, item.ID)
	assert.ErrorIs(t, err, ErrItemNotInCart)

	// 本人可以移除
	err = svc.RemoveFromCart(context.Background(), 1, item.ID)
	assert.NoError(t, err)
}

func TestUpdateCartItem_ChangesQuantity(t *testing.T) {
	svc, _ := newTestService()

	item, err := svc.AddToCart(context.Background(), 1, 10, 1)
	require.NoError(t, err)

	updated, err := svc.UpdateCartItem(context.Background(), item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
}

func TestUpdateCartItem_InvalidQuantity(t *testing.T) {
	svc, _ := newTestService()

	item, err := svc.AddToCart(context.Background(), 1, 10, 1)
	require.NoError(t, err)

	_, err = svc.UpdateCartItem(context.Background(), item.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}
