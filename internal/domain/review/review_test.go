package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovan/bookshop/internal/domain/book"
	"github.com/kovan/bookshop/internal/domain/user"
)

type fakeReviewRepo struct {
	reviews map[uint]*Review
	nextID  uint
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uint]*Review), nextID: 1}
}

func (r *fakeReviewRepo) Create(_ context.Context, rv *Review) error {
	rv.ID = r.nextID
	r.nextID++
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uint) (*Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeReviewRepo) FindByUserAndBook(_ context.Context, userID, bookID uint) (*Review, error) {
	for _, rv := range r.reviews {
		if rv.UserID == userID && rv.BookID == bookID {
			cp := *rv
			return &cp, nil
		}
	}
	return nil, ErrReviewNotFound
}

func (r *fakeReviewRepo) FindByBookID(_ context.Context, bookID uint) ([]*Review, error) {
	var out []*Review
	for _, rv := range r.reviews {
		if rv.BookID == bookID {
			cp := *rv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) FindAll(_ context.Context) ([]*Review, error) {
	out := make([]*Review, 0, len(r.reviews))
	for _, rv := range r.reviews {
		cp := *rv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeReviewRepo) Update(_ context.Context, rv *Review) error {
	if _, ok := r.reviews[rv.ID]; !ok {
		return ErrReviewNotFound
	}
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.reviews[id]; !ok {
		return ErrReviewNotFound
	}
	delete(r.reviews, id)
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

func newTestService() (Service, *fakeReviewRepo) {
	repo := newFakeReviewRepo()
	userRepo := &fakeUserRepo{users: map[uint]*user.User{1: {ID: 1}}}
	bookRepo := &fakeBookRepo{books: map[uint]*book.Book{10: {ID: 10}}}
	return NewService(repo, userRepo, bookRepo), repo
}

func TestAddOrUpdateReview_CreatesThenUpdatesInPlace(t *testing.T) {
	svc, repo := newTestService()

	first, err := svc.AddOrUpdateReview(context.Background(), 1, 10, 4, "不错")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	// 同一(用户,图书)再次评价:原地更新,不产生新记录
	second, err := svc.AddOrUpdateReview(context.Background(), 1, 10, 2, "重读后减分")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Rating)
	assert.Equal(t, "重读后减分", second.Comment)

	all, _ := repo.FindAll(context.Background())
	assert.Len(t, all, 1)
}

func TestAddOrUpdateReview_InvalidRating(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddOrUpdateReview(context.Background(), 1, 10, 0, "")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.AddOrUpdateReview(context.Background(), 1, 10, 6, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestAddOrUpdateReview_UserNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddOrUpdateReview(context.Background(), 99, 10, 3, "")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestAddOrUpdateReview_BookNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddOrUpdateReview(context.Background(), 1, 999, 3, "")
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestDeleteReview_ByUserAndBook(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.AddOrUpdateReview(context.Background(), 1, 10, 4, "不错")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(context.Background(), 1, 10))

	all, _ := repo.FindAll(context.Background())
	assert.Empty(t, all)
}

func TestDeleteReview_NotFound(t *testing.T) {
	svc, _ := newTestService()

	err := svc.DeleteReview(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
