package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SolBenven/proyecto-final/internal/testutil"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateBatch(ctx context.Context, statusChangeID int64, accountIDs []int64) error {
	return m.Called(ctx, statusChangeID, accountIDs).Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Notification, error) {
	args := m.Called(ctx, id)
	if n := args.Get(0); n != nil {
		return n.(*Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListPending(ctx context.Context, accountID int64) ([]*Detail, error) {
	args := m.Called(ctx, accountID)
	if n := args.Get(0); n != nil {
		return n.([]*Detail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) CountUnread(ctx context.Context, accountID int64) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) MarkRead(ctx context.Context, id int64, readAt time.Time) error {
	return m.Called(ctx, id, readAt).Error(0)
}

func (m *mockRepo) MarkAllRead(ctx context.Context, accountID int64, readAt time.Time) (int64, error) {
	args := m.Called(ctx, accountID, readAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) DeleteForClaim(ctx context.Context, claimID int64) ([]int64, error) {
	args := m.Called(ctx, claimID)
	if n := args.Get(0); n != nil {
		return n.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

// stubCounter is a simple in-memory counter cache.
type stubCounter struct {
	values      map[int64]int64
	invalidated []int64
}

func newStubCounter() *stubCounter {
	return &stubCounter{values: map[int64]int64{}}
}

func (c *stubCounter) Get(_ context.Context, accountID int64) (int64, bool) {
	v, ok := c.values[accountID]
	return v, ok
}

func (c *stubCounter) Set(_ context.Context, accountID, count int64) {
	c.values[accountID] = count
}

func (c *stubCounter) Invalidate(_ context.Context, accountIDs ...int64) {
	for _, id := range accountIDs {
		delete(c.values, id)
		c.invalidated = append(c.invalidated, id)
	}
}

func TestUnreadCountServedFromCache(t *testing.T) {
	repo := &mockRepo{}
	counter := newStubCounter()
	counter.values[100] = 3
	svc := NewService(repo, counter, testutil.NewMockLogger())

	count, err := svc.UnreadCount(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	repo.AssertNotCalled(t, "CountUnread", mock.Anything, mock.Anything)
}

func TestUnreadCountFallsBackToDatabase(t *testing.T) {
	repo := &mockRepo{}
	counter := newStubCounter()
	svc := NewService(repo, counter, testutil.NewMockLogger())

	repo.On("CountUnread", mock.Anything, int64(100)).Return(int64(5), nil)

	count, err := svc.UnreadCount(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	// The database result is now cached.
	cached, ok := counter.Get(context.Background(), 100)
	assert.True(t, ok)
	assert.Equal(t, int64(5), cached)
}

func TestMarkReadRequiresOwnership(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, newStubCounter(), testutil.NewMockLogger())

	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&Notification{ID: 1, AccountID: 200}, nil)

	err := svc.MarkRead(context.Background(), 1, 100)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotificationOwner))
	repo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, newStubCounter(), testutil.NewMockLogger())

	readAt := time.Now()
	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&Notification{ID: 1, AccountID: 100, ReadAt: &readAt}, nil)

	assert.NoError(t, svc.MarkRead(context.Background(), 1, 100))
	repo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkReadStampsAndInvalidates(t *testing.T) {
	repo := &mockRepo{}
	counter := newStubCounter()
	counter.values[100] = 2
	svc := NewService(repo, counter, testutil.NewMockLogger())

	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&Notification{ID: 1, AccountID: 100}, nil)
	repo.On("MarkRead", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(nil)

	require.NoError(t, svc.MarkRead(context.Background(), 1, 100))
	_, ok := counter.Get(context.Background(), 100)
	assert.False(t, ok)
}

func TestMarkReadMissingNotification(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, newStubCounter(), testutil.NewMockLogger())

	repo.On("GetByID", mock.Anything, int64(9)).
		Return(nil, errors.New(errors.ErrCodeNotificationNotFound, "notification not found"))

	err := svc.MarkRead(context.Background(), 9, 100)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotificationNotFound))
}

func TestMarkAllRead(t *testing.T) {
	repo := &mockRepo{}
	counter := newStubCounter()
	counter.values[100] = 4
	svc := NewService(repo, counter, testutil.NewMockLogger())

	repo.On("MarkAllRead", mock.Anything, int64(100), mock.AnythingOfType("time.Time")).
		Return(int64(4), nil)

	affected, err := svc.MarkAllRead(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(4), affected)
	assert.Equal(t, []int64{100}, counter.invalidated)
}

func TestMarkAllReadNothingPendingSkipsInvalidation(t *testing.T) {
	repo := &mockRepo{}
	counter := newStubCounter()
	svc := NewService(repo, counter, testutil.NewMockLogger())

	repo.On("MarkAllRead", mock.Anything, int64(100), mock.AnythingOfType("time.Time")).
		Return(int64(0), nil)

	affected, err := svc.MarkAllRead(context.Background(), 100)
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.Empty(t, counter.invalidated)
}
