package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/SAP-F-2025/classroom-service/internal/cache"
	"github.com/SAP-F-2025/classroom-service/internal/events"
	"github.com/SAP-F-2025/classroom-service/internal/storage"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	repo      *MockRepository
	service   AdminService
	publisher *events.MockEventPublisher
	uploads   string
	redis     *miniredis.Miniredis
	cache     cache.CacheService
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	logger := discardLogger()

	uploads := t.TempDir()
	fileStorage, err := storage.NewLocalStorage(uploads, logger)
	require.NoError(t, err)

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	cacheService := cache.NewRedisCache(client, logger)

	repo := NewMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	return &adminFixture{
		repo:      repo,
		service:   NewAdminService(repo, fileStorage, cacheService, publisher, logger),
		publisher: publisher,
		uploads:   uploads,
		redis:     server,
		cache:     cacheService,
	}
}

func TestResetAll(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	for _, name := range []string{"answer_1_11_essay.pdf", "slides.pdf"} {
		require.NoError(t, os.WriteFile(f.uploads+"/"+name, []byte("x"), 0o644))
	}
	require.NoError(t, f.cache.Set(ctx, cache.KeyActiveQuizzes, []int{1}, time.Minute))
	require.NoError(t, f.cache.Set(ctx, cache.KeyRevokedTokens+"jti", true, time.Minute))

	f.repo.users.On("GetByID", mock.Anything, uint(1)).Return(teacherFixture(1), nil)
	f.repo.On("ResetAll", mock.Anything).Return(nil)

	result, err := f.service.ResetAll(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, result.FilesRemoved)
	assert.False(t, result.ResetAt.IsZero())

	entries, _ := os.ReadDir(f.uploads)
	assert.Empty(t, entries)

	exists, err := f.cache.Exists(ctx, cache.KeyActiveQuizzes)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = f.cache.Exists(ctx, cache.KeyRevokedTokens+"jti")
	require.NoError(t, err)
	assert.True(t, exists)

	published := f.publisher.EventsOfType(events.EventDataReset)
	require.Len(t, published, 1)
	payload := published[0].Data.(events.DataResetEvent)
	assert.Equal(t, uint(1), payload.ActorID)
	assert.Equal(t, 2, payload.FilesRemoved)

	f.repo.AssertExpectations(t)
}

func TestResetAll_StudentForbidden(t *testing.T) {
	f := newAdminFixture(t)
	require.NoError(t, os.WriteFile(f.uploads+"/keep.pdf", []byte("x"), 0o644))

	f.repo.users.On("GetByID", mock.Anything, uint(2)).Return(studentFixture(2), nil)

	_, err := f.service.ResetAll(context.Background(), 2)
	assert.True(t, IsUnauthorized(err))

	f.repo.AssertNotCalled(t, "ResetAll", mock.Anything)
	assert.FileExists(t, f.uploads+"/keep.pdf")
	assert.Empty(t, f.publisher.GetPublishedEvents())
}

func TestResetAll_DatabaseFailureKeepsFiles(t *testing.T) {
	f := newAdminFixture(t)
	require.NoError(t, os.WriteFile(f.uploads+"/keep.pdf", []byte("x"), 0o644))

	f.repo.users.On("GetByID", mock.Anything, uint(1)).Return(teacherFixture(1), nil)
	f.repo.On("ResetAll", mock.Anything).Return(errors.New("db down"))

	_, err := f.service.ResetAll(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to reset data"))
	assert.FileExists(t, f.uploads+"/keep.pdf")
}
