package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type fakeRepo struct {
	salons map[uuid.UUID]*domain.Salon
	gets   int
}

func (f *fakeRepo) Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error) {
	salon.ID = uuid.New()
	f.salons[salon.ID] = salon
	return salon, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Salon, error) {
	f.gets++
	salon, ok := f.salons[id]
	if !ok {
		return nil, assert.AnError
	}
	copied := *salon
	return &copied, nil
}

func (f *fakeRepo) UpdateSchedule(ctx context.Context, id uuid.UUID, schedule domain.WeeklySchedule) error {
	f.salons[id].Schedule = schedule
	return nil
}

var errRedisDel = errors.New("del failed")

// failingDel роняет первые left команд DEL
type failingDel struct {
	left int
	dels int
}

func (h *failingDel) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *failingDel) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == "del" {
			h.dels++
			if h.left > 0 {
				h.left--
				cmd.SetErr(errRedisDel)
				return errRedisDel
			}
		}
		return next(ctx, cmd)
	}
}

func (h *failingDel) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

type countingMetrics map[string]int

func (m countingMetrics) IncCache(cache, result string) {
	m[result]++
}

type nopLogger struct{}

func (nopLogger) Warn(format string, v ...interface{}) {}

func setup(t *testing.T) (*SalonCache, *fakeRepo, *miniredis.Miniredis, countingMetrics, uuid.UUID) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	id := uuid.New()
	repo := &fakeRepo{salons: map[uuid.UUID]*domain.Salon{
		id: {
			ID:   id,
			Name: "Bella",
			Schedule: domain.WeeklySchedule{
				{Weekday: 1, IsOpen: true, Morning: &domain.Shift{Start: "08:00", End: "13:00"}},
			},
		},
	}}
	metrics := countingMetrics{}

	return NewSalonCache(repo, client, time.Minute, metrics, nopLogger{}), repo, mr, metrics, id
}

func TestSalonCache_GetByID(t *testing.T) {
	c, repo, mr, metrics, id := setup(t)
	ctx := context.Background()

	first, err := c.GetByID(ctx, id)
	require.NoError(t, err)
	second, err := c.GetByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.gets)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.Schedule, second.Schedule)
	assert.Equal(t, 1, metrics["miss"])
	assert.Equal(t, 1, metrics["hit"])
	assert.True(t, mr.Exists(salonKey(id)))

	ttl := mr.TTL(salonKey(id))
	assert.Equal(t, time.Minute, ttl)
}

func TestSalonCache_UpdateScheduleInvalidates(t *testing.T) {
	c, repo, mr, _, id := setup(t)
	ctx := context.Background()

	_, err := c.GetByID(ctx, id)
	require.NoError(t, err)

	updated := domain.WeeklySchedule{{Weekday: 2, IsOpen: false}}
	require.NoError(t, c.UpdateSchedule(ctx, id, updated))
	assert.False(t, mr.Exists(salonKey(id)))

	salon, err := c.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, updated, salon.Schedule)
	assert.Equal(t, 2, repo.gets)
}

func TestSalonCache_RedisDownFallsBackToRepository(t *testing.T) {
	c, repo, mr, metrics, id := setup(t)
	mr.Close()

	salon, err := c.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "Bella", salon.Name)
	assert.Equal(t, 1, repo.gets)
	assert.Equal(t, 1, metrics["error"])
}

func TestSalonCache_NotFoundIsNotCached(t *testing.T) {
	c, _, mr, _, _ := setup(t)
	missing := uuid.New()

	_, err := c.GetByID(context.Background(), missing)

	assert.Error(t, err)
	assert.False(t, mr.Exists(salonKey(missing)))
}

func TestSalonCache_UpdateScheduleRetriesInvalidation(t *testing.T) {
	c, _, mr, metrics, id := setup(t)
	c.retryDelay = 0
	hook := &failingDel{left: 2}
	c.redis.AddHook(hook)
	ctx := context.Background()

	_, err := c.GetByID(ctx, id)
	require.NoError(t, err)

	require.NoError(t, c.UpdateSchedule(ctx, id, domain.WeeklySchedule{{Weekday: 2, IsOpen: false}}))

	assert.Equal(t, 3, hook.dels)
	assert.False(t, mr.Exists(salonKey(id)))
	assert.False(t, c.isStale(id))
	assert.Zero(t, metrics["invalidate_error"])
}

func TestSalonCache_FailedInvalidationBypassesStaleEntry(t *testing.T) {
	c, repo, mr, metrics, id := setup(t)
	c.retryDelay = 0
	hook := &failingDel{left: invalidateAttempts + 1}
	c.redis.AddHook(hook)
	ctx := context.Background()

	_, err := c.GetByID(ctx, id)
	require.NoError(t, err)

	updated := domain.WeeklySchedule{{Weekday: 2, IsOpen: false}}
	require.NoError(t, c.UpdateSchedule(ctx, id, updated))
	assert.True(t, mr.Exists(salonKey(id)))
	assert.True(t, c.isStale(id))
	assert.Equal(t, 1, metrics["invalidate_error"])

	// Redis всё ещё не удаляет ключ: читаем из базы, старый профиль не отдаём
	salon, err := c.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, updated, salon.Schedule)
	assert.Equal(t, 2, repo.gets)
	assert.True(t, c.isStale(id))

	// Redis восстановился: ключ сброшен, кеш снова заполняется
	salon, err = c.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, updated, salon.Schedule)
	assert.False(t, c.isStale(id))
	assert.Equal(t, 3, repo.gets)

	salon, err = c.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, updated, salon.Schedule)
	assert.Equal(t, 3, repo.gets)
}
