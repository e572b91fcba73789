package group

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SecretSanta/internal/auth"
	"SecretSanta/internal/santa"
)

func newRedisRepo(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, Repo) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewRedisRepo(rdb, ttl)
}

func TestRedisRepo_Lifecycle(t *testing.T) {
	ctx := context.Background()
	mr, repo := newRedisRepo(t, time.Hour)

	now := time.Now().UTC().Truncate(time.Second)
	g := &Group{
		ID:           "g1",
		Name:         "x-mas",
		Participants: []string{"A", "B", "C"},
		Couples:      map[string]string{"A": "B"},
		Assignment:   map[string]string{"A": "C", "C": "B", "B": "A"},
		CreatedAt:    now,
		DrawnAt:      &now,
	}
	require.NoError(t, repo.Save(ctx, g))
	assert.True(t, mr.Exists("ss:group:g1"))
	assert.Equal(t, time.Hour, mr.TTL("ss:group:g1"))

	got, err := repo.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, g.Participants, got.Participants)
	assert.Equal(t, g.Couples, got.Couples)
	assert.Equal(t, g.Assignment, got.Assignment)
	assert.True(t, now.Equal(*got.DrawnAt))

	require.NoError(t, repo.Delete(ctx, "g1"))
	assert.False(t, mr.Exists("ss:group:g1"))

	_, err = repo.Get(ctx, "g1")
	assert.ErrorIs(t, err, ErrGroupNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "g1"), ErrGroupNotFound)
}

func TestRedisRepo_Expires(t *testing.T) {
	ctx := context.Background()
	mr, repo := newRedisRepo(t, time.Minute)

	require.NoError(t, repo.Save(ctx, &Group{ID: "g1", Name: "x"}))
	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, "g1")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestRedisRepo_NoTTL(t *testing.T) {
	ctx := context.Background()
	mr, repo := newRedisRepo(t, 0)

	require.NoError(t, repo.Save(ctx, &Group{ID: "g1", Name: "x"}))
	assert.Equal(t, time.Duration(0), mr.TTL("ss:group:g1"))
}

func TestRedisRepo_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	mr, repo := newRedisRepo(t, 0)

	require.NoError(t, mr.Set("ss:group:bad", "{not json"))
	_, err := repo.Get(ctx, "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrGroupNotFound)
}

// 整个流程跑在 Redis 上
func TestRedisRepo_ServiceFlow(t *testing.T) {
	ctx := context.Background()
	_, repo := newRedisRepo(t, time.Hour)
	svc := NewService(repo, santa.NewMatcher(9), NewMockHub(), auth.NewIssuer("s", time.Hour))

	g, err := svc.Create(ctx, "x-mas", family...)
	require.NoError(t, err)
	_, err = svc.AddCouple(ctx, g.ID, "Coline", "Emilien")
	require.NoError(t, err)

	res, err := svc.Draw(ctx, g.ID)
	require.NoError(t, err)

	stored, err := svc.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Group.Assignment, stored.Assignment)
	assert.NoError(t, santa.Validate(santa.NewParticipants(family...), stored.Couples, stored.Assignment))
}
