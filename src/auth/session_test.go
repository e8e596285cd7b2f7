package auth

import (
	"context"
	"encoding/json"
	"testing"
	"ticketpro/src/models"
	"ticketpro/src/types"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionUser = &models.User{ID: "2", Username: "user", Email: "user@ticketpro.com", Role: types.ROLE_USER}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "ticketpro_user:abc", SessionKey("abc"))
}

func TestRedisSessionStore(t *testing.T) {
	rd, mock := redismock.NewClientMock()
	s := NewRedisSessionStore(rd)
	ctx := context.Background()

	value, err := json.Marshal(sessionUser)
	require.NoError(t, err)

	mock.ExpectSet("ticketpro_user:sid-1", string(value), time.Hour).SetVal("OK")
	require.NoError(t, s.Save(ctx, "sid-1", sessionUser, time.Hour))

	mock.ExpectGet("ticketpro_user:sid-1").SetVal(string(value))
	got, err := s.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, sessionUser, got)

	mock.ExpectDel("ticketpro_user:sid-1").SetVal(1)
	require.NoError(t, s.Clear(ctx, "sid-1"))

	mock.ExpectGet("ticketpro_user:sid-1").RedisNil()
	_, err = s.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemorySessionStore(t *testing.T) {
	s := NewMemorySessionStore()
	ctx := context.Background()

	_, err := s.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, s.Save(ctx, "sid-1", sessionUser, time.Hour))
	got, err := s.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, sessionUser, got)

	require.NoError(t, s.Clear(ctx, "sid-1"))
	_, err = s.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	s := NewMemorySessionStore()
	now := time.Now()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sid-1", sessionUser, time.Minute))
	now = now.Add(2 * time.Minute)
	_, err := s.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
