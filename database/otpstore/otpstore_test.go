package otpstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Store) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, New(client, 10*time.Minute)
}

func TestBeginAndConfirm(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	code, err := store.Begin(ctx, PendingSignup{Name: "Asha", Email: "Asha@Example.com ", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Len(t, code, 6)

	pending, err := store.Confirm(ctx, "asha@example.com", code)
	require.NoError(t, err)
	assert.Equal(t, "Asha", pending.Name)
	assert.Equal(t, "hash", pending.PasswordHash)

	_, err = store.Confirm(ctx, "asha@example.com", code)
	assert.ErrorIs(t, err, ErrNoPendingSignup)
}

func TestConfirmWrongCodeKeepsPending(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	code, err := store.Begin(ctx, PendingSignup{Email: "ravi@example.com"})
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	_, err = store.Confirm(ctx, "ravi@example.com", wrong)
	assert.ErrorIs(t, err, ErrInvalidOTP)

	_, err = store.Confirm(ctx, "ravi@example.com", code)
	assert.NoError(t, err)
}

func TestPendingSignupExpires(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	code, err := store.Begin(ctx, PendingSignup{Email: "meera@example.com"})
	require.NoError(t, err)

	mr.FastForward(11 * time.Minute)

	_, err = store.Confirm(ctx, "meera@example.com", code)
	assert.ErrorIs(t, err, ErrNoPendingSignup)
}

func TestTooManyWrongCodesDiscardSignup(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	code, err := store.Begin(ctx, PendingSignup{Email: "kiran@example.com"})
	require.NoError(t, err)
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	for i := 1; i < MaxAttempts; i++ {
		_, err = store.Confirm(ctx, "kiran@example.com", wrong)
		require.ErrorIs(t, err, ErrInvalidOTP, "attempt %d", i)
	}
	_, err = store.Confirm(ctx, "kiran@example.com", wrong)
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	_, err = store.Confirm(ctx, "kiran@example.com", code)
	assert.ErrorIs(t, err, ErrNoPendingSignup)
}

func TestBeginResetsAttempts(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	_, err := store.Begin(ctx, PendingSignup{Email: "meera@example.com"})
	require.NoError(t, err)
	for i := 1; i < MaxAttempts; i++ {
		_, _ = store.Confirm(ctx, "meera@example.com", "abcdef")
	}

	code, err := store.Begin(ctx, PendingSignup{Email: "meera@example.com"})
	require.NoError(t, err)
	_, err = store.Confirm(ctx, "meera@example.com", "abcdef")
	assert.ErrorIs(t, err, ErrInvalidOTP)
	_, err = store.Confirm(ctx, "meera@example.com", code)
	assert.NoError(t, err)
}
