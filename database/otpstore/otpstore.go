package otpstore

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// MaxAttempts wrong codes discard the pending signup.
const MaxAttempts = 5

var (
	ErrNoPendingSignup = errors.New("no pending signup for this email")
	ErrInvalidOTP      = errors.New("invalid otp")
	ErrTooManyAttempts = errors.New("too many wrong codes, signup discarded")
)

// PendingSignup is what phase one of signup leaves behind until the code is
// confirmed. Password is already hashed.
type PendingSignup struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"passwordHash"`
	Code         string `json:"code"`
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func key(email string) string {
	return fmt.Sprintf("signup:%s", strings.TrimSpace(strings.ToLower(email)))
}

func attemptsKey(email string) string {
	return fmt.Sprintf("signup-attempts:%s", strings.TrimSpace(strings.ToLower(email)))
}

// Begin stores the pending signup under a fresh code, replacing any earlier
// attempt for the same email, and returns the code.
func (s *Store) Begin(ctx context.Context, pending PendingSignup) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	pending.Code = code
	payload, err := json.Marshal(pending)
	if err != nil {
		return "", err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key(pending.Email), payload, s.ttl)
	pipe.Del(ctx, attemptsKey(pending.Email))
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("store pending signup: %w", err)
	}
	return code, nil
}

// Confirm checks the code and consumes the pending signup. A code can be
// used once; a wrong code leaves the pending signup in place until
// MaxAttempts wrong codes have been tried.
func (s *Store) Confirm(ctx context.Context, email, code string) (PendingSignup, error) {
	k := key(email)
	raw, err := s.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return PendingSignup{}, ErrNoPendingSignup
	}
	if err != nil {
		return PendingSignup{}, fmt.Errorf("load pending signup: %w", err)
	}
	var pending PendingSignup
	if err := json.Unmarshal(raw, &pending); err != nil {
		return PendingSignup{}, fmt.Errorf("decode pending signup: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(pending.Code), []byte(code)) != 1 {
		return PendingSignup{}, s.failedAttempt(ctx, email)
	}
	deleted, err := s.client.Del(ctx, k, attemptsKey(email)).Result()
	if err != nil {
		return PendingSignup{}, fmt.Errorf("consume pending signup: %w", err)
	}
	if deleted == 0 {
		return PendingSignup{}, ErrNoPendingSignup
	}
	return pending, nil
}

func (s *Store) failedAttempt(ctx context.Context, email string) error {
	pipe := s.client.TxPipeline()
	count := pipe.Incr(ctx, attemptsKey(email))
	pipe.Expire(ctx, attemptsKey(email), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("count otp attempt: %w", err)
	}
	if count.Val() < MaxAttempts {
		return ErrInvalidOTP
	}
	if err := s.client.Del(ctx, key(email), attemptsKey(email)).Err(); err != nil {
		return fmt.Errorf("discard pending signup: %w", err)
	}
	return ErrTooManyAttempts
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
