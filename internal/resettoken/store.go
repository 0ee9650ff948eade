package resettoken

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"order-service/internal/config"
	apperrors "order-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix        = "pwreset:"
	tokenByteLength  = 32
	dialTimeout      = 5 * time.Second
	pingTimeout      = 5 * time.Second
	msgTokenInvalid  = "reset token is invalid or expired"
	errRedisPingFmt  = "redis ping failed: %w"
	errTokenReadFmt  = "failed to generate reset token: %w"
	errTokenStoreFmt = "failed to store reset token: %w"
	errTokenFetchFmt = "failed to look up reset token: %w"
)

// Store keeps outstanding password reset tokens in Redis. Only the SHA-256
// of a token is stored, so a leaked keyspace cannot be replayed. Entries
// expire via TTL; consuming a token deletes it atomically.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func New(cfg *config.RedisConfig, ttl time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf(errRedisPingFmt, err)
	}

	return &Store{client: client, ttl: ttl}, nil
}

// Issue creates a fresh opaque token for userID and stores its hash with the
// configured TTL. The plaintext token is returned exactly once, for the
// reset email.
func (s *Store) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	raw := make([]byte, tokenByteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf(errTokenReadFmt, err)
	}

	token := hex.EncodeToString(raw)
	if err := s.client.Set(ctx, keyPrefix+hashToken(token), userID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf(errTokenStoreFmt, err)
	}

	return token, nil
}

// Consume validates token and removes it in the same round trip, so a token
// can never be used twice. Unknown and expired tokens are indistinguishable
// to the caller.
func (s *Store) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	value, err := s.client.GetDel(ctx, keyPrefix+hashToken(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, apperrors.Expired(msgTokenInvalid)
		}
		return uuid.Nil, fmt.Errorf(errTokenFetchFmt, err)
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperrors.Expired(msgTokenInvalid)
	}

	return userID, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
