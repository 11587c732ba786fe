package admin

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/freshflower/storefront/internal/redisx"
)

// Verifier memeriksa kredensial operator. Dipisah dari session supaya gate
// admin eksplisit, bukan state global.
type Verifier struct {
	Username string
	Password string
}

func (v Verifier) Verify(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(v.Username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(v.Password))
	return u == 1 && p == 1
}

// SessionStore menyimpan sesi admin aktif.
type SessionStore interface {
	Create(ctx context.Context) (token string, err error)
	Validate(ctx context.Context, token string) (bool, error)
	Destroy(ctx context.Context, token string) error
}

type RedisSessions struct {
	RDB *redis.Client
}

func (s *RedisSessions) Create(ctx context.Context) (string, error) {
	token := uuid.NewString()
	key := fmt.Sprintf(redisx.KeyAdminSession, token)
	if err := s.RDB.Set(ctx, key, "1", redisx.TTLAdminSession).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

func (s *RedisSessions) Validate(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return redisx.Exists(ctx, s.RDB, fmt.Sprintf(redisx.KeyAdminSession, token))
}

func (s *RedisSessions) Destroy(ctx context.Context, token string) error {
	return s.RDB.Del(ctx, fmt.Sprintf(redisx.KeyAdminSession, token)).Err()
}
