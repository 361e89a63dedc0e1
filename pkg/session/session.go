package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"satay/pkg/logger"
)

var ErrSessionNotFound = errors.New("oturum bulunamadı")

// Data bir oturumun taşıdığı kimlik bilgisidir; guard'lar yalnızca
// user_id ve role alanlarını okur.
type Data struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

type Store interface {
	Create(ctx context.Context, data Data) (string, error)
	Get(ctx context.Context, sessionID string) (*Data, error)
	Destroy(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}

type RedisStore struct {
	client *redis.Client
	logger logger.Logger
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, logger logger.Logger, prefix string, ttl time.Duration) Store {
	return &RedisStore{
		client: client,
		logger: logger,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *RedisStore) makeKey(sessionID string) string {
	if s.prefix == "" {
		return sessionID
	}
	return fmt.Sprintf("%s:session:%s", s.prefix, sessionID)
}

func (s *RedisStore) Create(ctx context.Context, data Data) (string, error) {
	sessionID := uuid.NewString()

	payload, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("Oturum verisi serileştirilemedi", map[string]interface{}{"error": err.Error()})
		return "", fmt.Errorf("oturum oluşturulamadı: %w", err)
	}

	if err := s.client.Set(ctx, s.makeKey(sessionID), payload, s.ttl).Err(); err != nil {
		s.logger.Error("Oturum kaydedilemedi", map[string]interface{}{"error": err.Error()})
		return "", fmt.Errorf("oturum oluşturulamadı: %w", err)
	}

	s.logger.Debug("Oturum oluşturuldu", map[string]interface{}{"user_id": data.UserID, "role": data.Role})

	return sessionID, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Data, error) {
	payload, err := s.client.Get(ctx, s.makeKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("Oturum okunamadı", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("oturum okunamadı: %w", err)
	}

	var data Data
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		s.logger.Error("Oturum verisi çözümlenemedi", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("oturum okunamadı: %w", err)
	}

	return &data, nil
}

func (s *RedisStore) Destroy(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.makeKey(sessionID)).Err(); err != nil {
		s.logger.Error("Oturum silinemedi", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("oturum silinemedi: %w", err)
	}

	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
