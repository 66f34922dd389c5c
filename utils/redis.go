package utils

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ecfrontend/models"

	"github.com/redis/go-redis/v9"
)

// OpenRedisPool initializes a Redis connection pool
func OpenRedisPool(dsn string) *redis.Client {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		log.Fatalf("Failed to parse Redis DSN: %v", err)
	}

	// Configure connection pooling
	opt.PoolSize = 100
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err = client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to ping redis db 0: %v", err)
	}

	return client
}

// RedisStore keeps each session as a hash under session:<token> with a TTL.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *RedisStore) Save(ctx context.Context, session models.Session, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	userJSON := ""
	if session.User != nil {
		b, err := json.Marshal(session.User)
		if err != nil {
			return err
		}
		userJSON = string(b)
	}

	sessionMap := map[string]any{
		"access_token":  session.AccessToken,
		"user":          userJSON,
		"flash":         session.Flash,
		"created_at":    session.CreatedAt,
		"expires_at":    session.ExpiresAt,
		"last_activity": session.LastActivity,
		"user_agent":    session.UserAgent,
		"ip_address":    session.IPAddress,
	}

	key := sessionKey(session.Token)
	if err := s.Client.HSet(ctx, key, sessionMap).Err(); err != nil {
		return err
	}

	return s.Client.Expire(ctx, key, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := s.Client.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil || len(data) == 0 {
		return nil, ErrSessionNotFound
	}

	session := &models.Session{
		Token:        token,
		AccessToken:  data["access_token"],
		Flash:        data["flash"],
		CreatedAt:    data["created_at"],
		ExpiresAt:    data["expires_at"],
		LastActivity: data["last_activity"],
		UserAgent:    data["user_agent"],
		IPAddress:    data["ip_address"],
	}
	if data["user"] != "" {
		var user models.User
		if err := json.Unmarshal([]byte(data["user"]), &user); err == nil {
			session.User = &user
		}
	}

	return session, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.Client.Del(ctx, sessionKey(token)).Err()
}
