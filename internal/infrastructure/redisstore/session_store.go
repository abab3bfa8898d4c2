// Package redisstore implementa el store de sesiones de servidor sobre Redis.
// Cada sesión es una clave session:{id} -> user id con TTL; la cookie del
// cliente solo transporta el id.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/dfquintero/mercado-api/internal/application/ports"
	"github.com/dfquintero/mercado-api/pkg/config"
)

var _ ports.SessionStore = (*SessionStore)(nil)

const keyPrefix = "session:"

// SessionStore implementación de ports.SessionStore sobre Redis.
type SessionStore struct {
	client *redis.Client
}

// New conecta a Redis y verifica la conexión con un ping.
func New(ctx context.Context, cfg config.RedisConfig) (*SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &SessionStore{client: client}, nil
}

// Close cierra la conexión a Redis.
func (s *SessionStore) Close() error {
	return s.client.Close()
}

// Create genera un session id nuevo y lo asocia al usuario con TTL.
func (s *SessionStore) Create(userID string, ttl time.Duration) (string, error) {
	sessionID := uuid.New().String()
	if err := s.client.Set(context.Background(), keyPrefix+sessionID, userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("crear sesión: %w", err)
	}
	return sessionID, nil
}

// Get devuelve el user id de la sesión, o "" si no existe o ya expiró.
func (s *SessionStore) Get(sessionID string) (string, error) {
	userID, err := s.client.Get(context.Background(), keyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("leer sesión: %w", err)
	}
	return userID, nil
}

// Delete elimina la sesión. Borrar una clave inexistente no es error.
func (s *SessionStore) Delete(sessionID string) error {
	if err := s.client.Del(context.Background(), keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}
