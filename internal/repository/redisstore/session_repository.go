package redisstore

import (
	"context"
	"encoding/json"

	"product-guide-be/internal/pkg/logger"
	"product-guide-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "chat:session:"

// SessionRepository keeps sessions in Redis so several server
// instances can share them. Values are stored as JSON without a TTL.
type SessionRepository struct {
	client *redis.Client
	logger logger.ILogger
}

func NewSessionRepository(client *redis.Client, logger logger.ILogger) *SessionRepository {
	return &SessionRepository{
		client: client,
		logger: logger,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	payload, err := json.Marshal(session)
	if err != nil {
		r.logger.Error("RedisSessionRepository", "Failed to marshal session", map[string]interface{}{"session_id": session.ID, "error": err.Error()})
		return
	}
	if err := r.client.Set(context.Background(), sessionKeyPrefix+session.ID, payload, 0).Err(); err != nil {
		r.logger.Error("RedisSessionRepository", "Failed to save session", map[string]interface{}{"session_id": session.ID, "error": err.Error()})
	}
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	payload, err := r.client.Get(context.Background(), sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Error("RedisSessionRepository", "Failed to read session", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
		}
		return nil, false
	}

	var session store.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		r.logger.Error("RedisSessionRepository", "Failed to unmarshal session", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
		return nil, false
	}
	return &session, true
}

func (r *SessionRepository) Delete(sessionID string) {
	if err := r.client.Del(context.Background(), sessionKeyPrefix+sessionID).Err(); err != nil {
		r.logger.Error("RedisSessionRepository", "Failed to delete session", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
	}
}
