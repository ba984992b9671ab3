package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"matchquiz_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
)

// TakeSessionRepository 答题会话存 Redis，带 TTL：
// 用户中途离开不提交，会话过期自动丢弃，不会留下答题记录。
type TakeSessionRepository struct {
	Redis *redis.Client
	TTL   time.Duration
	ctx   context.Context
}

func NewTakeSessionRepository(rdb *redis.Client, ttl time.Duration) *TakeSessionRepository {
	return &TakeSessionRepository{
		Redis: rdb,
		TTL:   ttl,
		ctx:   context.Background(),
	}
}

func sessionKey(id string) string {
	return fmt.Sprintf("take_session:%s", id)
}

func (r *TakeSessionRepository) Save(session *model.TakeSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.Redis.Set(r.ctx, sessionKey(session.ID), data, r.TTL).Err()
}

func (r *TakeSessionRepository) Get(id string) (*model.TakeSession, error) {
	data, err := r.Redis.Get(r.ctx, sessionKey(id)).Bytes()
	if err != nil {
		return nil, err
	}
	var session model.TakeSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *TakeSessionRepository) Delete(id string) error {
	return r.Redis.Del(r.ctx, sessionKey(id)).Err()
}
