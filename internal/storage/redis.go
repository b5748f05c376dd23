package storage

import (
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/config"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
)

// PublishEvent pushes a realtime event onto the shared pub/sub channel.
func (s *Service) PublishEvent(ev models.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, EventsChannel, payload).Err()
}

// SubscribeEvents subscribes to the shared event channel. The notify hub
// consumes the subscription and fans events out to its local clients.
func (s *Service) SubscribeEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, EventsChannel)
}

// SaveResetToken stores a password-reset token with its TTL.
func (s *Service) SaveResetToken(token, accountID string) error {
	return s.Redis.Set(s.Ctx, "reset:"+token, accountID, config.ResetTokenTTL).Err()
}

// ConsumeResetToken returns the account ID a token was issued for and deletes
// it, so a token can be used at most once. Returns "" for unknown or expired
// tokens.
func (s *Service) ConsumeResetToken(token string) (string, error) {
	key := "reset:" + token
	accountID, err := s.Redis.Get(s.Ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	s.Redis.Del(s.Ctx, key)
	return accountID, nil
}
