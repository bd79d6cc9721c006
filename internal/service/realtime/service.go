package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
)

// Publisher is the side the notification service needs: push a notification
// toward any connected clients. Delivery is best-effort.
type Publisher interface {
	PublishNotification(ctx context.Context, notif *domain.Notification) error
}

// Service fans notifications out over Redis pub/sub, one channel per
// recipient. Subscribers receive an infinite stream that ends when their
// context is cancelled.
type Service interface {
	Publisher
	Subscribe(ctx context.Context, userID uuid.UUID) (<-chan domain.Notification, error)
}

type service struct {
	redis *redis.Client
}

func NewService(redisClient *redis.Client) Service {
	return &service{redis: redisClient}
}

func channelFor(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:%s", userID)
}

func (s *service) PublishNotification(ctx context.Context, notif *domain.Notification) error {
	if s.redis == nil {
		return nil
	}

	payload, err := json.Marshal(notif)
	if err != nil {
		return err
	}

	return s.redis.Publish(ctx, channelFor(notif.UserID), payload).Err()
}

func (s *service) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan domain.Notification, error) {
	pubsub := s.redis.Subscribe(ctx, channelFor(userID))

	// Confirm the subscription before handing back the stream.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	out := make(chan domain.Notification)

	go func() {
		defer close(out)
		defer func() { _ = pubsub.Close() }()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				var notif domain.Notification
				if err := json.Unmarshal([]byte(msg.Payload), &notif); err != nil {
					continue
				}
				select {
				case out <- notif:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
