package adapter

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"

	"github.com/mateusmacedo/go-bus-reservation/pkg/application"
	"github.com/mateusmacedo/go-bus-reservation/pkg/domain"
	watermillAdapter "github.com/mateusmacedo/go-bus-reservation/pkg/infrastructure/watermill/adapter"
)

// NewRedisPubSub cria publisher e subscriber sobre Redis Streams. Cada consumer do grupo
// recebe uma parte das mensagens; instâncias diferentes devem usar grupos diferentes para
// que todas vejam todos os eventos.
func NewRedisPubSub(client redis.UniversalClient, consumerGroup string, logger watermill.LoggerAdapter) (*redisstream.Publisher, *redisstream.Subscriber, error) {
	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: client,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("redis publisher: %w", err)
	}

	subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
		Client:        client,
		ConsumerGroup: consumerGroup,
		Consumer:      watermill.NewShortUUID(),
	}, logger)
	if err != nil {
		_ = publisher.Close()
		return nil, nil, fmt.Errorf("redis subscriber: %w", err)
	}
	return publisher, subscriber, nil
}

func NewRedisEventBus[E domain.Event[D], D any](ctx context.Context, publisher *redisstream.Publisher, subscriber *redisstream.Subscriber, logger application.AppLogger) *watermillAdapter.StreamEventBus[E, D] {
	return watermillAdapter.NewStreamEventBus[E, D](ctx, publisher, subscriber, logger)
}
