package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"github.com/mateusmacedo/go-bus-reservation/internal/config"
	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/application"
	pkgApp "github.com/mateusmacedo/go-bus-reservation/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-bus-reservation/pkg/domain"
	pkgInfra "github.com/mateusmacedo/go-bus-reservation/pkg/infrastructure"
	channelsAdapter "github.com/mateusmacedo/go-bus-reservation/pkg/infrastructure/channels/adapter"
	kafkaAdapter "github.com/mateusmacedo/go-bus-reservation/pkg/infrastructure/kafka/adapter"
	redisAdapter "github.com/mateusmacedo/go-bus-reservation/pkg/infrastructure/redis/adapter"
	watermillLogAdapter "github.com/mateusmacedo/go-bus-reservation/pkg/infrastructure/watermill/adapter"
)

type closer interface {
	Close() error
}

// NewReservationEventBus monta o barramento de eventos escolhido em EVENT_BUS.
// A função devolvida fecha publishers, subscribers e clientes criados aqui.
func NewReservationEventBus(ctx context.Context, cfg config.EventBusConfig, logger pkgApp.AppLogger) (application.ReservationEvents, func() error, error) {
	type (
		event = pkgDomain.Event[application.ReservationEventData]
		data  = application.ReservationEventData
	)

	wmLogger := watermillLogAdapter.NewWatermillLoggerAdapter(logger)
	noop := func() error { return nil }

	switch cfg.Kind {
	case config.EventBusMemory:
		return pkgInfra.NewSimpleEventBus[event, data](logger), noop, nil

	case config.EventBusChannel:
		pubSub := channelsAdapter.NewPubSub(wmLogger)
		return channelsAdapter.NewWatermillEventBus[event, data](ctx, pubSub, logger), closeAll(pubSub), nil

	case config.EventBusRedis:
		client, err := redisAdapter.NewRedisClient(ctx, redisAdapter.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		publisher, subscriber, err := redisAdapter.NewRedisPubSub(client, cfg.ConsumerGroup, wmLogger)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		bus := redisAdapter.NewRedisEventBus[event, data](ctx, publisher, subscriber, logger)
		return bus, closeAll(subscriber, publisher, client), nil

	case config.EventBusKafka:
		publisher, subscriber, err := kafkaAdapter.NewKafkaPubSub(cfg.KafkaBrokers, cfg.ConsumerGroup, wmLogger)
		if err != nil {
			return nil, nil, err
		}
		bus, err := kafkaAdapter.NewKafkaEventBus[event, data](ctx, publisher, subscriber, logger, application.EventNames()...)
		if err != nil {
			_ = closeAll(subscriber, publisher)()
			return nil, nil, err
		}
		return bus, closeAll(subscriber, publisher), nil
	}

	return nil, nil, fmt.Errorf("unknown event bus %q", cfg.Kind)
}

func closeAll(closers ...closer) func() error {
	return func() error {
		var errs []error
		for _, c := range closers {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
