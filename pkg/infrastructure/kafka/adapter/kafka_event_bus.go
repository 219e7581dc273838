package adapter

import (
	"context"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"

	"github.com/mateusmacedo/go-bus-reservation/pkg/application"
	"github.com/mateusmacedo/go-bus-reservation/pkg/domain"
	watermillAdapter "github.com/mateusmacedo/go-bus-reservation/pkg/infrastructure/watermill/adapter"
)

const clientID = "go-bus-reservation"

// NewSaramaSubscriberConfig lê os tópicos desde o início para que o primeiro consumidor
// do grupo não perca eventos publicados antes da assinatura.
func NewSaramaSubscriberConfig() *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V1_0_0_0
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.ClientID = clientID
	return saramaConfig
}

func NewKafkaPubSub(brokers []string, consumerGroup string, logger watermill.LoggerAdapter) (*kafka.Publisher, *kafka.Subscriber, error) {
	marshaler := kafka.DefaultMarshaler{}

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   brokers,
		Marshaler: marshaler,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka publisher: %w", err)
	}

	subscriber, err := kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:               brokers,
		Unmarshaler:           marshaler,
		ConsumerGroup:         consumerGroup,
		OverwriteSaramaConfig: NewSaramaSubscriberConfig(),
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     1,
			ReplicationFactor: 1,
		},
	}, logger)
	if err != nil {
		_ = publisher.Close()
		return nil, nil, fmt.Errorf("kafka subscriber: %w", err)
	}
	return publisher, subscriber, nil
}

// NewKafkaEventBus inicializa os tópicos informados antes de criar o barramento.
func NewKafkaEventBus[E domain.Event[D], D any](ctx context.Context, publisher *kafka.Publisher, subscriber *kafka.Subscriber, logger application.AppLogger, topics ...string) (*watermillAdapter.StreamEventBus[E, D], error) {
	for _, topic := range topics {
		if err := subscriber.SubscribeInitialize(topic); err != nil {
			return nil, fmt.Errorf("initialize kafka topic %q: %w", topic, err)
		}
	}
	return watermillAdapter.NewStreamEventBus[E, D](ctx, publisher, subscriber, logger), nil
}
