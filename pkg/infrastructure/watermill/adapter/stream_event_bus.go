package adapter

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/mateusmacedo/go-bus-reservation/pkg/application"
	"github.com/mateusmacedo/go-bus-reservation/pkg/domain"
)

const eventNameMetadata = "event_name"

// StreamEventBus publica eventos em um tópico por nome de evento e os entrega aos
// handlers a partir da assinatura do tópico. Funciona com qualquer Pub/Sub do watermill
// (gochannel, redisstream, kafka).
type StreamEventBus[E domain.Event[D], D any] struct {
	ctx        context.Context
	publisher  message.Publisher
	subscriber message.Subscriber
	handlers   map[string][]application.EventHandler[E, D]
	subscribed map[string]bool
	mu         sync.RWMutex
	logger     application.AppLogger
}

// NewStreamEventBus cria o barramento; ctx limita a vida das assinaturas.
func NewStreamEventBus[E domain.Event[D], D any](ctx context.Context, publisher message.Publisher, subscriber message.Subscriber, logger application.AppLogger) *StreamEventBus[E, D] {
	return &StreamEventBus[E, D]{
		ctx:        ctx,
		publisher:  publisher,
		subscriber: subscriber,
		handlers:   make(map[string][]application.EventHandler[E, D]),
		subscribed: make(map[string]bool),
		logger:     logger,
	}
}

// RegisterHandler assina o tópico na primeira chamada para cada evento, antes de retornar,
// para que nenhuma publicação posterior seja perdida.
func (bus *StreamEventBus[E, D]) RegisterHandler(eventName string, handler application.EventHandler[E, D]) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
	if bus.subscribed[eventName] {
		return
	}

	messages, err := bus.subscriber.Subscribe(bus.ctx, eventName)
	if err != nil {
		application.LogError(bus.ctx, bus.logger, "error subscribing to event", err, application.Fields{
			"event_name": eventName,
		})
		return
	}
	bus.subscribed[eventName] = true

	go bus.consume(eventName, messages)
}

func (bus *StreamEventBus[E, D]) consume(eventName string, messages <-chan *message.Message) {
	for msg := range messages {
		bus.handleMessage(eventName, msg)
	}
}

func (bus *StreamEventBus[E, D]) handleMessage(eventName string, msg *message.Message) {
	ctx := bus.ctx

	payload, err := application.UnmarshalPayload[D](msg.Payload)
	if err != nil {
		application.LogError(ctx, bus.logger, "error unmarshalling event payload", err, application.Fields{
			"event_name": eventName,
			"message_id": msg.UUID,
		})
		// payload inválido nunca será processado; reentregar só repetiria a falha
		msg.Ack()
		return
	}

	typedEvent, ok := interface{}(&dynamicEvent[D]{eventName: eventName, payload: payload}).(E)
	if !ok {
		application.LogError(ctx, bus.logger, "error asserting event type", nil, application.Fields{
			"event_name": eventName,
		})
		msg.Nack()
		return
	}

	bus.mu.RLock()
	handlers := append([]application.EventHandler[E, D](nil), bus.handlers[eventName]...)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler.Handle(ctx, typedEvent); err != nil {
			application.LogError(ctx, bus.logger, "error handling event", err, application.Fields{
				"event_name": eventName,
				"message_id": msg.UUID,
			})
			msg.Nack()
			return
		}
	}

	application.LogDebug(ctx, bus.logger, "event handled", application.Fields{
		"event_name": eventName,
		"message_id": msg.UUID,
	})
	msg.Ack()
}

func (bus *StreamEventBus[E, D]) Publish(ctx context.Context, event E) error {
	eventName := event.EventName()

	payload, err := application.MarshalPayload(event.Payload())
	if err != nil {
		application.LogError(ctx, bus.logger, "error marshalling event payload", err, application.Fields{
			"event_name": eventName,
		})
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(eventNameMetadata, eventName)
	if err := bus.publisher.Publish(eventName, msg); err != nil {
		application.LogError(ctx, bus.logger, "error publishing event", err, application.Fields{
			"event_name": eventName,
		})
		return err
	}

	application.LogDebug(ctx, bus.logger, "event published", application.Fields{
		"event_name": eventName,
		"message_id": msg.UUID,
	})
	return nil
}

type dynamicEvent[D any] struct {
	eventName string
	payload   D
}

func (e *dynamicEvent[D]) EventName() string {
	return e.eventName
}

func (e *dynamicEvent[D]) Payload() D {
	return e.payload
}
