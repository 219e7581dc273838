package adapter

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/mateusmacedo/go-bus-reservation/pkg/application"
	"github.com/mateusmacedo/go-bus-reservation/pkg/domain"
	watermillAdapter "github.com/mateusmacedo/go-bus-reservation/pkg/infrastructure/watermill/adapter"
)

const outputChannelBuffer = 64

// NewPubSub cria o Pub/Sub em memória do watermill.
func NewPubSub(logger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: outputChannelBuffer}, logger)
}

// NewWatermillEventBus entrega os eventos de forma assíncrona pelo gochannel, no mesmo processo.
func NewWatermillEventBus[E domain.Event[D], D any](ctx context.Context, pubSub *gochannel.GoChannel, logger application.AppLogger) *watermillAdapter.StreamEventBus[E, D] {
	return watermillAdapter.NewStreamEventBus[E, D](ctx, pubSub, pubSub, logger)
}
