package infrastructure

import (
	"context"
	"errors"
	"sync"

	"github.com/mateusmacedo/go-bus-reservation/pkg/application"
	"github.com/mateusmacedo/go-bus-reservation/pkg/domain"
)

// simpleEventBus entrega cada evento a todos os handlers registrados, um por goroutine.
type simpleEventBus[E domain.Event[T], T any] struct {
	handlers map[string][]application.EventHandler[E, T]
	mu       sync.RWMutex
	logger   application.AppLogger
}

func NewSimpleEventBus[E domain.Event[T], T any](logger application.AppLogger) application.EventBus[E, T] {
	return &simpleEventBus[E, T]{
		handlers: make(map[string][]application.EventHandler[E, T]),
		logger:   logger,
	}
}

func (bus *simpleEventBus[E, T]) RegisterHandler(eventName string, handler application.EventHandler[E, T]) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
}

// Publish bloqueia até que todos os handlers terminem ou o contexto seja cancelado.
func (bus *simpleEventBus[E, T]) Publish(ctx context.Context, event E) error {
	eventName := event.EventName()

	bus.mu.RLock()
	handlers := append([]application.EventHandler[E, T](nil), bus.handlers[eventName]...)
	bus.mu.RUnlock()

	if len(handlers) == 0 {
		application.LogDebug(ctx, bus.logger, "no handler registered for event", application.Fields{
			"event_name": eventName,
		})
		return nil
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(handlers))
	done := make(chan struct{})

	for _, handler := range handlers {
		wg.Add(1)
		go func(h application.EventHandler[E, T]) {
			defer wg.Done()
			defer recoverHandler(ctx, bus.logger, eventName, errChan)
			if err := h.Handle(ctx, event); err != nil {
				errChan <- err
			}
		}(handler)
	}

	go func() {
		wg.Wait()
		close(errChan)
		close(done)
	}()

	select {
	case <-ctx.Done():
		application.LogError(ctx, bus.logger, "event publication interrupted", ctx.Err(), application.Fields{
			"event_name": eventName,
		})
		return ctx.Err()
	case <-done:
		if err := bus.collectErrors(errChan); err != nil {
			application.LogError(ctx, bus.logger, "error handling event", err, application.Fields{
				"event_name": eventName,
			})
			return err
		}
		application.LogDebug(ctx, bus.logger, "event published", application.Fields{
			"event_name": eventName,
		})
		return nil
	}
}

func (bus *simpleEventBus[E, T]) collectErrors(errChan <-chan error) error {
	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
