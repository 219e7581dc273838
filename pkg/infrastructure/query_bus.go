package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mateusmacedo/go-bus-reservation/pkg/application"
	"github.com/mateusmacedo/go-bus-reservation/pkg/domain"
)

var (
	ErrNoQueryHandler = errors.New("no handler registered for query")
	ErrHandlerPanic   = errors.New("handler panicked")
)

type simpleQueryBus[Q domain.Query[D], D any, R any] struct {
	handlers map[string]application.QueryHandler[Q, D, R]
	mu       sync.RWMutex
	logger   application.AppLogger
}

func NewSimpleQueryBus[Q domain.Query[D], D any, R any](logger application.AppLogger) application.QueryBus[Q, D, R] {
	return &simpleQueryBus[Q, D, R]{
		handlers: make(map[string]application.QueryHandler[Q, D, R]),
		logger:   logger,
	}
}

func (bus *simpleQueryBus[Q, D, R]) RegisterHandler(queryName string, handler application.QueryHandler[Q, D, R]) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[queryName] = handler
}

// Dispatch executa o handler em uma goroutine e respeita o cancelamento do contexto.
func (bus *simpleQueryBus[Q, D, R]) Dispatch(ctx context.Context, query Q) (R, error) {
	bus.mu.RLock()
	handler, found := bus.handlers[query.QueryName()]
	bus.mu.RUnlock()

	var zero R
	if !found {
		application.LogError(ctx, bus.logger, "no handler registered for query", ErrNoQueryHandler, application.Fields{
			"query_name": query.QueryName(),
		})
		return zero, ErrNoQueryHandler
	}

	application.LogDebug(ctx, bus.logger, "dispatching query", application.Fields{
		"query_name": query.QueryName(),
	})

	resultChan := make(chan R, 1)
	errChan := make(chan error, 1)

	go func() {
		defer recoverHandler(ctx, bus.logger, query.QueryName(), errChan)
		result, err := handler.Handle(ctx, query)
		if err != nil {
			errChan <- err
			return
		}
		resultChan <- result
	}()

	select {
	case <-ctx.Done():
		application.LogError(ctx, bus.logger, "query interrupted", ctx.Err(), application.Fields{
			"query_name": query.QueryName(),
		})
		return zero, ctx.Err()
	case result := <-resultChan:
		return result, nil
	case err := <-errChan:
		return zero, err
	}
}

// recoverHandler converte em erro o pânico de um handler executado em goroutine.
func recoverHandler(ctx context.Context, logger application.AppLogger, name string, errChan chan<- error) {
	if r := recover(); r != nil {
		err := fmt.Errorf("%w: %s: %v", ErrHandlerPanic, name, r)
		application.LogError(ctx, logger, "handler panicked", err, application.Fields{"name": name})
		errChan <- err
	}
}
