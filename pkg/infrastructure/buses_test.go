package infrastructure

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/mateusmacedo/go-bus-reservation/pkg/application"
	"github.com/mateusmacedo/go-bus-reservation/pkg/domain"
	zapAdapter "github.com/mateusmacedo/go-bus-reservation/pkg/infrastructure/zaplogger/adapter"
)

type message struct {
	name string
	data string
}

func (m message) CommandName() string { return m.name }
func (m message) QueryName() string   { return m.name }
func (m message) EventName() string   { return m.name }
func (m message) Payload() string     { return m.data }

func testLogger(t *testing.T) application.AppLogger {
	t.Helper()
	return zapAdapter.NewZapAppLoggerFrom(zaptest.NewLogger(t))
}

func TestSimpleCommandBus(t *testing.T) {
	bus := NewSimpleCommandBus[domain.Command[string], string](testLogger(t))
	ctx := context.Background()

	if err := bus.Dispatch(ctx, message{name: "Reserve"}); !errors.Is(err, ErrNoCommandHandler) {
		t.Fatalf("expected ErrNoCommandHandler, got %v", err)
	}

	var got string
	bus.RegisterHandler("Reserve", application.CommandHandlerFunc[domain.Command[string], string](
		func(_ context.Context, c domain.Command[string]) error {
			got = c.Payload()
			return nil
		}))

	if err := bus.Dispatch(ctx, message{name: "Reserve", data: "B1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "B1" {
		t.Fatalf("handler not called with payload, got %q", got)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := bus.Dispatch(cancelled, message{name: "Reserve"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSimpleQueryBus(t *testing.T) {
	tests := []struct {
		name    string
		handler func(context.Context, domain.Query[string]) (int, error)
		ctx     func() (context.Context, context.CancelFunc)
		want    int
		wantErr error
	}{
		{
			name:    "result",
			handler: func(_ context.Context, q domain.Query[string]) (int, error) { return len(q.Payload()), nil },
			want:    5,
		},
		{
			name:    "handler error",
			handler: func(context.Context, domain.Query[string]) (int, error) { return 0, errors.New("boom") },
			wantErr: errors.New("boom"),
		},
		{
			name:    "panic becomes error",
			handler: func(context.Context, domain.Query[string]) (int, error) { panic("bad seat") },
			wantErr: ErrHandlerPanic,
		},
		{
			name: "timeout",
			handler: func(ctx context.Context, _ domain.Query[string]) (int, error) {
				<-ctx.Done()
				time.Sleep(10 * time.Millisecond)
				return 1, nil
			},
			ctx:     func() (context.Context, context.CancelFunc) { return context.WithTimeout(context.Background(), 20*time.Millisecond) },
			wantErr: context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := NewSimpleQueryBus[domain.Query[string], string, int](testLogger(t))
			bus.RegisterHandler("Find", application.QueryHandlerFunc[domain.Query[string], string, int](tt.handler))

			ctx, cancel := context.Background(), context.CancelFunc(func() {})
			if tt.ctx != nil {
				ctx, cancel = tt.ctx()
			}
			defer cancel()

			got, err := bus.Dispatch(ctx, message{name: "Find", data: "Delhi"})
			switch {
			case tt.wantErr == nil && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tt.wantErr != nil && err == nil:
				t.Fatalf("expected error %v", tt.wantErr)
			case tt.wantErr != nil && !errors.Is(err, tt.wantErr) && err.Error() != tt.wantErr.Error():
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestSimpleEventBus_JoinsHandlerErrors(t *testing.T) {
	bus := NewSimpleEventBus[domain.Event[string], string](testLogger(t))
	ctx := context.Background()

	if err := bus.Publish(ctx, message{name: "SeatReserved"}); err != nil {
		t.Fatalf("publish without handlers should succeed, got %v", err)
	}

	errFirst := errors.New("first failed")
	calls := make(chan string, 3)
	bus.RegisterHandler("SeatReserved", application.EventHandlerFunc[domain.Event[string], string](
		func(_ context.Context, e domain.Event[string]) error {
			calls <- "ok"
			return nil
		}))
	bus.RegisterHandler("SeatReserved", application.EventHandlerFunc[domain.Event[string], string](
		func(context.Context, domain.Event[string]) error {
			calls <- "fail"
			return errFirst
		}))
	bus.RegisterHandler("SeatReserved", application.EventHandlerFunc[domain.Event[string], string](
		func(context.Context, domain.Event[string]) error {
			calls <- "panic"
			panic("ledger broke")
		}))

	err := bus.Publish(ctx, message{name: "SeatReserved", data: "B1"})
	if !errors.Is(err, errFirst) || !errors.Is(err, ErrHandlerPanic) {
		t.Fatalf("expected joined errors, got %v", err)
	}
	if len(calls) != 3 {
		t.Fatalf("expected every handler to run, got %d", len(calls))
	}
}
