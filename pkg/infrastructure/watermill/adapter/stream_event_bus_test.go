package adapter

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/mateusmacedo/go-bus-reservation/pkg/application"
	"github.com/mateusmacedo/go-bus-reservation/pkg/domain"
	zapAdapter "github.com/mateusmacedo/go-bus-reservation/pkg/infrastructure/zaplogger/adapter"
)

type seatPayload struct {
	VehicleID string `json:"vehicleId"`
	Seat      int    `json:"seat"`
}

type seatEvent struct {
	name    string
	payload seatPayload
}

func (e seatEvent) EventName() string    { return e.name }
func (e seatEvent) Payload() seatPayload { return e.payload }

type eventHandler = application.EventHandlerFunc[domain.Event[seatPayload], seatPayload]

func newTestBus(t *testing.T) *StreamEventBus[domain.Event[seatPayload], seatPayload] {
	t.Helper()
	appLogger := zapAdapter.NewZapAppLoggerFrom(zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel)))
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, NewWatermillLoggerAdapter(appLogger))
	t.Cleanup(func() { _ = pubSub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewStreamEventBus[domain.Event[seatPayload], seatPayload](ctx, pubSub, pubSub, appLogger)
}

func waitFor(t *testing.T, received <-chan seatPayload) seatPayload {
	t.Helper()
	select {
	case p := <-received:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return seatPayload{}
}

func TestStreamEventBus_DeliversPayloadToEveryHandler(t *testing.T) {
	bus := newTestBus(t)

	first := make(chan seatPayload, 1)
	second := make(chan seatPayload, 1)
	bus.RegisterHandler("SeatReserved", eventHandler(func(_ context.Context, e domain.Event[seatPayload]) error {
		first <- e.Payload()
		return nil
	}))
	bus.RegisterHandler("SeatReserved", eventHandler(func(_ context.Context, e domain.Event[seatPayload]) error {
		if e.EventName() != "SeatReserved" {
			t.Errorf("unexpected event name %q", e.EventName())
		}
		second <- e.Payload()
		return nil
	}))

	want := seatPayload{VehicleID: "B1", Seat: 5}
	if err := bus.Publish(context.Background(), seatEvent{name: "SeatReserved", payload: want}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := waitFor(t, first); got != want {
		t.Fatalf("first handler: expected %+v, got %+v", want, got)
	}
	if got := waitFor(t, second); got != want {
		t.Fatalf("second handler: expected %+v, got %+v", want, got)
	}

	select {
	case extra := <-first:
		t.Fatalf("event delivered twice: %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStreamEventBus_RedeliversAfterHandlerFailure(t *testing.T) {
	bus := newTestBus(t)

	var calls int32
	received := make(chan seatPayload, 1)
	bus.RegisterHandler("SeatReleased", eventHandler(func(_ context.Context, e domain.Event[seatPayload]) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			return errors.New("temporary failure")
		}
		received <- e.Payload()
		return nil
	}))

	if err := bus.Publish(context.Background(), seatEvent{name: "SeatReleased", payload: seatPayload{VehicleID: "B1", Seat: 9}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := waitFor(t, received); got.Seat != 9 {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected 2 calls, got %d", n)
	}
}

func TestStreamEventBus_PublishWithoutHandlers(t *testing.T) {
	bus := newTestBus(t)
	if err := bus.Publish(context.Background(), seatEvent{name: "VehicleRegistered"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
