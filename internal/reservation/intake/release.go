package intake

import (
	"context"

	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/domain"
)

// ReleaseFlow coleta veículo, assento e a confirmação explícita antes de liberar o assento.
type ReleaseFlow struct {
	flow
	registry  domain.VehicleRegistry
	vehicleID string
	seat      int
	occupant  string
	result    domain.Reservation
}

func NewReleaseFlow(registry domain.VehicleRegistry) *ReleaseFlow {
	f := &ReleaseFlow{registry: registry}
	f.steps = []step{
		{prompt: "Enter vehicle number to cancel a seat (or 0 to cancel)", apply: f.collectVehicle},
		{prompt: "Enter seat number to cancel (1-32) (or 0 to cancel)", apply: f.collectSeat},
		{prompt: "Confirm cancellation (y/n)", apply: f.collectConfirmation},
	}
	f.reset = func() {
		f.vehicleID = ""
		f.seat = 0
		f.occupant = ""
	}
	return f
}

func (f *ReleaseFlow) collectVehicle(ctx context.Context, input string) error {
	const op = "intake.release"
	if domain.IsSentinel(input) {
		return cancelled(op)
	}
	if _, ok := f.registry.FindByID(ctx, input); !ok {
		return &domain.OpError{Op: op, VehicleID: input, Err: domain.ErrNotFound}
	}
	f.vehicleID = input
	return nil
}

func (f *ReleaseFlow) collectSeat(ctx context.Context, input string) error {
	const op = "intake.release"
	n, err := ParseSeatNumber(input)
	if err != nil {
		return &domain.OpError{Op: op, VehicleID: f.vehicleID, Err: err}
	}

	vehicle, ok := f.registry.FindByID(ctx, f.vehicleID)
	if !ok {
		return &domain.OpError{Op: op, VehicleID: f.vehicleID, Err: domain.ErrNotFound}
	}
	seat, err := vehicle.Seat(n)
	if err != nil {
		return err
	}
	if seat.Vacant() {
		return &domain.OpError{Op: op, VehicleID: f.vehicleID, Seat: n, Err: domain.ErrAlreadyEmpty}
	}
	f.seat = n
	f.occupant = seat.Occupant
	return nil
}

func (f *ReleaseFlow) collectConfirmation(ctx context.Context, input string) error {
	result, err := f.registry.Release(ctx, f.vehicleID, f.seat, IsAffirmative(input))
	if err != nil {
		return err
	}
	f.result = result
	return nil
}

// Occupant é o passageiro do assento escolhido, para exibir no pedido de confirmação.
func (f *ReleaseFlow) Occupant() string {
	return f.occupant
}

func (f *ReleaseFlow) Result() (domain.Reservation, bool) {
	return f.result, f.status == Completed
}
