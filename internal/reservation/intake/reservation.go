package intake

import (
	"context"

	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/domain"
)

// ReservationFlow coleta veículo, assento e passageiro. Cada campo é validado assim que chega:
// um assento ocupado é recusado antes de o nome do passageiro ser pedido.
type ReservationFlow struct {
	flow
	registry  domain.VehicleRegistry
	vehicleID string
	seat      int
	result    domain.Reservation
}

func NewReservationFlow(registry domain.VehicleRegistry) *ReservationFlow {
	f := &ReservationFlow{registry: registry}
	f.steps = []step{
		{prompt: "Enter vehicle number to reserve a seat (or 0 to cancel)", apply: f.collectVehicle},
		{prompt: "Enter seat number (1-32) (or 0 to cancel)", apply: f.collectSeat},
		{prompt: "Enter passenger's name (or 0 to cancel)", apply: f.collectPassenger},
	}
	f.reset = func() {
		f.vehicleID = ""
		f.seat = 0
	}
	return f
}

func (f *ReservationFlow) collectVehicle(ctx context.Context, input string) error {
	const op = "intake.reserve"
	if domain.IsSentinel(input) {
		return cancelled(op)
	}
	if _, ok := f.registry.FindByID(ctx, input); !ok {
		return &domain.OpError{Op: op, VehicleID: input, Err: domain.ErrNotFound}
	}
	f.vehicleID = input
	return nil
}

func (f *ReservationFlow) collectSeat(ctx context.Context, input string) error {
	const op = "intake.reserve"
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
	if !seat.Vacant() {
		return &domain.OpError{Op: op, VehicleID: f.vehicleID, Seat: n, Occupant: seat.Occupant, Err: domain.ErrAlreadyReserved}
	}
	f.seat = n
	return nil
}

func (f *ReservationFlow) collectPassenger(ctx context.Context, input string) error {
	if domain.IsSentinel(input) {
		return cancelled("intake.reserve")
	}
	result, err := f.registry.Reserve(ctx, f.vehicleID, f.seat, input)
	if err != nil {
		return err
	}
	f.result = result
	return nil
}

// Result devolve o assento reservado e a tarifa quando o fluxo terminou com sucesso.
func (f *ReservationFlow) Result() (domain.Reservation, bool) {
	return f.result, f.status == Completed
}
