package intake

import (
	"context"

	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/domain"
)

// RegistrationFlow coleta, em ordem, ID, motorista, chegada, partida, origem e destino.
// O veículo só entra no registro quando o último campo é aceito.
type RegistrationFlow struct {
	flow
	registry domain.VehicleRegistry
	details  domain.Details
	vehicle  *domain.Vehicle
}

func NewRegistrationFlow(registry domain.VehicleRegistry) *RegistrationFlow {
	f := &RegistrationFlow{registry: registry}
	f.steps = []step{
		{prompt: "Enter vehicle number (or 0 to cancel)", apply: f.collectID},
		{prompt: "Enter driver's name (or 0 to cancel)", apply: f.field(&f.details.Driver)},
		{prompt: "Enter arrival time (or 0 to cancel)", apply: f.field(&f.details.ArrivalTime)},
		{prompt: "Enter departure time (or 0 to cancel)", apply: f.field(&f.details.DepartureTime)},
		{prompt: "Enter origin (or 0 to cancel)", apply: f.field(&f.details.Origin)},
		{prompt: "Enter destination (or 0 to cancel)", apply: f.collectDestination},
	}
	f.reset = func() { f.details = domain.Details{} }
	return f
}

func (f *RegistrationFlow) collectID(ctx context.Context, input string) error {
	if domain.IsSentinel(input) {
		return cancelled("intake.register")
	}
	if _, exists := f.registry.FindByID(ctx, input); exists {
		return &domain.OpError{Op: "intake.register", VehicleID: input, Err: domain.ErrDuplicate}
	}
	f.details.ID = input
	return nil
}

func (f *RegistrationFlow) field(target *string) func(context.Context, string) error {
	return func(_ context.Context, input string) error {
		if domain.IsSentinel(input) {
			return cancelled("intake.register")
		}
		*target = input
		return nil
	}
}

func (f *RegistrationFlow) collectDestination(ctx context.Context, input string) error {
	if err := f.field(&f.details.Destination)(ctx, input); err != nil {
		return err
	}
	vehicle, err := f.registry.Register(ctx, f.details)
	if err != nil {
		return err
	}
	f.vehicle = vehicle
	return nil
}

// Vehicle devolve o veículo cadastrado quando o fluxo terminou com sucesso.
func (f *RegistrationFlow) Vehicle() (*domain.Vehicle, bool) {
	return f.vehicle, f.status == Completed
}

// Collected expõe os campos aceitos até agora; vazio depois de um cancelamento.
func (f *RegistrationFlow) Collected() domain.Details {
	return f.details
}

func cancelled(op string) error {
	return &domain.OpError{Op: op, Err: domain.ErrCancelled}
}
