package infrastructure

import (
	"context"
	"sync"

	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/domain"
	"github.com/mateusmacedo/go-bus-reservation/pkg/application"
)

// InMemoryVehicleRegistry mantém os veículos em memória, na ordem de cadastro.
// O RWMutex serializa os cadastros; as mutações de assento são protegidas pelo próprio veículo.
type InMemoryVehicleRegistry struct {
	mu       sync.RWMutex
	vehicles []*domain.Vehicle
	logger   application.AppLogger
}

func NewInMemoryVehicleRegistry(logger application.AppLogger) *InMemoryVehicleRegistry {
	return &InMemoryVehicleRegistry{
		logger: logger,
	}
}

func (r *InMemoryVehicleRegistry) Register(ctx context.Context, details domain.Details) (*domain.Vehicle, error) {
	vehicle, err := domain.NewVehicle(details)
	if err != nil {
		application.LogInfo(ctx, r.logger, "vehicle registration cancelled", application.Fields{
			"vehicle_id": details.ID,
		})
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(details.ID) != nil {
		application.LogInfo(ctx, r.logger, "vehicle already registered", application.Fields{
			"vehicle_id": details.ID,
		})
		return nil, &domain.OpError{Op: "registry.register", VehicleID: details.ID, Err: domain.ErrDuplicate}
	}

	r.vehicles = append(r.vehicles, vehicle)
	application.LogInfo(ctx, r.logger, "vehicle registered", application.Fields{
		"vehicle_id": details.ID,
		"route":      vehicle.Summary().Route,
	})
	return vehicle, nil
}

func (r *InMemoryVehicleRegistry) FindByID(ctx context.Context, id string) (*domain.Vehicle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vehicle := r.find(id)
	if vehicle == nil {
		application.LogDebug(ctx, r.logger, "vehicle not found", application.Fields{"vehicle_id": id})
		return nil, false
	}
	return vehicle, true
}

// find faz a busca linear pelo primeiro veículo com o ID; o chamador deve segurar r.mu.
func (r *InMemoryVehicleRegistry) find(id string) *domain.Vehicle {
	for _, vehicle := range r.vehicles {
		if vehicle.ID() == id {
			return vehicle
		}
	}
	return nil
}

func (r *InMemoryVehicleRegistry) ListAll(ctx context.Context) ([]domain.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.vehicles) == 0 {
		return nil, &domain.OpError{Op: "registry.list", Err: domain.ErrNoVehicles}
	}

	summaries := make([]domain.Summary, 0, len(r.vehicles))
	for _, vehicle := range r.vehicles {
		summaries = append(summaries, vehicle.Summary())
	}
	return summaries, nil
}

// SearchByRoute diferencia "nenhum veículo cadastrado" de "nenhum veículo na rota".
func (r *InMemoryVehicleRegistry) SearchByRoute(ctx context.Context, origin, destination string) ([]domain.Summary, error) {
	const op = "registry.search"

	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.vehicles) == 0 {
		return nil, &domain.OpError{Op: op, Err: domain.ErrNoVehicles}
	}
	if domain.IsSentinel(origin) || domain.IsSentinel(destination) {
		return nil, &domain.OpError{Op: op, Err: domain.ErrCancelled}
	}

	var matches []domain.Summary
	for _, vehicle := range r.vehicles {
		if vehicle.MatchesRoute(origin, destination) {
			matches = append(matches, vehicle.Summary())
		}
	}

	if len(matches) == 0 {
		return nil, &domain.OpError{Op: op, Err: domain.ErrNoMatches}
	}

	application.LogDebug(ctx, r.logger, "vehicles found for route", application.Fields{
		"origin":      origin,
		"destination": destination,
		"matches":     len(matches),
	})
	return matches, nil
}

func (r *InMemoryVehicleRegistry) Reserve(ctx context.Context, vehicleID string, seatNumber int, passenger string) (domain.Reservation, error) {
	vehicle, err := r.resolve(ctx, "registry.reserve", vehicleID)
	if err != nil {
		return domain.Reservation{}, err
	}

	reservation, err := vehicle.Reserve(seatNumber, passenger)
	if err != nil {
		application.LogInfo(ctx, r.logger, "seat reservation refused", application.Fields{
			"vehicle_id": vehicleID,
			"seat":       seatNumber,
			"reason":     string(domain.KindOf(err)),
		})
		return domain.Reservation{}, err
	}

	application.LogInfo(ctx, r.logger, "seat reserved", application.Fields{
		"vehicle_id": vehicleID,
		"seat":       seatNumber,
		"fare":       reservation.Fare,
	})
	return reservation, nil
}

func (r *InMemoryVehicleRegistry) Release(ctx context.Context, vehicleID string, seatNumber int, confirmed bool) (domain.Reservation, error) {
	vehicle, err := r.resolve(ctx, "registry.release", vehicleID)
	if err != nil {
		return domain.Reservation{}, err
	}

	released, err := vehicle.Release(seatNumber, confirmed)
	if err != nil {
		application.LogInfo(ctx, r.logger, "seat release refused", application.Fields{
			"vehicle_id": vehicleID,
			"seat":       seatNumber,
			"reason":     string(domain.KindOf(err)),
		})
		return domain.Reservation{}, err
	}

	application.LogInfo(ctx, r.logger, "seat released", application.Fields{
		"vehicle_id": vehicleID,
		"seat":       seatNumber,
	})
	return released, nil
}

func (r *InMemoryVehicleRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.vehicles)
}

func (r *InMemoryVehicleRegistry) resolve(ctx context.Context, op, vehicleID string) (*domain.Vehicle, error) {
	if domain.IsSentinel(vehicleID) {
		return nil, &domain.OpError{Op: op, Err: domain.ErrCancelled}
	}
	vehicle, ok := r.FindByID(ctx, vehicleID)
	if !ok {
		return nil, &domain.OpError{Op: op, VehicleID: vehicleID, Err: domain.ErrNotFound}
	}
	return vehicle, nil
}
