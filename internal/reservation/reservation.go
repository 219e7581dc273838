package reservation

import (
	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/application"
	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/domain"
	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/infrastructure"
	pkgApp "github.com/mateusmacedo/go-bus-reservation/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-bus-reservation/pkg/domain"
)

// ReservationSlice liga handlers, barramentos e rotas do contexto de reservas de assentos.
type ReservationSlice struct {
	httpHandler *infrastructure.ReservationHTTPHandler
	ledger      *application.OccupancyLedger
}

func NewReservationSlice(
	buses application.Buses,
	registry domain.VehicleRegistry,
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
) *ReservationSlice {
	buses.RegisterVehicle.RegisterHandler(application.RegisterVehicleCommand,
		application.NewRegisterVehicleHandler(buses.Events, registry, idGenerator, logger))
	buses.ReserveSeat.RegisterHandler(application.ReserveSeatCommand,
		application.NewReserveSeatHandler(buses.Events, registry, idGenerator, logger))
	buses.ReleaseSeat.RegisterHandler(application.ReleaseSeatCommand,
		application.NewReleaseSeatHandler(buses.Events, registry, idGenerator, logger))

	buses.FindVehicle.RegisterHandler(application.FindVehicleQuery, application.NewFindVehicleHandler(registry, logger))
	buses.ListVehicles.RegisterHandler(application.ListVehiclesQuery, application.NewListVehiclesHandler(registry))
	buses.ListVehicles.RegisterHandler(application.SearchVehiclesByRouteQuery, application.NewSearchVehiclesByRouteHandler(registry))

	ledger := application.NewOccupancyLedger()
	loggingHandler := application.NewReservationLoggingHandler(logger)
	for _, eventName := range application.EventNames() {
		buses.Events.RegisterHandler(eventName, loggingHandler)
	}
	buses.Events.RegisterHandler(application.SeatReservedEvent, ledger)
	buses.Events.RegisterHandler(application.SeatReleasedEvent, ledger)

	return &ReservationSlice{
		httpHandler: infrastructure.NewReservationHTTPHandler(buses, ledger),
		ledger:      ledger,
	}
}

func (s *ReservationSlice) RegisterRoutes(router chi.Router) {
	s.httpHandler.RegisterRoutes(router)
}

func (s *ReservationSlice) Ledger() *application.OccupancyLedger {
	return s.ledger
}
