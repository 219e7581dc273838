package application

import (
	"context"
	"time"

	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/domain"
	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/intake"
	pkgApp "github.com/mateusmacedo/go-bus-reservation/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-bus-reservation/pkg/domain"
)

type registerVehicleHandler struct {
	eventBus    ReservationEvents
	registry    domain.VehicleRegistry
	idGenerator pkgDomain.IDGenerator[string]
	logger      pkgApp.AppLogger
}

func (h *registerVehicleHandler) Handle(ctx context.Context, command pkgDomain.Command[RegisterVehicleData]) error {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "Contexto cancelado", ctx.Err(), nil)
		return ctx.Err()
	}

	data := command.Payload()
	flow := intake.NewRegistrationFlow(h.registry)
	if _, err := intake.Run(ctx, flow, data.inputs()...); err != nil {
		pkgApp.LogError(ctx, h.logger, "Erro ao cadastrar veículo", err, pkgApp.Fields{"vehicle_id": data.ID})
		return err
	}

	vehicle, _ := flow.Vehicle()
	summary := vehicle.Summary()
	if data.Result != nil {
		*data.Result = summary
	}

	event := NewVehicleRegisteredEvent(ReservationEventData{
		ID:         h.idGenerator(),
		VehicleID:  summary.ID,
		Route:      summary.Route,
		OccurredAt: time.Now().UTC(),
	})
	publish(ctx, h.eventBus, h.logger, event)
	return nil
}

func NewRegisterVehicleHandler(eventBus ReservationEvents, registry domain.VehicleRegistry, idGenerator pkgDomain.IDGenerator[string], logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[RegisterVehicleData], RegisterVehicleData] {
	return &registerVehicleHandler{
		eventBus:    eventBus,
		registry:    registry,
		idGenerator: idGenerator,
		logger:      logger,
	}
}

type reserveSeatHandler struct {
	eventBus    ReservationEvents
	registry    domain.VehicleRegistry
	idGenerator pkgDomain.IDGenerator[string]
	logger      pkgApp.AppLogger
}

func (h *reserveSeatHandler) Handle(ctx context.Context, command pkgDomain.Command[ReserveSeatData]) error {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "Contexto cancelado", ctx.Err(), nil)
		return ctx.Err()
	}

	data := command.Payload()
	flow := intake.NewReservationFlow(h.registry)
	if _, err := intake.Run(ctx, flow, data.VehicleID, data.SeatNumber, data.PassengerName); err != nil {
		pkgApp.LogError(ctx, h.logger, "Erro ao reservar assento", err, pkgApp.Fields{
			"vehicle_id": data.VehicleID,
			"seat":       data.SeatNumber,
		})
		return err
	}

	reservation, _ := flow.Result()
	if data.Result != nil {
		*data.Result = reservation
	}

	h.logger.Info(ctx, "Assento reservado", pkgApp.Fields{"reservation": reservation})
	publish(ctx, h.eventBus, h.logger, NewSeatReservedEvent(eventFromReservation(h.idGenerator(), reservation)))
	return nil
}

func NewReserveSeatHandler(eventBus ReservationEvents, registry domain.VehicleRegistry, idGenerator pkgDomain.IDGenerator[string], logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[ReserveSeatData], ReserveSeatData] {
	return &reserveSeatHandler{
		eventBus:    eventBus,
		registry:    registry,
		idGenerator: idGenerator,
		logger:      logger,
	}
}

type releaseSeatHandler struct {
	eventBus    ReservationEvents
	registry    domain.VehicleRegistry
	idGenerator pkgDomain.IDGenerator[string]
	logger      pkgApp.AppLogger
}

func (h *releaseSeatHandler) Handle(ctx context.Context, command pkgDomain.Command[ReleaseSeatData]) error {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "Contexto cancelado", ctx.Err(), nil)
		return ctx.Err()
	}

	data := command.Payload()
	flow := intake.NewReleaseFlow(h.registry)
	if _, err := intake.Run(ctx, flow, data.VehicleID, data.SeatNumber, data.Confirm); err != nil {
		pkgApp.LogError(ctx, h.logger, "Erro ao liberar assento", err, pkgApp.Fields{
			"vehicle_id": data.VehicleID,
			"seat":       data.SeatNumber,
		})
		return err
	}

	released, _ := flow.Result()
	if data.Result != nil {
		*data.Result = released
	}

	h.logger.Info(ctx, "Assento liberado", pkgApp.Fields{"reservation": released})
	publish(ctx, h.eventBus, h.logger, NewSeatReleasedEvent(eventFromReservation(h.idGenerator(), released)))
	return nil
}

func NewReleaseSeatHandler(eventBus ReservationEvents, registry domain.VehicleRegistry, idGenerator pkgDomain.IDGenerator[string], logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[ReleaseSeatData], ReleaseSeatData] {
	return &releaseSeatHandler{
		eventBus:    eventBus,
		registry:    registry,
		idGenerator: idGenerator,
		logger:      logger,
	}
}

type findVehicleHandler struct {
	registry domain.VehicleRegistry
	logger   pkgApp.AppLogger
}

func (h *findVehicleHandler) Handle(ctx context.Context, query pkgDomain.Query[FindVehicleData]) (domain.Detail, error) {
	if ctx.Err() != nil {
		return domain.Detail{}, ctx.Err()
	}

	data := query.Payload()
	if domain.IsSentinel(data.VehicleID) {
		return domain.Detail{}, &domain.OpError{Op: "query.find_vehicle", Err: domain.ErrCancelled}
	}

	vehicle, ok := h.registry.FindByID(ctx, data.VehicleID)
	if !ok {
		err := &domain.OpError{Op: "query.find_vehicle", VehicleID: data.VehicleID, Err: domain.ErrNotFound}
		pkgApp.LogInfo(ctx, h.logger, "Veículo não encontrado", pkgApp.Fields{"vehicle_id": data.VehicleID})
		return domain.Detail{}, err
	}
	return vehicle.Describe(), nil
}

func NewFindVehicleHandler(registry domain.VehicleRegistry, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[FindVehicleData], FindVehicleData, domain.Detail] {
	return &findVehicleHandler{registry: registry, logger: logger}
}

func NewListVehiclesHandler(registry domain.VehicleRegistry) pkgApp.QueryHandler[pkgDomain.Query[VehicleListData], VehicleListData, []domain.Summary] {
	return pkgApp.QueryHandlerFunc[pkgDomain.Query[VehicleListData], VehicleListData, []domain.Summary](
		func(ctx context.Context, _ pkgDomain.Query[VehicleListData]) ([]domain.Summary, error) {
			return registry.ListAll(ctx)
		})
}

func NewSearchVehiclesByRouteHandler(registry domain.VehicleRegistry) pkgApp.QueryHandler[pkgDomain.Query[VehicleListData], VehicleListData, []domain.Summary] {
	return pkgApp.QueryHandlerFunc[pkgDomain.Query[VehicleListData], VehicleListData, []domain.Summary](
		func(ctx context.Context, query pkgDomain.Query[VehicleListData]) ([]domain.Summary, error) {
			data := query.Payload()
			return registry.SearchByRoute(ctx, data.Origin, data.Destination)
		})
}

// NewReservationLoggingHandler registra cada evento recebido, como o handler de eventos de passagens.
func NewReservationLoggingHandler(logger pkgApp.AppLogger) pkgApp.EventHandler[pkgDomain.Event[ReservationEventData], ReservationEventData] {
	return pkgApp.EventHandlerFunc[pkgDomain.Event[ReservationEventData], ReservationEventData](
		func(ctx context.Context, event pkgDomain.Event[ReservationEventData]) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			pkgApp.LogInfo(ctx, logger, "Evento recebido", pkgApp.Fields{
				"event_name": event.EventName(),
				"event":      event.Payload(),
			})
			return nil
		})
}

// publish registra falhas sem propagá-las ao comando.
func publish(ctx context.Context, bus ReservationEvents, logger pkgApp.AppLogger, event pkgDomain.Event[ReservationEventData]) {
	if err := bus.Publish(ctx, event); err != nil {
		pkgApp.LogError(ctx, logger, "Erro ao publicar evento", err, pkgApp.Fields{"event_name": event.EventName()})
	}
}

func eventFromReservation(id string, r domain.Reservation) ReservationEventData {
	return ReservationEventData{
		ID:         id,
		VehicleID:  r.VehicleID,
		SeatNumber: r.SeatNumber,
		Passenger:  r.Passenger,
		Fare:       r.Fare,
		OccurredAt: time.Now().UTC(),
	}
}
