package application

import (
	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/domain"
	pkgApp "github.com/mateusmacedo/go-bus-reservation/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-bus-reservation/pkg/domain"
	pkgInfra "github.com/mateusmacedo/go-bus-reservation/pkg/infrastructure"
)

type (
	RegisterVehicleBus = pkgApp.CommandBus[pkgDomain.Command[RegisterVehicleData], RegisterVehicleData]
	ReserveSeatBus     = pkgApp.CommandBus[pkgDomain.Command[ReserveSeatData], ReserveSeatData]
	ReleaseSeatBus     = pkgApp.CommandBus[pkgDomain.Command[ReleaseSeatData], ReleaseSeatData]
	FindVehicleBus     = pkgApp.QueryBus[pkgDomain.Query[FindVehicleData], FindVehicleData, domain.Detail]
	VehicleListBus     = pkgApp.QueryBus[pkgDomain.Query[VehicleListData], VehicleListData, []domain.Summary]
	ReservationEvents  = pkgApp.EventBus[pkgDomain.Event[ReservationEventData], ReservationEventData]
)

// Buses agrupa os barramentos usados pelo contexto de reservas.
type Buses struct {
	RegisterVehicle RegisterVehicleBus
	ReserveSeat     ReserveSeatBus
	ReleaseSeat     ReleaseSeatBus
	FindVehicle     FindVehicleBus
	ListVehicles    VehicleListBus
	Events          ReservationEvents
}

// NewInProcessBuses cria barramentos de comando e consulta síncronos sobre o barramento de eventos informado.
func NewInProcessBuses(logger pkgApp.AppLogger, events ReservationEvents) Buses {
	return Buses{
		RegisterVehicle: pkgInfra.NewSimpleCommandBus[pkgDomain.Command[RegisterVehicleData], RegisterVehicleData](logger),
		ReserveSeat:     pkgInfra.NewSimpleCommandBus[pkgDomain.Command[ReserveSeatData], ReserveSeatData](logger),
		ReleaseSeat:     pkgInfra.NewSimpleCommandBus[pkgDomain.Command[ReleaseSeatData], ReleaseSeatData](logger),
		FindVehicle:     pkgInfra.NewSimpleQueryBus[pkgDomain.Query[FindVehicleData], FindVehicleData, domain.Detail](logger),
		ListVehicles:    pkgInfra.NewSimpleQueryBus[pkgDomain.Query[VehicleListData], VehicleListData, []domain.Summary](logger),
		Events:          events,
	}
}
