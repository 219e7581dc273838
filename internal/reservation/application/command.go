package application

import (
	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/domain"
	pkgDomain "github.com/mateusmacedo/go-bus-reservation/pkg/domain"
)

const (
	RegisterVehicleCommand = "RegisterVehicle"
	ReserveSeatCommand     = "ReserveSeat"
	ReleaseSeatCommand     = "ReleaseSeat"
)

// RegisterVehicleData contém os campos do cadastro, como foram informados.
// Result recebe o resumo do veículo cadastrado quando não é nil.
type RegisterVehicleData struct {
	ID            string          `json:"id"`
	Driver        string          `json:"driver"`
	ArrivalTime   string          `json:"arrivalTime"`
	DepartureTime string          `json:"departureTime"`
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	Result        *domain.Summary `json:"-"`
}

func (d RegisterVehicleData) inputs() []string {
	return []string{d.ID, d.Driver, d.ArrivalTime, d.DepartureTime, d.Origin, d.Destination}
}

// ReserveSeatData chega como texto: o número do assento é validado pelo fluxo de reserva.
type ReserveSeatData struct {
	VehicleID     string              `json:"vehicleId"`
	SeatNumber    string              `json:"seatNumber"`
	PassengerName string              `json:"passengerName"`
	Result        *domain.Reservation `json:"-"`
}

type ReleaseSeatData struct {
	VehicleID  string              `json:"vehicleId"`
	SeatNumber string              `json:"seatNumber"`
	Confirm    string              `json:"confirm"`
	Result     *domain.Reservation `json:"-"`
}

type command[T any] struct {
	name string
	data T
}

func (c command[T]) CommandName() string {
	return c.name
}

func (c command[T]) Payload() T {
	return c.data
}

func NewRegisterVehicleCommand(data RegisterVehicleData) pkgDomain.Command[RegisterVehicleData] {
	return command[RegisterVehicleData]{name: RegisterVehicleCommand, data: data}
}

func NewReserveSeatCommand(data ReserveSeatData) pkgDomain.Command[ReserveSeatData] {
	return command[ReserveSeatData]{name: ReserveSeatCommand, data: data}
}

func NewReleaseSeatCommand(data ReleaseSeatData) pkgDomain.Command[ReleaseSeatData] {
	return command[ReleaseSeatData]{name: ReleaseSeatCommand, data: data}
}
