package application

import (
	"time"

	pkgDomain "github.com/mateusmacedo/go-bus-reservation/pkg/domain"
)

const (
	VehicleRegisteredEvent = "VehicleRegistered"
	SeatReservedEvent      = "SeatReserved"
	SeatReleasedEvent      = "SeatReleased"
)

// ReservationEventData é o payload comum dos eventos do contexto de reservas.
type ReservationEventData struct {
	ID         string    `json:"id"`
	VehicleID  string    `json:"vehicleId"`
	Route      string    `json:"route,omitempty"`
	SeatNumber int       `json:"seatNumber,omitempty"`
	Passenger  string    `json:"passenger,omitempty"`
	Fare       float64   `json:"fare,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type reservationEvent struct {
	name string
	data ReservationEventData
}

func (e reservationEvent) EventName() string {
	return e.name
}

func (e reservationEvent) Payload() ReservationEventData {
	return e.data
}

func NewVehicleRegisteredEvent(data ReservationEventData) pkgDomain.Event[ReservationEventData] {
	return reservationEvent{name: VehicleRegisteredEvent, data: data}
}

func NewSeatReservedEvent(data ReservationEventData) pkgDomain.Event[ReservationEventData] {
	return reservationEvent{name: SeatReservedEvent, data: data}
}

func NewSeatReleasedEvent(data ReservationEventData) pkgDomain.Event[ReservationEventData] {
	return reservationEvent{name: SeatReleasedEvent, data: data}
}

func EventNames() []string {
	return []string{VehicleRegisteredEvent, SeatReservedEvent, SeatReleasedEvent}
}
