package domain

import (
	"sync"
)

// Details são os campos informados no cadastro de um veículo, na ordem em que são coletados.
type Details struct {
	ID            string `json:"id"`
	Driver        string `json:"driver"`
	ArrivalTime   string `json:"arrivalTime"`
	DepartureTime string `json:"departureTime"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
}

// Fields devolve os campos na ordem de coleta do cadastro.
func (d Details) Fields() []string {
	return []string{d.ID, d.Driver, d.ArrivalTime, d.DepartureTime, d.Origin, d.Destination}
}

// Validate rejeita o cadastro inteiro se qualquer campo for vazio ou o token de cancelamento.
func (d Details) Validate() error {
	for _, field := range d.Fields() {
		if IsSentinel(field) {
			return &OpError{Op: "vehicle.register", Err: ErrCancelled}
		}
	}
	return nil
}

// Reservation é o resultado de uma reserva ou liberação de assento.
type Reservation struct {
	VehicleID  string  `json:"vehicleId"`
	SeatNumber int     `json:"seatNumber"`
	Passenger  string  `json:"passenger"`
	Fare       float64 `json:"fare"`
}

// Vehicle é o agregado que possui a grade de assentos. O mutex serializa as transições
// de cada assento; os detalhes são imutáveis depois da criação.
type Vehicle struct {
	mu      sync.Mutex
	details Details
	seats   [SeatRows][SeatColumns]Seat
}

func NewVehicle(details Details) (*Vehicle, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}

	v := &Vehicle{details: details}
	for r := range v.seats {
		for c := range v.seats[r] {
			v.seats[r][c] = newSeat()
		}
	}
	return v, nil
}

func (v *Vehicle) ID() string {
	return v.details.ID
}

func (v *Vehicle) Details() Details {
	return v.details
}

// seat devolve um ponteiro para o assento; o chamador deve segurar v.mu.
func (v *Vehicle) seat(number int) (*Seat, error) {
	row, col, err := SeatPosition(number)
	if err != nil {
		return nil, err
	}
	return &v.seats[row][col], nil
}

// Seat devolve uma cópia do assento informado.
func (v *Vehicle) Seat(number int) (Seat, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	s, err := v.seat(number)
	if err != nil {
		return Seat{}, v.opError("vehicle.seat", number, err)
	}
	return *s, nil
}

func (v *Vehicle) Reserve(number int, passenger string) (Reservation, error) {
	const op = "vehicle.reserve"
	if number == 0 {
		return Reservation{}, v.opError(op, number, ErrCancelled)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	s, err := v.seat(number)
	if err != nil {
		return Reservation{}, v.opError(op, number, err)
	}
	if !s.Vacant() {
		return Reservation{}, &OpError{Op: op, VehicleID: v.details.ID, Seat: number, Occupant: s.Occupant, Err: ErrAlreadyReserved}
	}
	if IsSentinel(passenger) {
		return Reservation{}, v.opError(op, number, ErrCancelled)
	}

	s.Occupant = passenger
	return Reservation{VehicleID: v.details.ID, SeatNumber: number, Passenger: passenger, Fare: s.Fare}, nil
}

// Release libera o assento. A verificação de assento vazio precede a confirmação.
func (v *Vehicle) Release(number int, confirmed bool) (Reservation, error) {
	const op = "vehicle.release"
	if number == 0 {
		return Reservation{}, v.opError(op, number, ErrCancelled)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	s, err := v.seat(number)
	if err != nil {
		return Reservation{}, v.opError(op, number, err)
	}
	if s.Vacant() {
		return Reservation{}, v.opError(op, number, ErrAlreadyEmpty)
	}
	if !confirmed {
		return Reservation{}, v.opError(op, number, ErrAborted)
	}

	released := Reservation{VehicleID: v.details.ID, SeatNumber: number, Passenger: s.Occupant, Fare: s.Fare}
	s.Occupant = ""
	return released, nil
}

func (v *Vehicle) MatchesRoute(origin, destination string) bool {
	return v.details.Origin == origin && v.details.Destination == destination
}

func (v *Vehicle) Summary() Summary {
	return newSummary(v.details)
}

func (v *Vehicle) Describe() Detail {
	v.mu.Lock()
	defer v.mu.Unlock()

	detail := Detail{
		Summary:     newSummary(v.details),
		Origin:      v.details.Origin,
		Destination: v.details.Destination,
		Seats:       make([]SeatView, 0, SeatCount),
	}
	for r := range v.seats {
		for c, s := range v.seats[r] {
			detail.Seats = append(detail.Seats, SeatView{
				Number:   SeatNumber(r, c),
				Row:      r + 1,
				Column:   c + 1,
				Occupant: s.Occupant,
				Vacant:   s.Vacant(),
				Fare:     s.Fare,
			})
			if s.Vacant() {
				detail.VacantCount++
			}
		}
	}
	return detail
}

func (v *Vehicle) opError(op string, number int, err error) error {
	return &OpError{Op: op, VehicleID: v.details.ID, Seat: number, Err: err}
}
