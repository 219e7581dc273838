package domain

const (
	SeatRows    = 8
	SeatColumns = 4
	SeatCount   = SeatRows * SeatColumns

	DefaultFare = 300.0

	// CancelToken é o valor literal que, como a entrada vazia, aborta uma operação.
	CancelToken = "0"
)

// Seat é um assento do veículo. Occupant vazio significa assento livre.
type Seat struct {
	Occupant string
	Fare     float64
}

func newSeat() Seat {
	return Seat{Fare: DefaultFare}
}

func (s Seat) Vacant() bool {
	return s.Occupant == ""
}

// SeatPosition converte um número de assento (1..32) em linha e coluna da grade.
func SeatPosition(number int) (row, col int, err error) {
	if number < 1 || number > SeatCount {
		return 0, 0, ErrInvalidSeat
	}
	return (number - 1) / SeatColumns, (number - 1) % SeatColumns, nil
}

// SeatNumber é a inversa de SeatPosition.
func SeatNumber(row, col int) int {
	return row*SeatColumns + col + 1
}

// IsSentinel informa se a entrada deve abortar a operação em andamento.
func IsSentinel(input string) bool {
	return input == "" || input == CancelToken
}
