package domain

import (
	"errors"
	"fmt"
)

// Erros sentinela para a classificação das falhas de cada operação.
var (
	ErrCancelled       = errors.New("operation cancelled")
	ErrNotFound        = errors.New("vehicle not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidSeat     = errors.New("invalid seat number")
	ErrAlreadyReserved = errors.New("seat already reserved")
	ErrAlreadyEmpty    = errors.New("seat already empty")
	ErrAborted         = errors.New("confirmation declined")
	ErrDuplicate       = errors.New("vehicle already registered")
	ErrNoVehicles      = errors.New("no vehicles available")
	ErrNoMatches       = errors.New("no matching vehicles")
)

type ErrorKind string

const (
	KindUnknown         ErrorKind = "unknown"
	KindCancelled       ErrorKind = "cancelled"
	KindNotFound        ErrorKind = "not_found"
	KindInvalidInput    ErrorKind = "invalid_input"
	KindInvalidSeat     ErrorKind = "invalid_seat"
	KindAlreadyReserved ErrorKind = "already_reserved"
	KindAlreadyEmpty    ErrorKind = "already_empty"
	KindAborted         ErrorKind = "aborted"
	KindDuplicate       ErrorKind = "duplicate"
	KindNoVehicles      ErrorKind = "no_vehicles"
	KindNoMatches       ErrorKind = "no_matches"
)

var kindBySentinel = []struct {
	err  error
	kind ErrorKind
}{
	{ErrCancelled, KindCancelled},
	{ErrNotFound, KindNotFound},
	{ErrInvalidInput, KindInvalidInput},
	{ErrInvalidSeat, KindInvalidSeat},
	{ErrAlreadyReserved, KindAlreadyReserved},
	{ErrAlreadyEmpty, KindAlreadyEmpty},
	{ErrAborted, KindAborted},
	{ErrDuplicate, KindDuplicate},
	{ErrNoVehicles, KindNoVehicles},
	{ErrNoMatches, KindNoMatches},
}

// OpError carrega o contexto da operação que falhou. Err é sempre um dos sentinelas acima.
type OpError struct {
	Op        string
	VehicleID string
	Seat      int
	Occupant  string // preenchido apenas para ErrAlreadyReserved
	Err       error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := e.Op
	if e.VehicleID != "" {
		base += fmt.Sprintf(" (vehicle=%s)", e.VehicleID)
	}
	if e.Seat != 0 {
		base += fmt.Sprintf(" (seat=%d)", e.Seat)
	}
	base += ": " + e.Err.Error()
	if e.Occupant != "" {
		base += fmt.Sprintf(" by %s", e.Occupant)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf classifica err sem que o chamador precise conhecer os sentinelas.
func KindOf(err error) ErrorKind {
	for _, entry := range kindBySentinel {
		if errors.Is(err, entry.err) {
			return entry.kind
		}
	}
	return KindUnknown
}

// OccupantOf devolve o passageiro informado por uma falha ErrAlreadyReserved.
func OccupantOf(err error) (string, bool) {
	var oe *OpError
	if errors.As(err, &oe) && errors.Is(oe.Err, ErrAlreadyReserved) {
		return oe.Occupant, true
	}
	return "", false
}
