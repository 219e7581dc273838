package domain

import "context"

// VehicleRegistry é a coleção ordenada de veículos cadastrados. A ordem de cadastro
// é preservada em listagens e buscas.
type VehicleRegistry interface {
	Register(ctx context.Context, details Details) (*Vehicle, error)
	FindByID(ctx context.Context, id string) (*Vehicle, bool)
	ListAll(ctx context.Context) ([]Summary, error)
	SearchByRoute(ctx context.Context, origin, destination string) ([]Summary, error)
	Reserve(ctx context.Context, vehicleID string, seatNumber int, passenger string) (Reservation, error)
	Release(ctx context.Context, vehicleID string, seatNumber int, confirmed bool) (Reservation, error)
	Len() int
}
