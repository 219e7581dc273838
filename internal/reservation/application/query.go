package application

import (
	pkgDomain "github.com/mateusmacedo/go-bus-reservation/pkg/domain"
)

const (
	FindVehicleQuery           = "FindVehicle"
	ListVehiclesQuery          = "ListVehicles"
	SearchVehiclesByRouteQuery = "SearchVehiclesByRoute"
)

type FindVehicleData struct {
	VehicleID string `json:"vehicleId"`
}

// VehicleListData serve tanto à listagem completa quanto à busca por rota;
// Origin e Destination só são lidos pela busca.
type VehicleListData struct {
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
}

type query[T any] struct {
	name string
	data T
}

func (q query[T]) QueryName() string {
	return q.name
}

func (q query[T]) Payload() T {
	return q.data
}

func NewFindVehicleQuery(data FindVehicleData) pkgDomain.Query[FindVehicleData] {
	return query[FindVehicleData]{name: FindVehicleQuery, data: data}
}

func NewListVehiclesQuery() pkgDomain.Query[VehicleListData] {
	return query[VehicleListData]{name: ListVehiclesQuery}
}

func NewSearchVehiclesByRouteQuery(origin, destination string) pkgDomain.Query[VehicleListData] {
	return query[VehicleListData]{
		name: SearchVehiclesByRouteQuery,
		data: VehicleListData{Origin: origin, Destination: destination},
	}
}
