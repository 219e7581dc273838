package application

import (
	"context"
	"sort"
	"sync"

	pkgApp "github.com/mateusmacedo/go-bus-reservation/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-bus-reservation/pkg/domain"
)

// VehicleActivity acumula o movimento de um veículo desde o início do processo.
type VehicleActivity struct {
	VehicleID    string  `json:"vehicleId"`
	Reservations int     `json:"reservations"`
	Releases     int     `json:"releases"`
	Occupied     int     `json:"occupied"`
	Revenue      float64 `json:"revenue"`
}

// OccupancyLedger é alimentado pelos eventos de reserva; é uma projeção, não a fonte da verdade.
type OccupancyLedger struct {
	mu       sync.RWMutex
	vehicles map[string]*VehicleActivity
	seen     map[string]struct{}
}

func NewOccupancyLedger() *OccupancyLedger {
	return &OccupancyLedger{
		vehicles: make(map[string]*VehicleActivity),
		seen:     make(map[string]struct{}),
	}
}

func (l *OccupancyLedger) Handle(ctx context.Context, event pkgDomain.Event[ReservationEventData]) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	data := event.Payload()

	l.mu.Lock()
	defer l.mu.Unlock()

	// transportes com entrega "at least once" podem repetir o evento
	if _, dup := l.seen[data.ID]; dup && data.ID != "" {
		return nil
	}
	l.seen[data.ID] = struct{}{}

	activity, ok := l.vehicles[data.VehicleID]
	if !ok {
		activity = &VehicleActivity{VehicleID: data.VehicleID}
		l.vehicles[data.VehicleID] = activity
	}

	switch event.EventName() {
	case SeatReservedEvent:
		activity.Reservations++
		activity.Occupied++
		activity.Revenue += data.Fare
	case SeatReleasedEvent:
		activity.Releases++
		activity.Occupied--
		activity.Revenue -= data.Fare
	}
	return nil
}

// Snapshot devolve uma cópia ordenada por veículo.
func (l *OccupancyLedger) Snapshot() []VehicleActivity {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]VehicleActivity, 0, len(l.vehicles))
	for _, activity := range l.vehicles {
		out = append(out, *activity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VehicleID < out[j].VehicleID })
	return out
}

var _ pkgApp.EventHandler[pkgDomain.Event[ReservationEventData], ReservationEventData] = (*OccupancyLedger)(nil)
