package domain

import (
	"errors"
	"testing"
)

func newTestVehicle(t *testing.T) *Vehicle {
	t.Helper()
	v, err := NewVehicle(Details{
		ID:            "B1",
		Driver:        "Ravi",
		ArrivalTime:   "09:00",
		DepartureTime: "09:30",
		Origin:        "Delhi",
		Destination:   "Agra",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v
}

func TestSeatPosition_IsBijection(t *testing.T) {
	seen := make(map[[2]int]int)
	for n := 1; n <= SeatCount; n++ {
		row, col, err := SeatPosition(n)
		if err != nil {
			t.Fatalf("seat %d: unexpected error %v", n, err)
		}
		if row != (n-1)/4 || col != (n-1)%4 {
			t.Fatalf("seat %d: got (%d,%d)", n, row, col)
		}
		if row < 0 || row >= SeatRows || col < 0 || col >= SeatColumns {
			t.Fatalf("seat %d out of grid: (%d,%d)", n, row, col)
		}
		key := [2]int{row, col}
		if prev, dup := seen[key]; dup {
			t.Fatalf("seats %d and %d share (%d,%d)", prev, n, row, col)
		}
		seen[key] = n
		if back := SeatNumber(row, col); back != n {
			t.Fatalf("SeatNumber(%d,%d) = %d, want %d", row, col, back, n)
		}
	}
	if len(seen) != SeatRows*SeatColumns {
		t.Fatalf("expected %d positions, got %d", SeatRows*SeatColumns, len(seen))
	}
}

func TestSeatPosition_OutOfRange(t *testing.T) {
	for _, n := range []int{-1, 0, 33, 100} {
		if _, _, err := SeatPosition(n); !errors.Is(err, ErrInvalidSeat) {
			t.Fatalf("seat %d: expected ErrInvalidSeat, got %v", n, err)
		}
	}
}

func TestNewVehicle_StartsWithVacantSeatsAtDefaultFare(t *testing.T) {
	v := newTestVehicle(t)
	detail := v.Describe()

	if len(detail.Seats) != SeatCount {
		t.Fatalf("expected %d seats, got %d", SeatCount, len(detail.Seats))
	}
	if detail.VacantCount != SeatCount {
		t.Fatalf("expected %d vacant, got %d", SeatCount, detail.VacantCount)
	}
	for i, s := range detail.Seats {
		if s.Number != i+1 || !s.Vacant || s.Fare != DefaultFare {
			t.Fatalf("unexpected seat view: %+v", s)
		}
	}
}

func TestNewVehicle_CancelsOnAnySentinelField(t *testing.T) {
	base := Details{ID: "B1", Driver: "D", ArrivalTime: "A", DepartureTime: "P", Origin: "O", Destination: "X"}

	mutators := map[string]func(d *Details, v string){
		"id":          func(d *Details, v string) { d.ID = v },
		"driver":      func(d *Details, v string) { d.Driver = v },
		"arrival":     func(d *Details, v string) { d.ArrivalTime = v },
		"departure":   func(d *Details, v string) { d.DepartureTime = v },
		"origin":      func(d *Details, v string) { d.Origin = v },
		"destination": func(d *Details, v string) { d.Destination = v },
	}

	for name, mutate := range mutators {
		for _, sentinel := range []string{"", CancelToken} {
			t.Run(name+"/"+sentinel, func(t *testing.T) {
				d := base
				mutate(&d, sentinel)
				v, err := NewVehicle(d)
				if v != nil {
					t.Fatal("expected no vehicle")
				}
				if !errors.Is(err, ErrCancelled) {
					t.Fatalf("expected ErrCancelled, got %v", err)
				}
			})
		}
	}
}

func TestVehicle_ReserveThenReleaseRestoresSeat(t *testing.T) {
	v := newTestVehicle(t)
	before, _ := v.Seat(5)

	res, err := v.Reserve(5, "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SeatNumber != 5 || res.Fare != DefaultFare || res.Passenger != "Alice" {
		t.Fatalf("unexpected reservation: %+v", res)
	}

	detail := v.Describe()
	if detail.Seats[4].Occupant != "Alice" || detail.Seats[4].Fare != 300.00 {
		t.Fatalf("unexpected seat 5: %+v", detail.Seats[4])
	}
	if detail.VacantCount != 31 {
		t.Fatalf("expected 31 vacant, got %d", detail.VacantCount)
	}

	released, err := v.Release(5, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if released.Passenger != "Alice" {
		t.Fatalf("expected released passenger Alice, got %q", released.Passenger)
	}

	after, _ := v.Seat(5)
	if after != before {
		t.Fatalf("seat not restored: before %+v, after %+v", before, after)
	}
	if got := v.Describe().VacantCount; got != SeatCount {
		t.Fatalf("expected %d vacant, got %d", SeatCount, got)
	}
}

func TestVehicle_ReserveOccupiedSeatReportsOccupant(t *testing.T) {
	v := newTestVehicle(t)
	if _, err := v.Reserve(7, "Alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := v.Reserve(7, "Bob")
	if !errors.Is(err, ErrAlreadyReserved) {
		t.Fatalf("expected ErrAlreadyReserved, got %v", err)
	}
	occupant, ok := OccupantOf(err)
	if !ok || occupant != "Alice" {
		t.Fatalf("expected occupant Alice, got %q (%v)", occupant, ok)
	}

	seat, _ := v.Seat(7)
	if seat.Occupant != "Alice" || seat.Fare != DefaultFare {
		t.Fatalf("seat mutated: %+v", seat)
	}
}

func TestVehicle_ReserveErrors(t *testing.T) {
	tests := []struct {
		name      string
		seat      int
		passenger string
		want      error
	}{
		{name: "seat zero cancels", seat: 0, passenger: "Alice", want: ErrCancelled},
		{name: "seat above range", seat: 33, passenger: "Alice", want: ErrInvalidSeat},
		{name: "negative seat", seat: -4, passenger: "Alice", want: ErrInvalidSeat},
		{name: "empty passenger", seat: 1, passenger: "", want: ErrCancelled},
		{name: "cancel token passenger", seat: 1, passenger: CancelToken, want: ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVehicle(t)
			_, err := v.Reserve(tt.seat, tt.passenger)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if got := v.Describe().VacantCount; got != SeatCount {
				t.Fatalf("expected no mutation, vacant=%d", got)
			}
		})
	}
}

func TestVehicle_ReleaseErrors(t *testing.T) {
	t.Run("already empty", func(t *testing.T) {
		v := newTestVehicle(t)
		if _, err := v.Release(3, true); !errors.Is(err, ErrAlreadyEmpty) {
			t.Fatalf("expected ErrAlreadyEmpty, got %v", err)
		}
	})

	t.Run("empty check precedes confirmation", func(t *testing.T) {
		v := newTestVehicle(t)
		if _, err := v.Release(3, false); !errors.Is(err, ErrAlreadyEmpty) {
			t.Fatalf("expected ErrAlreadyEmpty, got %v", err)
		}
	})

	t.Run("declined confirmation", func(t *testing.T) {
		v := newTestVehicle(t)
		if _, err := v.Reserve(3, "Alice"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := v.Release(3, false); !errors.Is(err, ErrAborted) {
			t.Fatalf("expected ErrAborted, got %v", err)
		}
		if seat, _ := v.Seat(3); seat.Occupant != "Alice" {
			t.Fatalf("seat should be untouched, got %+v", seat)
		}
	})

	t.Run("invalid seat", func(t *testing.T) {
		v := newTestVehicle(t)
		if _, err := v.Release(33, true); !errors.Is(err, ErrInvalidSeat) {
			t.Fatalf("expected ErrInvalidSeat, got %v", err)
		}
	})
}

func TestVehicle_SummaryAndRouteMatching(t *testing.T) {
	v := newTestVehicle(t)

	s := v.Summary()
	if s.Route != "Delhi -> Agra" || s.ID != "B1" || s.Driver != "Ravi" {
		t.Fatalf("unexpected summary: %+v", s)
	}

	cases := []struct {
		origin, destination string
		want                bool
	}{
		{"Delhi", "Agra", true},
		{"delhi", "Agra", false},
		{"Delhi ", "Agra", false},
		{"Agra", "Delhi", false},
	}
	for _, c := range cases {
		if got := v.MatchesRoute(c.origin, c.destination); got != c.want {
			t.Fatalf("MatchesRoute(%q,%q) = %v, want %v", c.origin, c.destination, got, c.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	err := &OpError{Op: "vehicle.reserve", VehicleID: "B1", Seat: 2, Occupant: "Alice", Err: ErrAlreadyReserved}
	if KindOf(err) != KindAlreadyReserved {
		t.Fatalf("unexpected kind: %v", KindOf(err))
	}
	if KindOf(errors.New("boom")) != KindUnknown {
		t.Fatal("expected unknown kind")
	}
	if got := err.Error(); got != "vehicle.reserve (vehicle=B1) (seat=2): seat already reserved by Alice" {
		t.Fatalf("unexpected message: %q", got)
	}
}
