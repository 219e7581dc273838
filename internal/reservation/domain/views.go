package domain

// Summary é a visão resumida de um veículo usada em listagens e buscas.
type Summary struct {
	ID            string `json:"id"`
	Driver        string `json:"driver"`
	ArrivalTime   string `json:"arrivalTime"`
	DepartureTime string `json:"departureTime"`
	Route         string `json:"route"`
}

func newSummary(d Details) Summary {
	return Summary{
		ID:            d.ID,
		Driver:        d.Driver,
		ArrivalTime:   d.ArrivalTime,
		DepartureTime: d.DepartureTime,
		Route:         d.Origin + " -> " + d.Destination,
	}
}

type SeatView struct {
	Number   int     `json:"number"`
	Row      int     `json:"row"`
	Column   int     `json:"column"`
	Occupant string  `json:"occupant,omitempty"`
	Vacant   bool    `json:"vacant"`
	Fare     float64 `json:"fare"`
}

// Detail é a visão completa: dados do veículo, todos os assentos e a contagem de livres.
type Detail struct {
	Summary
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Seats       []SeatView `json:"seats"`
	VacantCount int        `json:"vacantCount"`
}
