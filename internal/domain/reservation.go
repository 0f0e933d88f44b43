package domain

import (
	"fmt"
	"strings"
)

type Reservation struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Paid        bool   `json:"paid"`
	Description string `json:"description"`
	DayOfMonth  int    `json:"day_of_month"`
	Price       int64  `json:"price"`
	FlightID1   int64  `json:"fid1"`
	FlightID2   int64  `json:"fid2"`
}

func NewReservation(username string, it Itinerary) *Reservation {
	return &Reservation{
		Username:    username,
		Description: it.Description,
		DayOfMonth:  it.DayOfMonth,
		Price:       it.TotalCost,
		FlightID1:   it.FirstLegID(),
		FlightID2:   it.SecondLegID(),
	}
}

// FlightIDs returns the legs of the reservation without the sentinel.
func (r Reservation) FlightIDs() []int64 {
	if r.FlightID2 == NoSecondLeg {
		return []int64{r.FlightID1}
	}
	return []int64{r.FlightID1, r.FlightID2}
}

// String renders the reservation header followed by the flight lines of
// the booked itinerary.
func (r Reservation) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Reservation %d paid: %t:\n", r.ID, r.Paid)

	lines := strings.Split(strings.TrimRight(r.Description, "\n"), "\n")
	if len(lines) > 1 {
		lines = lines[1:]
	}
	for _, l := range lines {
		if l == "" {
			continue
		}
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}
