package domain

import (
	"fmt"
	"strings"
)

// NoSecondLeg marks the missing second flight of a direct itinerary.
const NoSecondLeg int64 = -1

// Itinerary is one bookable trip of one or two flights. It only lives in a
// session's search cache and is never persisted.
type Itinerary struct {
	Index         int     `json:"index"`
	First         Flight  `json:"first"`
	Second        *Flight `json:"second,omitempty"`
	TotalDuration int     `json:"total_duration"`
	TotalCost     int64   `json:"total_cost"`
	Legs          int     `json:"legs"`
	DayOfMonth    int     `json:"day_of_month"`
	Full          bool    `json:"full"`
	Description   string  `json:"description"`
}

func NewDirectItinerary(f Flight) Itinerary {
	return Itinerary{
		First:         f,
		TotalDuration: f.Duration,
		TotalCost:     f.Price,
		Legs:          1,
		DayOfMonth:    f.DayOfMonth,
	}
}

func NewOneStopItinerary(first, second Flight) Itinerary {
	return Itinerary{
		First:         first,
		Second:        &second,
		TotalDuration: first.Duration + second.Duration,
		TotalCost:     first.Price + second.Price,
		Legs:          2,
		DayOfMonth:    first.DayOfMonth,
	}
}

func (i Itinerary) FirstLegID() int64 {
	return i.First.ID
}

// SecondLegID returns NoSecondLeg for direct itineraries.
func (i Itinerary) SecondLegID() int64 {
	if i.Second == nil {
		return NoSecondLeg
	}
	return i.Second.ID
}

func (i Itinerary) Flights() []Flight {
	if i.Second == nil {
		return []Flight{i.First}
	}
	return []Flight{i.First, *i.Second}
}

// Render assigns the index and the description text.
func (i *Itinerary) Render(index int) {
	i.Index = index

	var sb strings.Builder
	fmt.Fprintf(&sb, "Itinerary %d: %d flight(s), %d minutes\n", index, i.Legs, i.TotalDuration)
	for _, f := range i.Flights() {
		sb.WriteString(f.String())
		sb.WriteByte('\n')
	}
	i.Description = sb.String()
}
