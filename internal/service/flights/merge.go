package flights

import "github.com/Domenick1991/flightres/internal/domain"

// Merge combines two ranked lists into one ordered by total duration. On
// equal durations the direct itinerary goes first only when its flight id
// is smaller than the first leg of the one-stop itinerary. The inputs keep
// their relative order.
func Merge(direct, oneStop []domain.Itinerary) []domain.Itinerary {
	out := make([]domain.Itinerary, 0, len(direct)+len(oneStop))

	i, j := 0, 0
	for i < len(direct) && j < len(oneStop) {
		if ranksBefore(direct[i], oneStop[j]) {
			out = append(out, direct[i])
			i++
		} else {
			out = append(out, oneStop[j])
			j++
		}
	}
	out = append(out, direct[i:]...)
	out = append(out, oneStop[j:]...)
	return out
}

func ranksBefore(a, b domain.Itinerary) bool {
	if a.TotalDuration != b.TotalDuration {
		return a.TotalDuration < b.TotalDuration
	}
	return a.FirstLegID() < b.FirstLegID()
}
