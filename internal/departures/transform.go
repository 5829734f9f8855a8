package departures

import (
	"cmp"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/jusunglee/mvg-go/internal/models"
)

// MaxDeparturesPerDestination is how many departures are kept per destination
const MaxDeparturesPerDestination = 2

// Transform groups departures by line and destination and orders the result
// for display:
//
//   - lines with an underground departure come first, the rest after them,
//     each partition sorted by label
//   - destinations are sorted by name
//   - departures are sorted by realtime departure time and cut to
//     MaxDeparturesPerDestination
func Transform(departures []models.RawDeparture) []models.LineGroup {
	g := newGrouping()
	for _, departure := range departures {
		g.add(departure)
	}

	lines := g.materialize()

	slices.SortStableFunc(lines, func(a, b models.LineGroup) int {
		return strings.Compare(a.Label, b.Label)
	})

	lines = stablePartition(lines, models.LineGroup.HasUnderground)

	for i := range lines {
		finishLine(&lines[i])
	}

	return lines
}

// stablePartition moves the lines matching keep in front of the others
// without changing the relative order inside either group.
func stablePartition(lines []models.LineGroup, keep func(models.LineGroup) bool) []models.LineGroup {
	partitioned := make([]models.LineGroup, 0, len(lines))
	var rest []models.LineGroup

	for _, line := range lines {
		if keep(line) {
			partitioned = append(partitioned, line)
		} else {
			rest = append(rest, line)
		}
	}

	return append(partitioned, rest...)
}

func finishLine(line *models.LineGroup) {
	slices.SortStableFunc(line.Destinations, func(a, b models.DestinationGroup) int {
		return strings.Compare(a.Destination, b.Destination)
	})

	for i := range line.Destinations {
		destination := &line.Destinations[i]

		slices.SortStableFunc(destination.Departures, func(a, b models.RawDeparture) int {
			return cmp.Compare(a.RealtimeDepartureTime, b.RealtimeDepartureTime)
		})

		if len(destination.Departures) > MaxDeparturesPerDestination {
			destination.Departures = destination.Departures[:MaxDeparturesPerDestination]
		}
	}
}
