package departures

import "github.com/jusunglee/mvg-go/internal/models"

// lineBucket collects the departures of one label by destination,
// remembering the order in which destinations were first seen.
type lineBucket struct {
	destinations map[string][]models.RawDeparture
	order        []string
}

// grouping is an insertion-ordered multimap keyed by label, then destination
type grouping struct {
	lines map[string]*lineBucket
	order []string
}

func newGrouping() *grouping {
	return &grouping{
		lines: make(map[string]*lineBucket),
	}
}

func (g *grouping) add(departure models.RawDeparture) {
	line, ok := g.lines[departure.Label]
	if !ok {
		line = &lineBucket{destinations: make(map[string][]models.RawDeparture)}
		g.lines[departure.Label] = line
		g.order = append(g.order, departure.Label)
	}

	if _, ok := line.destinations[departure.Destination]; !ok {
		line.order = append(line.order, departure.Destination)
	}
	line.destinations[departure.Destination] = append(line.destinations[departure.Destination], departure)
}

// materialize builds the line groups in first-seen order
func (g *grouping) materialize() []models.LineGroup {
	groups := make([]models.LineGroup, 0, len(g.order))

	for _, label := range g.order {
		line := g.lines[label]

		destinations := make([]models.DestinationGroup, 0, len(line.order))
		for _, destination := range line.order {
			destinations = append(destinations, models.DestinationGroup{
				Destination: destination,
				Departures:  line.destinations[destination],
			})
		}

		groups = append(groups, models.LineGroup{
			Label:        label,
			Destinations: destinations,
		})
	}

	return groups
}
