package planning

import (
	"fmt"
	"math"
)

type guidance struct {
	planNote string
	stopNote string
	tips     []string
	pros     []string
	cons     []string
}

func guidanceFor(theme Theme, avgAgeMonths float64) guidance {
	age := fmt.Sprintf("%d-month-old", int(math.Round(avgAgeMonths)))

	switch theme {
	case ThemeOutdoor:
		return guidance{
			planNote: fmt.Sprintf("Fresh air and open space, paced for a %s. Pack layers and a rain cover.", age),
			stopNote: fmt.Sprintf("Great for letting a %s explore outdoors.", age),
			tips: []string{
				"Bring a picnic blanket and snacks",
				"Check the forecast before leaving",
				fmt.Sprintf("Plan a nap in the buggy for your %s", age),
			},
			pros: []string{"Free or low cost", "Plenty of space to move"},
			cons: []string{"Weather dependent", "Limited changing facilities"},
		}
	case ThemeIndoor:
		return guidance{
			planNote: fmt.Sprintf("Warm, dry and stimulating, chosen with a %s in mind.", age),
			stopNote: fmt.Sprintf("Indoor fun suited to a %s.", age),
			tips: []string{
				"Arrive at opening time to avoid crowds",
				"Use the baby changing rooms on arrival",
				fmt.Sprintf("Look for quiet corners if your %s gets overwhelmed", age),
			},
			pros: []string{"Works in any weather", "Toilets and cafes on site"},
			cons: []string{"Can get busy at weekends", "Entry fees may apply"},
		}
	default:
		return guidance{
			planNote: fmt.Sprintf("A bit of everything, with shorter visits to suit a %s.", age),
			stopNote: fmt.Sprintf("One of today's top picks for a %s.", age),
			tips: []string{
				"Keep the changing bag stocked between stops",
				fmt.Sprintf("Shorter visits help a %s stay happy", age),
			},
			pros: []string{"Variety keeps everyone interested", "Highest-rated venues nearby"},
			cons: []string{"More time in the car", "Less time at each stop"},
		}
	}
}
