package accessibility

import (
	"math"

	"github.com/lintang-b-s/accessnav/pkg"
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
)

func levelScore(level da.AccessibilityLevel) float64 {
	switch level {
	case da.ACCESSIBLE:
		return 100
	case da.PARTIAL:
		return 60
	default:
		return 0
	}
}

// Score. accessibility score (0-100) of a path and its issue list, in path order.
// an empty path scores 100.
func Score(edges []da.Edge, p da.AccessibilityProfile) (int, []da.Issue) {
	issues := make([]da.Issue, 0)
	if len(edges) == 0 {
		return 100, issues
	}

	sum := 0.0
	for i := range edges {
		e := &edges[i]
		level := Classify(e, p)
		sum += levelScore(level)
		if level != da.ACCESSIBLE {
			issues = append(issues, da.NewIssue(*e, level, Reasons(e, p)))
		}
	}

	return int(math.Round(sum / float64(len(edges)))), issues
}

func GetSpeed(mobility pkg.MobilityType) float64 {
	switch mobility {
	case pkg.WHEELCHAIR:
		return pkg.WHEELCHAIR_SPEED
	case pkg.WHEELCHAIR_ASSISTED:
		return pkg.WHEELCHAIR_ASSISTED_SPEED
	case pkg.STROLLER:
		return pkg.STROLLER_SPEED
	case pkg.CRUTCHES:
		return pkg.CRUTCHES_SPEED
	default:
		return pkg.DEFAULT_SPEED
	}
}

// EstimateTravelMinutes. ceil(distance / speed of the mobility type), distance in meter.
func EstimateTravelMinutes(totalDistance float64, mobility pkg.MobilityType) int {
	return int(math.Ceil(totalDistance / GetSpeed(mobility)))
}
