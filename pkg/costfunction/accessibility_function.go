package costfunction

import (
	"github.com/lintang-b-s/accessnav/pkg"
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
)

var surfacePenalty = map[pkg.SurfaceType]float64{
	pkg.ASPHALT:     1.0,
	pkg.CONCRETE:    1.0,
	pkg.WOOD:        1.1,
	pkg.GRAVEL:      1.5,
	pkg.COBBLESTONE: 1.8,
	pkg.STONE:       2.0,
	pkg.SAND:        2.5,
}

const defaultSurfacePenalty = 1.2

func GetSurfacePenalty(s pkg.SurfaceType) float64 {
	if penalty, ok := surfacePenalty[s]; ok {
		return penalty
	}
	return defaultSurfacePenalty
}

type AccessibilityCostFunction struct {
}

func NewAccessibilityCostFunction() *AccessibilityCostFunction {
	return &AccessibilityCostFunction{}
}

// GetWeight. distance scaled by surface, slope, curb, width and temporary restriction penalties, in that order.
// every factor is >= 1.
func (cf *AccessibilityCostFunction) GetWeight(e *da.Edge, p da.AccessibilityProfile) float64 {
	weight := e.Distance

	weight *= GetSurfacePenalty(e.Surface)

	slope := e.GetSlopeMagnitude()
	if slope > 0 {
		weight *= 1 + slope/10
		if p.IsUnassistedWheelchair() && slope > pkg.WHEELCHAIR_STEEP_SLOPE_PERCENT {
			weight *= pkg.WHEELCHAIR_STEEP_SLOPE_PENALTY
		}
	}

	if e.Curb > 0 && !e.HasRamp {
		weight *= 1 + e.Curb/5
	}

	if e.Width < pkg.NARROW_WIDTH_CM {
		weight *= 1 + (pkg.NARROW_WIDTH_CM-e.Width)/100
	}

	if e.HasTemporaryRestriction() {
		weight *= pkg.TEMPORARY_RESTRICTION_PENALTY
	}

	return weight
}
