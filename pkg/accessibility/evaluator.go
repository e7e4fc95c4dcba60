package accessibility

import (
	"github.com/lintang-b-s/accessnav/pkg"
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
)

// reason tags reported for edges that are not fully accessible.
const (
	REASON_CURB_HEIGHT           = "curb_height"
	REASON_STEEP_SLOPE           = "steep_slope"
	REASON_ROUGH_SURFACE         = "rough_surface"
	REASON_TEMPORARY_RESTRICTION = "temporary_restriction"
	REASON_NO_RAMP               = "no_ramp"
	REASON_TOO_NARROW            = "too_narrow"
)

// IsAccessible. the hard gate: an edge failing any single threshold of the profile is impassable.
// thresholds are inclusive, e.g. curb == MaxCurbHeight still passes.
func IsAccessible(e *da.Edge, p da.AccessibilityProfile) bool {
	if e.Curb > p.MaxCurbHeight && !e.HasRamp {
		return false
	}
	if e.GetSlopeMagnitude() > p.MaxSlope {
		return false
	}
	if e.Width < p.MinWidth {
		return false
	}
	if e.Temporary == pkg.TEMPORARY_REPAIR && p.IsUnassistedWheelchair() {
		return false
	}
	return true
}

// Classify. coarse label for reporting. never used to decide traversal.
func Classify(e *da.Edge, p da.AccessibilityProfile) da.AccessibilityLevel {
	if !IsAccessible(e, p) {
		return da.INACCESSIBLE
	}
	if e.Curb > pkg.PARTIAL_CURB_HEIGHT_CM || e.GetSlopeMagnitude() > pkg.PARTIAL_SLOPE_PERCENT ||
		isRoughSurface(e.Surface) || e.HasTemporaryRestriction() {
		return da.PARTIAL
	}
	return da.ACCESSIBLE
}

// Reasons. every reason tag that applies to e, in a fixed order.
func Reasons(e *da.Edge, p da.AccessibilityProfile) []string {
	reasons := make([]string, 0, 2)
	if e.Curb > pkg.PARTIAL_CURB_HEIGHT_CM {
		reasons = append(reasons, REASON_CURB_HEIGHT)
	}
	if e.GetSlopeMagnitude() > pkg.PARTIAL_SLOPE_PERCENT {
		reasons = append(reasons, REASON_STEEP_SLOPE)
	}
	if isRoughSurface(e.Surface) {
		reasons = append(reasons, REASON_ROUGH_SURFACE)
	}
	if e.HasTemporaryRestriction() {
		reasons = append(reasons, REASON_TEMPORARY_RESTRICTION)
	}
	if e.Curb > 0 && !e.HasRamp {
		reasons = append(reasons, REASON_NO_RAMP)
	}
	if e.Width < p.MinWidth {
		reasons = append(reasons, REASON_TOO_NARROW)
	}
	return reasons
}

func isRoughSurface(s pkg.SurfaceType) bool {
	return s == pkg.COBBLESTONE || s == pkg.GRAVEL
}
