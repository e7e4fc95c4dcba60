package datastructure

import (
	"github.com/lintang-b-s/accessnav/pkg"
)

// AccessibilityProfile. rider thresholds of a single query. passed by value, never mutated by the engine.
type AccessibilityProfile struct {
	MobilityType  pkg.MobilityType `json:"mobility_type"`
	MaxCurbHeight float64          `json:"max_curb_height"` // cm
	MaxSlope      float64          `json:"max_slope"`       // percent
	MinWidth      float64          `json:"min_width"`       // cm
}

func NewAccessibilityProfile(mobility pkg.MobilityType, maxCurbHeight, maxSlope, minWidth float64) AccessibilityProfile {
	return AccessibilityProfile{
		MobilityType:  mobility,
		MaxCurbHeight: maxCurbHeight,
		MaxSlope:      maxSlope,
		MinWidth:      minWidth,
	}
}

// DefaultProfile. preset thresholds per mobility type, used when a caller only names the mobility type.
func DefaultProfile(mobility pkg.MobilityType) AccessibilityProfile {
	switch mobility {
	case pkg.WHEELCHAIR:
		return NewAccessibilityProfile(mobility, 2, 8, 90)
	case pkg.WHEELCHAIR_ASSISTED:
		return NewAccessibilityProfile(mobility, 5, 12, 90)
	case pkg.STROLLER:
		return NewAccessibilityProfile(mobility, 5, 10, 70)
	case pkg.CRUTCHES:
		return NewAccessibilityProfile(mobility, 10, 12, 60)
	default:
		return NewAccessibilityProfile(mobility, 5, 10, 80)
	}
}

// IsUnassistedWheelchair. only the unassisted wheelchair gets the steep slope penalty and the repair ban.
func (p AccessibilityProfile) IsUnassistedWheelchair() bool {
	return p.MobilityType == pkg.WHEELCHAIR
}

// AtLeastAsPermissiveAs. true if p allows everything q allows on every threshold.
func (p AccessibilityProfile) AtLeastAsPermissiveAs(q AccessibilityProfile) bool {
	return p.MaxCurbHeight >= q.MaxCurbHeight && p.MaxSlope >= q.MaxSlope && p.MinWidth <= q.MinWidth
}
