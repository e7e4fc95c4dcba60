package pkg

import "strings"

// enum of sidewalk surface material
type SurfaceType uint8

const (
	ASPHALT SurfaceType = iota
	CONCRETE
	WOOD
	GRAVEL
	COBBLESTONE
	STONE
	SAND
	UNKNOWN_SURFACE
)

// enum of rider mobility type
type MobilityType uint8

const (
	WHEELCHAIR MobilityType = iota
	WHEELCHAIR_ASSISTED
	STROLLER
	CRUTCHES
	UNKNOWN_MOBILITY
)

const (
	INF_WEIGHT float64 = 1e15

	EARTH_RADIUS_M = 6371000.0

	// classification thresholds, independent of the rider profile.
	PARTIAL_CURB_HEIGHT_CM = 3.0
	PARTIAL_SLOPE_PERCENT  = 5.0

	NARROW_WIDTH_CM                = 150.0
	WHEELCHAIR_STEEP_SLOPE_PERCENT = 5.0
	WHEELCHAIR_STEEP_SLOPE_PENALTY = 1.5
	TEMPORARY_RESTRICTION_PENALTY  = 2.0

	TEMPORARY_REPAIR = "repair"

	// travel speed in meter/minute
	WHEELCHAIR_SPEED          = 40.0
	WHEELCHAIR_ASSISTED_SPEED = 50.0
	STROLLER_SPEED            = 60.0
	CRUTCHES_SPEED            = 30.0
	DEFAULT_SPEED             = 50.0
)

// GetSurfaceType. map an openstreetmap-like surface value to SurfaceType.
// https://wiki.openstreetmap.org/wiki/Key:surface
func GetSurfaceType(surface string) SurfaceType {
	switch strings.ToLower(strings.TrimSpace(surface)) {
	case "asphalt":
		return ASPHALT
	case "concrete", "concrete:plates", "concrete:lanes", "paved":
		return CONCRETE
	case "wood":
		return WOOD
	case "gravel", "fine_gravel", "pebblestone":
		return GRAVEL
	case "cobblestone", "sett", "unhewn_cobblestone":
		return COBBLESTONE
	case "stone":
		return STONE
	case "sand":
		return SAND
	default:
		return UNKNOWN_SURFACE
	}
}

func (s SurfaceType) String() string {
	switch s {
	case ASPHALT:
		return "asphalt"
	case CONCRETE:
		return "concrete"
	case WOOD:
		return "wood"
	case GRAVEL:
		return "gravel"
	case COBBLESTONE:
		return "cobblestone"
	case STONE:
		return "stone"
	case SAND:
		return "sand"
	default:
		return "unknown"
	}
}

func GetMobilityType(mobility string) MobilityType {
	switch strings.ToLower(strings.TrimSpace(mobility)) {
	case "wheelchair":
		return WHEELCHAIR
	case "wheelchair-assisted", "wheelchair_assisted":
		return WHEELCHAIR_ASSISTED
	case "stroller":
		return STROLLER
	case "crutches":
		return CRUTCHES
	default:
		return UNKNOWN_MOBILITY
	}
}

func (m MobilityType) String() string {
	switch m {
	case WHEELCHAIR:
		return "wheelchair"
	case WHEELCHAIR_ASSISTED:
		return "wheelchair-assisted"
	case STROLLER:
		return "stroller"
	case CRUTCHES:
		return "crutches"
	default:
		return "unknown"
	}
}

func MobilityTypes() []MobilityType {
	return []MobilityType{WHEELCHAIR, WHEELCHAIR_ASSISTED, STROLLER, CRUTCHES}
}
