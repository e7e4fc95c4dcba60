package osmparser

import (
	"math"
	"strings"

	"github.com/lintang-b-s/accessnav/pkg"
	"github.com/lintang-b-s/accessnav/pkg/util"
	"github.com/paulmach/osm"
)

type NodeType uint8

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

const (
	DEFAULT_WIDTH_CM = 200.0

	RAISED_KERB_CM  = 15.0
	ROLLED_KERB_CM  = 5.0
	LOWERED_KERB_CM = 3.0
	STEP_HEIGHT_CM  = 18.0
)

var (
	acceptedHighway = map[string]struct{}{
		"footway":       {},
		"pedestrian":    {},
		"path":          {},
		"living_street": {},
		"steps":         {},
		"corridor":      {},
		"crossing":      {},
	}

	// roads that only carry pedestrians on a mapped sidewalk.
	sidewalkHighway = map[string]struct{}{
		"primary":      {},
		"secondary":    {},
		"tertiary":     {},
		"unclassified": {},
		"residential":  {},
		"service":      {},
	}
)

type NodeCoord struct {
	lat float64
	lon float64
}

func NewNodeCoord(lat, lon float64) NodeCoord {
	return NodeCoord{lat, lon}
}

// wayAttributes. accessibility attributes shared by every segment of a way.
type wayAttributes struct {
	surface   pkg.SurfaceType
	slope     float64
	width     float64
	curb      float64
	hasRamp   bool
	temporary string
}

type osmWay struct {
	id    int64
	nodes []int64
	attr  wayAttributes
}

// kerb. curb barrier mapped on a node.
type kerb struct {
	height  float64
	hasRamp bool
}

func acceptOsmWay(way *osm.Way) bool {
	if isRestricted(way.Tags.Find("access")) || isRestricted(way.Tags.Find("foot")) {
		return false
	}
	highway := way.Tags.Find("highway")
	if _, ok := acceptedHighway[highway]; ok {
		return true
	}
	if _, ok := sidewalkHighway[highway]; ok {
		return hasSidewalk(way.Tags)
	}
	if highway == "construction" {
		// footway under construction, kept so the repair restriction can apply
		_, ok := acceptedHighway[way.Tags.Find("construction")]
		return ok
	}
	return false
}

func isRestricted(value string) bool {
	return value == "no" || value == "private"
}

func hasSidewalk(tags osm.Tags) bool {
	switch tags.Find("sidewalk") {
	case "both", "left", "right", "yes":
		return true
	}
	return tags.Find("sidewalk:both") == "yes" || tags.Find("sidewalk:left") == "yes" ||
		tags.Find("sidewalk:right") == "yes" || tags.Find("foot") == "yes" || tags.Find("foot") == "designated"
}

func parseWayAttributes(tags osm.Tags) wayAttributes {
	attr := wayAttributes{
		surface: pkg.GetSurfaceType(tags.Find("surface")),
		width:   DEFAULT_WIDTH_CM,
	}
	if slope, ok := parseIncline(tags.Find("incline")); ok {
		attr.slope = slope
	}
	for _, key := range []string{"sidewalk:width", "footway:width", "width"} {
		if width, ok := parseWidth(tags.Find(key)); ok {
			attr.width = width
			break
		}
	}
	attr.hasRamp = isYes(tags.Find("ramp")) || isYes(tags.Find("ramp:wheelchair")) ||
		isYes(tags.Find("ramp:stroller")) || tags.Find("wheelchair") == "yes"

	if tags.Find("highway") == "steps" {
		attr.curb = STEP_HEIGHT_CM
	}
	attr.temporary = parseTemporary(tags)
	return attr
}

func isYes(value string) bool {
	return value == "yes" || value == "designated"
}

// parseIncline. signed grade in percent. "up"/"down" without a value and non-finite numbers are treated as flat.
// https://wiki.openstreetmap.org/wiki/Key:incline
func parseIncline(value string) (float64, bool) {
	slope, ok := parseInclineValue(value)
	if !ok || math.IsNaN(slope) || math.IsInf(slope, 0) {
		return 0, false
	}
	return slope, true
}

func parseInclineValue(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return 0, false
	case strings.HasSuffix(value, "%"):
		slope, err := util.StringToFloat64(strings.TrimSuffix(value, "%"))
		if err != nil {
			return 0, false
		}
		return slope, true
	case strings.HasSuffix(value, "°"):
		deg, err := util.StringToFloat64(strings.TrimSuffix(value, "°"))
		if err != nil || math.Abs(deg) >= 90 {
			return 0, false
		}
		return math.Tan(deg*math.Pi/180) * 100, true
	case value == "up" || value == "down":
		return 0, false
	default:
		slope, err := util.StringToFloat64(value)
		if err != nil {
			return 0, false
		}
		return slope, true
	}
}

// parseLength. length tag in centimeter, unitless values are meter.
func parseLength(value string) (float64, bool) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return 0, false
	}
	scale := 100.0
	switch {
	case strings.HasSuffix(value, "cm"):
		scale = 1
		value = strings.TrimSuffix(value, "cm")
	case strings.HasSuffix(value, "mm"):
		scale = 0.1
		value = strings.TrimSuffix(value, "mm")
	case strings.HasSuffix(value, "m"):
		value = strings.TrimSuffix(value, "m")
	}
	v, err := util.StringToFloat64(strings.Replace(value, ",", ".", 1))
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v * scale, true
}

func parseWidth(value string) (float64, bool) {
	return parseLength(value)
}

// parseKerb. curb height and ramp flag of a node, from kerb and kerb:height.
// https://wiki.openstreetmap.org/wiki/Key:kerb
func parseKerb(tags osm.Tags) (kerb, bool) {
	k := kerb{}
	found := false
	switch tags.Find("kerb") {
	case "raised", "yes":
		k.height = RAISED_KERB_CM
		found = true
	case "rolled":
		k.height = ROLLED_KERB_CM
		k.hasRamp = true
		found = true
	case "lowered":
		k.height = LOWERED_KERB_CM
		k.hasRamp = true
		found = true
	case "flush", "no":
		found = true
	}
	if height, ok := parseLength(tags.Find("kerb:height")); ok {
		k.height = height
		found = true
	}
	if tags.Find("barrier") == "kerb" {
		found = true
		if k.height == 0 && tags.Find("kerb") == "" && tags.Find("kerb:height") == "" {
			k.height = RAISED_KERB_CM
		}
	}
	if isYes(tags.Find("ramp")) || isYes(tags.Find("ramp:wheelchair")) || tags.Find("wheelchair") == "yes" {
		k.hasRamp = true
	}
	return k, found
}

// parseTemporary. construction becomes a repair restriction, any other temporary tag keeps its value.
func parseTemporary(tags osm.Tags) string {
	if c := tags.Find("construction"); c != "" && c != "no" {
		return pkg.TEMPORARY_REPAIR
	}
	if t := tags.Find("temporary"); t != "" && t != "no" {
		if t == "yes" {
			return "temporary"
		}
		return t
	}
	return ""
}
