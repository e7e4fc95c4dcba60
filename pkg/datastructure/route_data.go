package datastructure

import "github.com/lintang-b-s/accessnav/pkg/geo"

type AccessibilityLevel uint8

const (
	ACCESSIBLE AccessibilityLevel = iota
	PARTIAL
	INACCESSIBLE
)

func (l AccessibilityLevel) String() string {
	switch l {
	case ACCESSIBLE:
		return "accessible"
	case PARTIAL:
		return "partial"
	default:
		return "inaccessible"
	}
}

// Issue. a path edge that is not fully accessible, with every matching reason.
type Issue struct {
	Edge    Edge               `json:"edge"`
	Level   AccessibilityLevel `json:"level"`
	Reasons []string           `json:"reasons"`
}

func NewIssue(edge Edge, level AccessibilityLevel, reasons []string) Issue {
	return Issue{Edge: edge, Level: level, Reasons: reasons}
}

type RouteResult struct {
	Path               []int64          `json:"path"`
	Coordinates        []geo.Coordinate `json:"-"`
	Edges              []Edge           `json:"edges"`
	TotalDistance      float64          `json:"total_distance"` // meter
	TotalWeight        float64          `json:"total_weight"`
	AccessibilityScore int              `json:"accessibility_score"`
	Issues             []Issue          `json:"issues"`
	NotFound           bool             `json:"not_found"`
}

// NewEmptyRouteResult. result for a query whose start or end node is not in the graph.
func NewEmptyRouteResult() *RouteResult {
	return &RouteResult{
		Path:        []int64{},
		Coordinates: []geo.Coordinate{},
		Edges:       []Edge{},
		Issues:      []Issue{},
	}
}

// NewNotFoundRouteResult. result for a query with no accessible path.
func NewNotFoundRouteResult() *RouteResult {
	res := NewEmptyRouteResult()
	res.NotFound = true
	return res
}

func (r *RouteResult) IsEmpty() bool {
	return len(r.Path) == 0
}

// Found. a route exists and was reconstructed.
func (r *RouteResult) Found() bool {
	return !r.NotFound && len(r.Path) > 0
}

// Clone. deep copy, so cached results are never shared with callers.
func (r *RouteResult) Clone() *RouteResult {
	c := &RouteResult{
		Path:               append([]int64{}, r.Path...),
		Coordinates:        append([]geo.Coordinate{}, r.Coordinates...),
		Edges:              append([]Edge{}, r.Edges...),
		TotalDistance:      r.TotalDistance,
		TotalWeight:        r.TotalWeight,
		AccessibilityScore: r.AccessibilityScore,
		Issues:             make([]Issue, len(r.Issues)),
		NotFound:           r.NotFound,
	}
	for i, issue := range r.Issues {
		c.Issues[i] = NewIssue(issue.Edge, issue.Level, append([]string{}, issue.Reasons...))
	}
	return c
}
