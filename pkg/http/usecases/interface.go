package usecases

import (
	"time"

	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
)

type RoutingEngine interface {
	GetGraph() *da.Graph
	ShortestPath(startId, endId int64, profile da.AccessibilityProfile) *da.RouteResult
}

type CostFunction interface {
	GetWeight(e *da.Edge, profile da.AccessibilityProfile) float64
}

type SpatialIndex interface {
	SearchWithinRadius(float64, float64, float64) []da.Index
}

type Metrics interface {
	ObserveRouteQuery(mobility, outcome string, elapsed time.Duration)
	ObserveRoute(distance float64, score int)
}
