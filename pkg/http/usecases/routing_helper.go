package usecases

import (
	"math"

	"github.com/lintang-b-s/accessnav/pkg/geo"
	"github.com/lintang-b-s/accessnav/pkg/util"
)

// SnapToNode. the sidewalk node nearest to (lat, lon): take the closest edge within the search radius,
// then whichever of its endpoints is closer to the projection of the point onto the edge.
func (rs *RoutingService) SnapToNode(lat, lon float64) (int64, error) {
	graph := rs.engine.GetGraph()
	candidates := rs.spatialIndex.SearchWithinRadius(lat, lon, rs.searchRadius)

	query := geo.NewCoordinate(lat, lon)
	bestDist := math.Inf(1)
	bestNode := int64(-1)
	found := false

	for _, eId := range candidates {
		e := graph.GetEdge(eId)
		u, _ := graph.GetNodeIndex(e.From)
		v, _ := graph.GetNodeIndex(e.To)
		a := geo.NewCoordinate(graph.GetNodeCoordinates(u))
		b := geo.NewCoordinate(graph.GetNodeCoordinates(v))

		dist := geo.PointLinePerpendicularDistance(a, b, query)
		if dist > rs.searchRadius || dist >= bestDist {
			continue
		}
		bestDist = dist
		found = true

		proj := geo.ProjectPointToLineCoord(a, b, query)
		if geo.CalculateHaversineDistance(proj.Lat, proj.Lon, a.Lat, a.Lon) <=
			geo.CalculateHaversineDistance(proj.Lat, proj.Lon, b.Lat, b.Lon) {
			bestNode = e.From
		} else {
			bestNode = e.To
		}
	}

	if !found {
		return 0, util.WrapErrorf(ErrNoNearbyEdge, util.ErrNotFound,
			"no sidewalk within %.0f m of (%f, %f)", rs.searchRadius, lat, lon)
	}
	return bestNode, nil
}
