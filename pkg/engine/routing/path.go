package routing

import (
	"github.com/lintang-b-s/accessnav/pkg/accessibility"
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
	"github.com/lintang-b-s/accessnav/pkg/geo"
	"github.com/lintang-b-s/accessnav/pkg/util"
)

// reconstructPath. walk the back-pointers from t to s. returns node ids and edges in travel order.
func (as *AStar) reconstructPath(s, t da.Index) ([]int64, []geo.Coordinate, []da.Edge, float64) {
	graph := as.engine.graph

	path := make([]int64, 0, 16)
	coords := make([]geo.Coordinate, 0, 16)
	edges := make([]da.Edge, 0, 16)
	totalDistance := 0.0

	cur := t
	for {
		node := graph.GetNode(cur)
		path = append(path, node.ID)
		coords = append(coords, geo.NewCoordinate(node.Lat, node.Lon))
		if cur == s {
			break
		}

		curInfo := as.info[cur]
		e := graph.GetEdge(curInfo.GetParentEdge())
		edges = append(edges, *e)
		totalDistance += e.Distance
		cur = curInfo.GetParent()
	}

	return util.ReverseG(path), util.ReverseG(coords), util.ReverseG(edges), totalDistance
}

func (as *AStar) buildRouteResult(s, t da.Index, profile da.AccessibilityProfile) *da.RouteResult {
	path, coords, edges, totalDistance := as.reconstructPath(s, t)
	score, issues := accessibility.Score(edges, profile)

	return &da.RouteResult{
		Path:               path,
		Coordinates:        coords,
		Edges:              edges,
		TotalDistance:      totalDistance,
		TotalWeight:        as.info[t].GetWeight(),
		AccessibilityScore: score,
		Issues:             issues,
	}
}
