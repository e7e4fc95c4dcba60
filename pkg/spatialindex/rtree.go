package spatialindex

import (
	"math"

	"github.com/lintang-b-s/accessnav/pkg/datastructure"
	"github.com/lintang-b-s/accessnav/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

type Rtree struct {
	tr *rtree.RTreeG[datastructure.Index]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build. one leaf per sidewalk edge, spanning the bounding box of its two endpoints.
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	numEdges := graph.NumberOfEdges()
	done := 0
	graph.ForEdges(func(e *datastructure.Edge) {
		from, _ := graph.GetNodeIndex(e.From)
		to, _ := graph.GetNodeIndex(e.To)

		fromLat, fromLon := graph.GetNodeCoordinates(from)
		toLat, toLon := graph.GetNodeCoordinates(to)

		rt.tr.Insert([2]float64{math.Min(fromLon, toLon), math.Min(fromLat, toLat)},
			[2]float64{math.Max(fromLon, toLon), math.Max(fromLat, toLat)}, e.ID)

		done++
		if numEdges >= 10 && done%(numEdges/10) == 0 {
			log.Debug("Building R-tree spatial index...", zap.Float64("progress", 100*float64(done)/float64(numEdges)))
		}
	})

	log.Info("R-tree spatial index built.", zap.Int("edges", rt.tr.Len()))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius. ids of edges whose bounding box intersects the square of half-side radius (meter)
// around (qLat, qLon), nearest bounding box first. callers filter by exact distance.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []datastructure.Index {
	diagonal := radius * math.Sqrt2
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, diagonal)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, diagonal)

	// squared degree distance from the query to the farthest corner of the search box
	dLon := math.Max(upperLon-qLon, qLon-lowerLon)
	dLat := math.Max(upperLat-qLat, qLat-lowerLat)
	maxDist := dLon*dLon + dLat*dLat

	results := make([]datastructure.Index, 0, 10)
	query := [2]float64{qLon, qLat}
	rt.tr.Nearby(rtree.BoxDist[float64, datastructure.Index](query, query, nil),
		func(min, max [2]float64, data datastructure.Index, dist float64) bool {
			if dist > maxDist {
				return false
			}
			if max[0] < lowerLon || min[0] > upperLon || max[1] < lowerLat || min[1] > upperLat {
				return true
			}
			results = append(results, data)
			return true
		})
	return results
}
