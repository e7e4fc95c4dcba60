package routing

import (
	"github.com/lintang-b-s/accessnav/pkg/accessibility"
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
)

// AStar. single accessibility-aware A* query. not safe for concurrent use; create one per query.
type AStar struct {
	engine *RoutingEngine

	// arena indexed by node slot
	info    []VertexInfo
	pqNodes []*da.PriorityQueueNode[da.Index]

	pq *da.MinHeap[da.Index]

	target da.Index

	numSettledNodes int
	maxSettledNodes int
}

func NewAStar(engine *RoutingEngine) *AStar {
	return &AStar{
		engine:          engine,
		pq:              da.NewFourAryHeap[da.Index](),
		maxSettledNodes: engine.maxSettledNodes,
	}
}

// SetMaxSettledNodes. bound the number of open-set extractions, hitting the bound ends the search as not found.
func (as *AStar) SetMaxSettledNodes(maxSettledNodes int) {
	as.maxSettledNodes = maxSettledNodes
}

func (as *AStar) GetNumSettledNodes() int {
	return as.numSettledNodes
}

// ShortestPathSearch. least-cost route from startId to endId for the given profile.
// unknown start/end yields an empty result, an unreachable end yields a NotFound result.
func (as *AStar) ShortestPathSearch(startId, endId int64, profile da.AccessibilityProfile) *da.RouteResult {
	graph := as.engine.graph

	s, okStart := graph.GetNodeIndex(startId)
	t, okEnd := graph.GetNodeIndex(endId)
	if !okStart || !okEnd {
		return da.NewEmptyRouteResult()
	}

	if !graph.SameComponent(s, t) {
		return da.NewNotFoundRouteResult()
	}

	as.init(graph.NumberOfNodes(), t)

	as.info[s] = NewVertexInfo(0, da.INVALID_INDEX, da.INVALID_INDEX)
	as.pqNodes[s] = da.NewPriorityQueueNode(as.heuristic(s), s)
	as.pq.Insert(as.pqNodes[s])

	for !as.pq.IsEmpty() {
		if as.maxSettledNodes > 0 && as.numSettledNodes >= as.maxSettledNodes {
			return da.NewNotFoundRouteResult()
		}

		queryKey, _ := as.pq.ExtractMin()
		u := queryKey.GetItem()
		as.numSettledNodes++

		if u == t {
			return as.buildRouteResult(s, t, profile)
		}

		as.relaxEdges(u, profile)
	}

	return da.NewNotFoundRouteResult()
}

func (as *AStar) init(numberOfNodes int, target da.Index) {
	as.info = make([]VertexInfo, numberOfNodes)
	for i := range as.info {
		as.info[i] = newUnreachedVertexInfo()
	}
	as.pqNodes = make([]*da.PriorityQueueNode[da.Index], numberOfNodes)
	as.pq.Clear()
	as.numSettledNodes = 0
	as.target = target
}

func (as *AStar) relaxEdges(u da.Index, profile da.AccessibilityProfile) {
	uWeight := as.info[u].GetWeight()

	as.engine.graph.ForNeighbors(u, func(v da.Index, e *da.Edge) {
		// inaccessible edges are never costed nor enqueued
		if !accessibility.IsAccessible(e, profile) {
			return
		}

		newWeight := uWeight + as.engine.costFunction.GetWeight(e, profile)
		if newWeight >= as.info[v].GetWeight() {
			return
		}

		as.info[v] = NewVertexInfo(newWeight, u, e.ID)

		priority := newWeight + as.heuristic(v)
		if as.pqNodes[v] == nil {
			as.pqNodes[v] = da.NewPriorityQueueNode(priority, v)
		}
		as.pq.InsertOrDecrease(as.pqNodes[v], priority)
	})
}

// heuristic. straight-line distance to the target, never above the remaining cost since weight >= distance.
func (as *AStar) heuristic(u da.Index) float64 {
	return as.engine.graph.GetHaversineDistanceFromUtoV(u, as.target)
}
