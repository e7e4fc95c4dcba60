package routing

import (
	lru "github.com/hashicorp/golang-lru/v2"
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
	"go.uber.org/zap"
)

type routeCacheKey struct {
	startId, endId int64
	profile        da.AccessibilityProfile
}

// RoutingEngine. shared, read-only routing state. every query gets its own search state.
type RoutingEngine struct {
	graph           *da.Graph
	costFunction    CostFunction
	logger          *zap.Logger
	routeCache      *lru.Cache[routeCacheKey, *da.RouteResult]
	maxSettledNodes int
}

// NewRoutingEngine. cacheSize <= 0 disables the route cache, maxSettledNodes <= 0 disables the search bound.
func NewRoutingEngine(graph *da.Graph, costFunction CostFunction, logger *zap.Logger,
	cacheSize, maxSettledNodes int) (*RoutingEngine, error) {
	e := &RoutingEngine{
		graph:           graph,
		costFunction:    costFunction,
		logger:          logger,
		maxSettledNodes: maxSettledNodes,
	}
	if cacheSize > 0 {
		cache, err := lru.New[routeCacheKey, *da.RouteResult](cacheSize)
		if err != nil {
			return nil, err
		}
		e.routeCache = cache
	}
	return e, nil
}

func (re *RoutingEngine) GetGraph() *da.Graph {
	return re.graph
}

func (re *RoutingEngine) GetCostFunction() CostFunction {
	return re.costFunction
}

// ShortestPath. accessibility-aware least-cost route from startId to endId.
// results are cached per (start, end, profile); callers always get their own copy.
func (re *RoutingEngine) ShortestPath(startId, endId int64, profile da.AccessibilityProfile) *da.RouteResult {
	key := routeCacheKey{startId: startId, endId: endId, profile: profile}
	if re.routeCache != nil {
		if cached, ok := re.routeCache.Get(key); ok {
			return cached.Clone()
		}
	}

	astar := NewAStar(re)
	res := astar.ShortestPathSearch(startId, endId, profile)

	if re.logger != nil {
		re.logger.Debug("route search finished",
			zap.Int64("start", startId), zap.Int64("end", endId),
			zap.String("mobility", profile.MobilityType.String()),
			zap.Int("settled_nodes", astar.GetNumSettledNodes()),
			zap.Bool("not_found", res.NotFound))
	}

	if re.routeCache != nil {
		re.routeCache.Add(key, res.Clone())
	}
	return res
}

func (re *RoutingEngine) PurgeCache() {
	if re.routeCache != nil {
		re.routeCache.Purge()
	}
}
