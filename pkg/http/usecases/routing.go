package usecases

import (
	"errors"
	"time"

	"github.com/lintang-b-s/accessnav/pkg"
	"github.com/lintang-b-s/accessnav/pkg/accessibility"
	"github.com/lintang-b-s/accessnav/pkg/concurrent"
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
	"github.com/lintang-b-s/accessnav/pkg/geo"
	"github.com/lintang-b-s/accessnav/pkg/metrics"
	"github.com/lintang-b-s/accessnav/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrPathNotFound = errors.New("no accessible path found")
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
	ErrNoNearbyEdge = errors.New("no sidewalk near the given coordinate")
)

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	costFunction CostFunction
	spatialIndex SpatialIndex
	metric       Metrics
	searchRadius float64 // meter
	numWorkers   int
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, costFunction CostFunction, spatialIndex SpatialIndex,
	metric Metrics, searchRadius float64, numWorkers int) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		costFunction: costFunction,
		spatialIndex: spatialIndex,
		metric:       metric,
		searchRadius: searchRadius,
		numWorkers:   numWorkers,
	}
}

// Route. a found route with its presentation extras.
type Route struct {
	Result     *da.RouteResult
	Polyline   string
	EtaMinutes int
}

func newRoute(res *da.RouteResult, mobility pkg.MobilityType) *Route {
	return &Route{
		Result:     res,
		Polyline:   geo.PolylineFromCoords(res.Coordinates),
		EtaMinutes: accessibility.EstimateTravelMinutes(res.TotalDistance, mobility),
	}
}

// ProfileRoute. outcome of one mobility preset in a profile comparison.
type ProfileRoute struct {
	Profile da.AccessibilityProfile
	Route   *Route
	Found   bool
}

type EdgeReport struct {
	Edge       da.Edge
	Accessible bool
	Level      da.AccessibilityLevel
	Reasons    []string
	Weight     float64
}

// ShortestPath. snap both coordinates to the nearest sidewalk node, then route between them.
func (rs *RoutingService) ShortestPath(origLat, origLon, dstLat, dstLon float64,
	profile da.AccessibilityProfile) (*Route, error) {
	startId, err := rs.SnapToNode(origLat, origLon)
	if err != nil {
		return nil, err
	}
	endId, err := rs.SnapToNode(dstLat, dstLon)
	if err != nil {
		return nil, err
	}
	return rs.ShortestPathByNode(startId, endId, profile)
}

func (rs *RoutingService) ShortestPathByNode(startId, endId int64, profile da.AccessibilityProfile) (*Route, error) {
	if err := rs.checkNodes(startId, endId); err != nil {
		return nil, err
	}

	start := time.Now()
	res := rs.engine.ShortestPath(startId, endId, profile)
	rs.observe(profile, res, time.Since(start))

	if res.NotFound {
		return nil, util.WrapErrorf(ErrPathNotFound, util.ErrNotFound,
			"no path from node %d to node %d for %s", startId, endId, profile.MobilityType)
	}
	return newRoute(res, profile.MobilityType), nil
}

// CompareProfiles. route startId to endId once per mobility preset, concurrently.
func (rs *RoutingService) CompareProfiles(startId, endId int64) ([]ProfileRoute, error) {
	if err := rs.checkNodes(startId, endId); err != nil {
		return nil, err
	}

	profiles := make([]da.AccessibilityProfile, 0, len(pkg.MobilityTypes()))
	for _, m := range pkg.MobilityTypes() {
		profiles = append(profiles, da.DefaultProfile(m))
	}

	return concurrent.Map(rs.numWorkers, profiles, func(profile da.AccessibilityProfile) ProfileRoute {
		start := time.Now()
		res := rs.engine.ShortestPath(startId, endId, profile)
		rs.observe(profile, res, time.Since(start))

		pr := ProfileRoute{Profile: profile, Found: res.Found()}
		if pr.Found {
			pr.Route = newRoute(res, profile.MobilityType)
		}
		return pr
	}), nil
}

// EdgeAccessibility. how a single sidewalk edge is judged and costed for a profile.
func (rs *RoutingService) EdgeAccessibility(edgeId da.Index, profile da.AccessibilityProfile) (*EdgeReport, error) {
	graph := rs.engine.GetGraph()
	if !graph.IsValidEdge(edgeId) {
		return nil, util.WrapErrorf(ErrEdgeNotFound, util.ErrNotFound, "edge %d", edgeId)
	}
	e := graph.GetEdge(edgeId)

	report := &EdgeReport{
		Edge:       *e,
		Accessible: accessibility.IsAccessible(e, profile),
		Level:      accessibility.Classify(e, profile),
		Reasons:    accessibility.Reasons(e, profile),
		Weight:     pkg.INF_WEIGHT,
	}
	if report.Accessible {
		report.Weight = rs.costFunction.GetWeight(e, profile)
	}
	return report, nil
}

func (rs *RoutingService) checkNodes(ids ...int64) error {
	graph := rs.engine.GetGraph()
	for _, id := range ids {
		if _, ok := graph.GetNodeIndex(id); !ok {
			return util.WrapErrorf(ErrNodeNotFound, util.ErrNotFound, "node %d", id)
		}
	}
	return nil
}

func (rs *RoutingService) observe(profile da.AccessibilityProfile, res *da.RouteResult, elapsed time.Duration) {
	outcome := metrics.OUTCOME_FOUND
	if res.NotFound {
		outcome = metrics.OUTCOME_NOT_FOUND
	}
	rs.log.Debug("route query",
		zap.String("mobility", profile.MobilityType.String()),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed))

	if rs.metric == nil {
		return
	}
	rs.metric.ObserveRouteQuery(profile.MobilityType.String(), outcome, elapsed)
	if res.Found() {
		rs.metric.ObserveRoute(res.TotalDistance, res.AccessibilityScore)
	}
}
