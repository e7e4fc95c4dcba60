package routing

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/lintang-b-s/accessnav/pkg"
	"github.com/lintang-b-s/accessnav/pkg/accessibility"
	"github.com/lintang-b-s/accessnav/pkg/costfunction"
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
	"github.com/lintang-b-s/accessnav/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	nodeA int64 = iota + 1
	nodeB
	nodeC
	nodeD
)

func clearEdge(from, to int64, dist float64) da.Edge {
	return da.NewEdge(from, to, dist, pkg.ASPHALT, 0, false, 0, 200, "")
}

func newTestEngine(t *testing.T, nodes []da.Node, edges []da.Edge, cacheSize int) *RoutingEngine {
	t.Helper()
	g, err := da.NewGraph(nodes, edges)
	require.NoError(t, err)
	re, err := NewRoutingEngine(g, costfunction.NewAccessibilityCostFunction(), zap.NewNop(), cacheSize, 0)
	require.NoError(t, err)
	return re
}

// A (0,0) -- B (0,0.0008) -- C (0,0.0012), ~89m and ~44m apart.
func chainEngine(t *testing.T, bc da.Edge) *RoutingEngine {
	return newTestEngine(t, []da.Node{
		da.NewNode(nodeA, 0, 0, "A"),
		da.NewNode(nodeB, 0, 0.0008, "B"),
		da.NewNode(nodeC, 0, 0.0012, "C"),
	}, []da.Edge{clearEdge(nodeA, nodeB, 100), bc}, 0)
}

// A -- B -- C is shorter than A -- D -- C, B-C climbs 6%.
func diamondEngine(t *testing.T) *RoutingEngine {
	return newTestEngine(t, []da.Node{
		da.NewNode(nodeA, 0, 0, "A"),
		da.NewNode(nodeB, 0.0003, 0.001, "B"),
		da.NewNode(nodeC, 0, 0.002, "C"),
		da.NewNode(nodeD, -0.0006, 0.001, "D"),
	}, []da.Edge{
		clearEdge(nodeA, nodeB, 120),
		da.NewEdge(nodeB, nodeC, 120, pkg.ASPHALT, 0, false, 6, 200, ""),
		clearEdge(nodeA, nodeD, 160),
		clearEdge(nodeD, nodeC, 160),
	}, 0)
}

func TestSameStartAndEnd(t *testing.T) {
	re := chainEngine(t, clearEdge(nodeB, nodeC, 50))
	res := re.ShortestPath(nodeB, nodeB, da.DefaultProfile(pkg.WHEELCHAIR))

	assert.False(t, res.NotFound)
	assert.Equal(t, []int64{nodeB}, res.Path)
	assert.Empty(t, res.Edges)
	assert.Equal(t, 0.0, res.TotalDistance)
	assert.Equal(t, 0.0, res.TotalWeight)
	assert.Equal(t, 100, res.AccessibilityScore)
	assert.Empty(t, res.Issues)
}

func TestDisconnectedNodes(t *testing.T) {
	re := newTestEngine(t, []da.Node{
		da.NewNode(nodeA, 0, 0, "A"),
		da.NewNode(nodeB, 0, 0.001, "B"),
	}, nil, 0)

	for _, mobility := range pkg.MobilityTypes() {
		res := re.ShortestPath(nodeA, nodeB, da.NewAccessibilityProfile(mobility, 100, 100, 0))
		assert.True(t, res.NotFound)
		assert.Empty(t, res.Path)
		assert.Empty(t, res.Edges)
		assert.Empty(t, res.Issues)
		assert.Equal(t, 0.0, res.TotalDistance)
	}
}

func TestUnknownEndpoint(t *testing.T) {
	re := chainEngine(t, clearEdge(nodeB, nodeC, 50))

	res := re.ShortestPath(nodeA, 404, da.DefaultProfile(pkg.STROLLER))
	assert.False(t, res.NotFound)
	assert.True(t, res.IsEmpty())

	res = re.ShortestPath(404, nodeA, da.DefaultProfile(pkg.STROLLER))
	assert.False(t, res.NotFound)
	assert.True(t, res.IsEmpty())
}

func TestChainRoute(t *testing.T) {
	re := chainEngine(t, da.NewEdge(nodeB, nodeC, 50, pkg.COBBLESTONE, 0, false, 0, 200, ""))
	res := re.ShortestPath(nodeA, nodeC, da.DefaultProfile(pkg.STROLLER))

	require.True(t, res.Found())
	assert.Equal(t, []int64{nodeA, nodeB, nodeC}, res.Path)
	require.Len(t, res.Edges, 2)
	assert.Equal(t, 150.0, res.TotalDistance)
	assert.InDelta(t, 100+50*1.8, res.TotalWeight, 1e-9)
	assert.Equal(t, 80, res.AccessibilityScore)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, da.PARTIAL, res.Issues[0].Level)
	assert.Equal(t, []string{accessibility.REASON_ROUGH_SURFACE}, res.Issues[0].Reasons)
	require.Len(t, res.Coordinates, 3)
	assert.Equal(t, geo.NewCoordinate(0, 0.0012), res.Coordinates[2])

	// reverse direction walks the same edges
	back := re.ShortestPath(nodeC, nodeA, da.DefaultProfile(pkg.STROLLER))
	assert.Equal(t, []int64{nodeC, nodeB, nodeA}, back.Path)
	assert.Equal(t, res.TotalWeight, back.TotalWeight)
}

func TestGateGovernsTraversal(t *testing.T) {
	// B-C has a 10cm curb without ramp, the only connection to C.
	re := chainEngine(t, da.NewEdge(nodeB, nodeC, 50, pkg.ASPHALT, 10, false, 0, 200, ""))
	profile := da.NewAccessibilityProfile(pkg.WHEELCHAIR, 5, 8, 90)

	res := re.ShortestPath(nodeA, nodeC, profile)
	assert.True(t, res.NotFound)
	assert.Empty(t, res.Path)
	assert.Empty(t, res.Issues)

	// a rider allowed to take the curb gets the route, with the curb reported
	res = re.ShortestPath(nodeA, nodeC, da.NewAccessibilityProfile(pkg.CRUTCHES, 10, 8, 90))
	require.True(t, res.Found())
	require.Len(t, res.Issues, 1)
	assert.Equal(t, da.PARTIAL, res.Issues[0].Level)
	assert.Contains(t, res.Issues[0].Reasons, accessibility.REASON_CURB_HEIGHT)
	assert.Contains(t, res.Issues[0].Reasons, accessibility.REASON_NO_RAMP)
}

func TestSlopePenaltyOverridesDistance(t *testing.T) {
	re := diamondEngine(t)

	wheelchair := da.NewAccessibilityProfile(pkg.WHEELCHAIR, 5, 8, 90)
	res := re.ShortestPath(nodeA, nodeC, wheelchair)
	require.True(t, res.Found())
	assert.Equal(t, []int64{nodeA, nodeD, nodeC}, res.Path)
	assert.Equal(t, 320.0, res.TotalDistance)
	assert.Equal(t, 100, res.AccessibilityScore)

	// same thresholds without the unassisted wheelchair penalty: the short climb wins
	assisted := da.NewAccessibilityProfile(pkg.WHEELCHAIR_ASSISTED, 5, 8, 90)
	res = re.ShortestPath(nodeA, nodeC, assisted)
	require.True(t, res.Found())
	assert.Equal(t, []int64{nodeA, nodeB, nodeC}, res.Path)
	assert.InDelta(t, 120+120*1.6, res.TotalWeight, 1e-9)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, []string{accessibility.REASON_STEEP_SLOPE}, res.Issues[0].Reasons)
}

func TestMaxSettledNodes(t *testing.T) {
	re := diamondEngine(t)
	astar := NewAStar(re)
	astar.SetMaxSettledNodes(1)

	res := astar.ShortestPathSearch(nodeA, nodeC, da.DefaultProfile(pkg.STROLLER))
	assert.True(t, res.NotFound)
	assert.Equal(t, 1, astar.GetNumSettledNodes())
}

func TestRouteCacheReturnsCopies(t *testing.T) {
	g, err := da.NewGraph(
		[]da.Node{da.NewNode(nodeA, 0, 0, ""), da.NewNode(nodeB, 0, 0.001, "")},
		[]da.Edge{clearEdge(nodeA, nodeB, 120)})
	require.NoError(t, err)
	re, err := NewRoutingEngine(g, costfunction.NewAccessibilityCostFunction(), zap.NewNop(), 16, 0)
	require.NoError(t, err)

	profile := da.DefaultProfile(pkg.STROLLER)
	first := re.ShortestPath(nodeA, nodeB, profile)
	first.Path[0] = 999

	second := re.ShortestPath(nodeA, nodeB, profile)
	assert.Equal(t, []int64{nodeA, nodeB}, second.Path)

	re.PurgeCache()
	third := re.ShortestPath(nodeA, nodeB, profile)
	assert.Equal(t, second, third)
}

// grid of n*n nodes 0.001 degree apart, edge distance >= straight-line distance.
func randomGridEngine(t *testing.T, rng *rand.Rand, n int) *RoutingEngine {
	nodes := make([]da.Node, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			nodes = append(nodes, da.NewNode(int64(i*n+j), float64(i)*0.001, float64(j)*0.001, ""))
		}
	}

	surfaces := []pkg.SurfaceType{pkg.ASPHALT, pkg.GRAVEL, pkg.COBBLESTONE, pkg.SAND, pkg.WOOD}
	edges := make([]da.Edge, 0)
	addEdge := func(u, v int) {
		if rng.Intn(6) == 0 {
			return
		}
		straight := geo.CalculateHaversineDistance(nodes[u].Lat, nodes[u].Lon, nodes[v].Lat, nodes[v].Lon)
		edges = append(edges, da.NewEdge(nodes[u].ID, nodes[v].ID, straight*(1+rng.Float64()*0.5),
			surfaces[rng.Intn(len(surfaces))], float64(rng.Intn(12)), rng.Intn(3) == 0, rng.Float64()*16-8,
			float64(60+rng.Intn(160)), []string{"", "", "", "repair"}[rng.Intn(4)]))
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j+1 < n {
				addEdge(i*n+j, i*n+j+1)
			}
			if i+1 < n {
				addEdge(i*n+j, (i+1)*n+j)
			}
		}
	}
	return newTestEngine(t, nodes, edges, 0)
}

// bellmanFord. reference optimum over accessible edges.
func bellmanFord(re *RoutingEngine, s da.Index, profile da.AccessibilityProfile) []float64 {
	g := re.GetGraph()
	dist := make([]float64, g.NumberOfNodes())
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[s] = 0
	for iter := 0; iter < g.NumberOfNodes(); iter++ {
		changed := false
		g.ForEdges(func(e *da.Edge) {
			if !accessibility.IsAccessible(e, profile) {
				return
			}
			u, _ := g.GetNodeIndex(e.From)
			v, _ := g.GetNodeIndex(e.To)
			w := re.GetCostFunction().GetWeight(e, profile)
			if dist[u]+w < dist[v] {
				dist[v] = dist[u] + w
				changed = true
			}
			if dist[v]+w < dist[u] {
				dist[u] = dist[v] + w
				changed = true
			}
		})
		if !changed {
			break
		}
	}
	return dist
}

func TestAStarMatchesReferenceOptimum(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	re := randomGridEngine(t, rng, 8)
	g := re.GetGraph()

	for q := 0; q < 40; q++ {
		profile := da.DefaultProfile(pkg.MobilityTypes()[rng.Intn(4)])
		startId := int64(rng.Intn(g.NumberOfNodes()))
		endId := int64(rng.Intn(g.NumberOfNodes()))

		s, _ := g.GetNodeIndex(startId)
		tt, _ := g.GetNodeIndex(endId)
		want := bellmanFord(re, s, profile)[tt]

		res := re.ShortestPath(startId, endId, profile)
		if math.IsInf(want, 1) {
			assert.True(t, res.NotFound, "query %d->%d", startId, endId)
			continue
		}

		require.True(t, res.Found(), "query %d->%d", startId, endId)
		assert.InDelta(t, want, res.TotalWeight, 1e-6, "query %d->%d", startId, endId)
		assertPathConsistent(t, res, profile)
	}
}

func assertPathConsistent(t *testing.T, res *da.RouteResult, profile da.AccessibilityProfile) {
	t.Helper()
	require.Len(t, res.Edges, len(res.Path)-1)
	dist := 0.0
	for i, e := range res.Edges {
		assert.True(t, (e.From == res.Path[i] && e.To == res.Path[i+1]) || (e.To == res.Path[i] && e.From == res.Path[i+1]))
		assert.True(t, accessibility.IsAccessible(&e, profile))
		dist += e.Distance
	}
	assert.InDelta(t, dist, res.TotalDistance, 1e-9)
	assert.GreaterOrEqual(t, res.TotalWeight, res.TotalDistance-1e-9)
}

func TestConcurrentQueriesShareGraph(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	re := randomGridEngine(t, rng, 10)

	type query struct {
		start, end int64
		profile    da.AccessibilityProfile
	}
	queries := make([]query, 64)
	want := make([]*da.RouteResult, len(queries))
	for i := range queries {
		queries[i] = query{int64(rng.Intn(100)), int64(rng.Intn(100)), da.DefaultProfile(pkg.MobilityTypes()[i%4])}
		want[i] = NewAStar(re).ShortestPathSearch(queries[i].start, queries[i].end, queries[i].profile)
	}

	got := make([]*da.RouteResult, len(queries))
	var wg sync.WaitGroup
	for i := range queries {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = NewAStar(re).ShortestPathSearch(queries[i].start, queries[i].end, queries[i].profile)
		}(i)
	}
	wg.Wait()

	for i := range queries {
		assert.Equal(t, want[i], got[i])
	}
}
