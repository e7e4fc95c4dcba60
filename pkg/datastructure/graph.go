package datastructure

import (
	"math"

	"github.com/lintang-b-s/accessnav/pkg"
	"github.com/lintang-b-s/accessnav/pkg/geo"
	"github.com/lintang-b-s/accessnav/pkg/util"
)

type Index uint32

const (
	INVALID_INDEX Index = math.MaxUint32
)

// Node. a point of the pedestrian network. ID is the stable external id (e.g. openstreetmap node id).
type Node struct {
	ID   int64   `json:"id"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name,omitempty"`
}

func NewNode(id int64, lat, lon float64, name string) Node {
	return Node{
		ID:   id,
		Lat:  lat,
		Lon:  lon,
		Name: name,
	}
}

// Edge. sidewalk segment between two nodes, stored once but traversable in both directions.
type Edge struct {
	ID        Index           `json:"id"`
	From      int64           `json:"from"`
	To        int64           `json:"to"`
	Distance  float64         `json:"distance"` // meter
	Surface   pkg.SurfaceType `json:"surface"`
	Curb      float64         `json:"curb"` // cm
	HasRamp   bool            `json:"has_ramp"`
	Slope     float64         `json:"slope"` // percent grade, signed
	Width     float64         `json:"width"` // cm
	Temporary string          `json:"temporary,omitempty"`
}

func NewEdge(from, to int64, distance float64, surface pkg.SurfaceType, curb float64, hasRamp bool,
	slope, width float64, temporary string) Edge {
	return Edge{
		From:      from,
		To:        to,
		Distance:  distance,
		Surface:   surface,
		Curb:      curb,
		HasRamp:   hasRamp,
		Slope:     slope,
		Width:     width,
		Temporary: temporary,
	}
}

func (e *Edge) GetSlopeMagnitude() float64 {
	return util.Abs(e.Slope)
}

func (e *Edge) HasTemporaryRestriction() bool {
	return e.Temporary != ""
}

// GetOtherEndpoint. the endpoint of e that is not id.
func (e *Edge) GetOtherEndpoint(id int64) int64 {
	if e.From == id {
		return e.To
	}
	return e.From
}

type adjEntry struct {
	neighbor Index
	edgeId   Index
}

// Graph. read-only pedestrian network. nodes are kept in a dense array (slot = Index),
// adjacency is a flattened array: adjacency of slot u is adjacency[firstAdj[u]:firstAdj[u+1]].
type Graph struct {
	nodes     []Node
	edges     []Edge
	nodeIndex map[int64]Index
	firstAdj  []Index
	adjacency []adjEntry

	components  []Index
	boundingBox BoundingBox
}

// NewGraph. validate the raw network and build the adjacency index.
// every edge ends up in exactly two adjacency entries, one per endpoint.
func NewGraph(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes:     make([]Node, len(nodes)),
		edges:     make([]Edge, len(edges)),
		nodeIndex: make(map[int64]Index, len(nodes)),
	}

	for i, n := range nodes {
		if _, dup := g.nodeIndex[n.ID]; dup {
			return nil, util.NewErrorf(util.ErrBadParamInput, "duplicate node id %d", n.ID)
		}
		if math.IsNaN(n.Lat) || math.IsNaN(n.Lon) || n.Lat < -90 || n.Lat > 90 || n.Lon < -180 || n.Lon > 180 {
			return nil, util.NewErrorf(util.ErrBadParamInput, "node %d has invalid coordinate (%f, %f)", n.ID, n.Lat, n.Lon)
		}
		g.nodes[i] = n
		g.nodeIndex[n.ID] = Index(i)
	}

	degree := make([]Index, len(nodes)+1)
	for i, e := range edges {
		if err := validateEdge(e, g.nodeIndex); err != nil {
			return nil, err
		}
		e.ID = Index(i)
		g.edges[i] = e
		degree[g.nodeIndex[e.From]]++
		degree[g.nodeIndex[e.To]]++
	}

	// prefix sum of degrees
	g.firstAdj = make([]Index, len(nodes)+1)
	for u := 0; u < len(nodes); u++ {
		g.firstAdj[u+1] = g.firstAdj[u] + degree[u]
	}

	g.adjacency = make([]adjEntry, 2*len(edges))
	next := make([]Index, len(nodes))
	copy(next, g.firstAdj[:len(nodes)])
	for _, e := range g.edges {
		u := g.nodeIndex[e.From]
		v := g.nodeIndex[e.To]
		g.adjacency[next[u]] = adjEntry{neighbor: v, edgeId: e.ID}
		next[u]++
		g.adjacency[next[v]] = adjEntry{neighbor: u, edgeId: e.ID}
		next[v]++
	}

	g.boundingBox = NewBoundingBoxFromNodes(g.nodes)
	g.computeComponents()
	return g, nil
}

func validateEdge(e Edge, nodeIndex map[int64]Index) error {
	if _, ok := nodeIndex[e.From]; !ok {
		return util.NewErrorf(util.ErrBadParamInput, "edge %d-%d: unknown node %d", e.From, e.To, e.From)
	}
	if _, ok := nodeIndex[e.To]; !ok {
		return util.NewErrorf(util.ErrBadParamInput, "edge %d-%d: unknown node %d", e.From, e.To, e.To)
	}
	if e.From == e.To {
		return util.NewErrorf(util.ErrBadParamInput, "edge %d-%d: self-loop is not supported", e.From, e.To)
	}
	if math.IsNaN(e.Distance) || e.Distance < 0 {
		return util.NewErrorf(util.ErrBadParamInput, "edge %d-%d: negative distance %f", e.From, e.To, e.Distance)
	}
	if math.IsNaN(e.Curb) || e.Curb < 0 {
		return util.NewErrorf(util.ErrBadParamInput, "edge %d-%d: negative curb height %f", e.From, e.To, e.Curb)
	}
	if math.IsNaN(e.Width) || e.Width < 0 {
		return util.NewErrorf(util.ErrBadParamInput, "edge %d-%d: negative width %f", e.From, e.To, e.Width)
	}
	if math.IsNaN(e.Slope) || math.IsInf(e.Slope, 0) {
		return util.NewErrorf(util.ErrBadParamInput, "edge %d-%d: invalid slope", e.From, e.To)
	}
	return nil
}

func (g *Graph) NumberOfNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

// GetNodeIndex. slot of the node with external id.
func (g *Graph) GetNodeIndex(id int64) (Index, bool) {
	u, ok := g.nodeIndex[id]
	return u, ok
}

func (g *Graph) GetNode(u Index) Node {
	return g.nodes[u]
}

func (g *Graph) GetNodeID(u Index) int64 {
	return g.nodes[u].ID
}

func (g *Graph) GetNodeCoordinates(u Index) (float64, float64) {
	return g.nodes[u].Lat, g.nodes[u].Lon
}

// GetEdge. pointer into the graph's edge array; callers must not modify it.
func (g *Graph) GetEdge(eId Index) *Edge {
	return &g.edges[eId]
}

func (g *Graph) IsValidEdge(eId Index) bool {
	return int(eId) < len(g.edges)
}

func (g *Graph) Degree(u Index) int {
	return int(g.firstAdj[u+1] - g.firstAdj[u])
}

// ForNeighbors. iterate adjacency of u in insertion order.
func (g *Graph) ForNeighbors(u Index, handle func(v Index, e *Edge)) {
	for i := g.firstAdj[u]; i < g.firstAdj[u+1]; i++ {
		adj := g.adjacency[i]
		handle(adj.neighbor, &g.edges[adj.edgeId])
	}
}

// ForEdges. iterate every stored edge once.
func (g *Graph) ForEdges(handle func(e *Edge)) {
	for i := range g.edges {
		handle(&g.edges[i])
	}
}

func (g *Graph) GetNodes() []Node {
	nodes := make([]Node, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

func (g *Graph) GetEdges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// GetHaversineDistanceFromUtoV. straight-line distance in meter between slots u and v.
func (g *Graph) GetHaversineDistanceFromUtoV(u, v Index) float64 {
	return geo.CalculateHaversineDistance(g.nodes[u].Lat, g.nodes[u].Lon, g.nodes[v].Lat, g.nodes[v].Lon)
}

func (g *Graph) GetBoundingBox() BoundingBox {
	return g.boundingBox
}

type BoundingBox struct {
	minLat, minLon, maxLat, maxLon float64
}

func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) BoundingBox {
	return BoundingBox{minLat: minLat, minLon: minLon, maxLat: maxLat, maxLon: maxLon}
}

func NewBoundingBoxFromNodes(nodes []Node) BoundingBox {
	if len(nodes) == 0 {
		return BoundingBox{}
	}
	bb := BoundingBox{minLat: math.Inf(1), minLon: math.Inf(1), maxLat: math.Inf(-1), maxLon: math.Inf(-1)}
	for _, n := range nodes {
		bb.minLat = math.Min(bb.minLat, n.Lat)
		bb.minLon = math.Min(bb.minLon, n.Lon)
		bb.maxLat = math.Max(bb.maxLat, n.Lat)
		bb.maxLon = math.Max(bb.maxLon, n.Lon)
	}
	return bb
}

func (bb BoundingBox) GetMinLat() float64 {
	return bb.minLat
}

func (bb BoundingBox) GetMinLon() float64 {
	return bb.minLon
}

func (bb BoundingBox) GetMaxLat() float64 {
	return bb.maxLat
}

func (bb BoundingBox) GetMaxLon() float64 {
	return bb.maxLon
}

func (bb BoundingBox) Contains(lat, lon float64) bool {
	return lat >= bb.minLat && lat <= bb.maxLat && lon >= bb.minLon && lon <= bb.maxLon
}
