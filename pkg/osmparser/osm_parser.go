package osmparser

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/accessnav/pkg/datastructure"
	"github.com/lintang-b-s/accessnav/pkg/geo"
	"github.com/lintang-b-s/accessnav/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

type OsmParser struct {
	wayNodeMap map[int64]NodeType
	ways       []osmWay
	nodeCoords map[int64]NodeCoord
	nodeNames  map[int64]string
	kerbs      map[int64]kerb
	logger     *zap.Logger
}

func NewOSMParser(logger *zap.Logger) *OsmParser {
	return &OsmParser{
		wayNodeMap: make(map[int64]NodeType),
		ways:       make([]osmWay, 0),
		nodeCoords: make(map[int64]NodeCoord),
		nodeNames:  make(map[int64]string),
		kerbs:      make(map[int64]kerb),
		logger:     logger,
	}
}

// Parse. read an openstreetmap extract (.osm.pbf or .osm xml) into a pedestrian graph.
// ways are scanned first to learn which nodes matter, nodes second.
func (p *OsmParser) Parse(ctx context.Context, mapFile string) (*datastructure.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "failed to open openstreetmap file %s", mapFile)
	}
	defer f.Close()

	countWays := 0
	scanner := p.newScanner(ctx, f, mapFile, true)
	for scanner.Scan() {
		if util.StopConcurrentOperation(ctx) {
			scanner.Close()
			return nil, ctx.Err()
		}
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if p.AddWay(way) {
			countWays++
			if countWays%50000 == 0 {
				p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "failed to scan ways of %s", mapFile)
	}
	scanner.Close()
	p.logger.Info("pedestrian ways scanned", zap.Int("ways", countWays))

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	countNodes := 0
	scanner = p.newScanner(ctx, f, mapFile, false)
	defer scanner.Close()
	for scanner.Scan() {
		if util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if p.AddNode(node) {
			countNodes++
			if countNodes%500000 == 0 {
				p.logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "failed to scan nodes of %s", mapFile)
	}

	return p.BuildGraph()
}

func (p *OsmParser) newScanner(ctx context.Context, f *os.File, mapFile string, waysPass bool) osm.Scanner {
	name := strings.ToLower(filepath.Base(mapFile))
	if strings.HasSuffix(name, ".osm") || strings.HasSuffix(name, ".xml") {
		return osmxml.New(ctx, f)
	}
	// must not be parallel
	scanner := osmpbf.New(ctx, f, 1)
	scanner.SkipRelations = true
	if waysPass {
		scanner.SkipNodes = true
	} else {
		scanner.SkipWays = true
	}
	return scanner
}

// AddWay. keep way when it is walkable, mark its nodes as end, between or junction nodes.
func (p *OsmParser) AddWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 || !acceptOsmWay(way) {
		return false
	}

	nodes := make([]int64, 0, len(way.Nodes))
	for i, node := range way.Nodes {
		id := int64(node.ID)
		nodes = append(nodes, id)
		if _, ok := p.wayNodeMap[id]; !ok {
			if i == 0 || i == len(way.Nodes)-1 {
				p.wayNodeMap[id] = END_NODE
			} else {
				p.wayNodeMap[id] = BETWEEN_NODE
			}
		} else {
			p.wayNodeMap[id] = JUNCTION_NODE
		}
	}

	p.ways = append(p.ways, osmWay{
		id:    int64(way.ID),
		nodes: nodes,
		attr:  parseWayAttributes(way.Tags),
	})
	return true
}

// AddNode. store coordinate and kerb of a node used by an accepted way.
func (p *OsmParser) AddNode(node *osm.Node) bool {
	id := int64(node.ID)
	if _, ok := p.wayNodeMap[id]; !ok {
		return false
	}
	p.nodeCoords[id] = NewNodeCoord(node.Lat, node.Lon)
	if name := node.Tags.Find("name"); name != "" {
		p.nodeNames[id] = name
	}
	if k, ok := parseKerb(node.Tags); ok {
		p.kerbs[id] = k
	}
	return true
}

func (p *OsmParser) isJunctionNode(nodeID int64) bool {
	return p.wayNodeMap[nodeID] == JUNCTION_NODE
}

// BuildGraph. split every way at junction nodes, one sidewalk edge per segment.
// the segment length follows the way geometry, kerbs on any node of the segment raise its curb.
func (p *OsmParser) BuildGraph() (*datastructure.Graph, error) {
	nodeSeen := make(map[int64]struct{})
	nodes := make([]datastructure.Node, 0)
	edges := make([]datastructure.Edge, 0)

	addNode := func(id int64) {
		if _, ok := nodeSeen[id]; ok {
			return
		}
		nodeSeen[id] = struct{}{}
		coord := p.nodeCoords[id]
		nodes = append(nodes, datastructure.NewNode(id, coord.lat, coord.lon, p.nodeNames[id]))
	}

	skipped := 0
	for _, way := range p.ways {
		segment := make([]int64, 0, len(way.nodes))
		for i, id := range way.nodes {
			if _, ok := p.nodeCoords[id]; !ok {
				// missing from the extract, the way is cut here
				segment = segment[:0]
				skipped++
				continue
			}
			segment = append(segment, id)
			if len(segment) > 1 && (p.isJunctionNode(id) || i == len(way.nodes)-1) {
				for _, part := range splitLoop(segment) {
					if edge, ok := p.segmentEdge(part, way.attr); ok {
						addNode(edge.From)
						addNode(edge.To)
						edges = append(edges, edge)
					}
				}
				segment = []int64{id}
			}
		}
	}
	if skipped > 0 {
		p.logger.Warn("way nodes without coordinate skipped", zap.Int("count", skipped))
	}

	p.logger.Info("pedestrian graph built", zap.Int("nodes", len(nodes)), zap.Int("edges", len(edges)))
	return datastructure.NewGraph(nodes, edges)
}

// splitLoop. a segment that returns to its first node is cut in two at its middle node.
func splitLoop(segment []int64) [][]int64 {
	last := len(segment) - 1
	if segment[0] != segment[last] || len(segment) < 3 {
		return [][]int64{segment}
	}
	mid := last / 2
	return [][]int64{segment[:mid+1], segment[mid:]}
}

func (p *OsmParser) segmentEdge(segment []int64, attr wayAttributes) (datastructure.Edge, bool) {
	from, to := segment[0], segment[len(segment)-1]
	if from == to {
		return datastructure.Edge{}, false
	}

	dist := 0.0
	curb := attr.curb
	hasRamp := attr.hasRamp
	for i, id := range segment {
		if i > 0 {
			prev := p.nodeCoords[segment[i-1]]
			cur := p.nodeCoords[id]
			dist += geo.CalculateHaversineDistance(prev.lat, prev.lon, cur.lat, cur.lon)
		}
		if k, ok := p.kerbs[id]; ok && k.height >= curb {
			curb = k.height
			hasRamp = attr.hasRamp || k.hasRamp
		}
	}

	return datastructure.NewEdge(from, to, dist, attr.surface, curb, hasRamp, attr.slope, attr.width,
		attr.temporary), true
}
