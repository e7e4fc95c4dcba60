package datastructure

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/accessnav/pkg"
	"github.com/lintang-b-s/accessnav/pkg/geo"
	"github.com/lintang-b-s/accessnav/pkg/util"
	"gopkg.in/yaml.v3"
)

// NetworkNode. node record of a raw network file.
type NetworkNode struct {
	ID   int64   `json:"id" yaml:"id"`
	Lat  float64 `json:"lat" yaml:"lat"`
	Lng  float64 `json:"lng" yaml:"lng"`
	Name string  `json:"name,omitempty" yaml:"name,omitempty"`
}

// NetworkEdge. edge record of a raw network file. a missing distance is measured between the endpoints.
type NetworkEdge struct {
	From      int64    `json:"from" yaml:"from"`
	To        int64    `json:"to" yaml:"to"`
	Distance  *float64 `json:"distance,omitempty" yaml:"distance,omitempty"`
	Surface   string   `json:"surface" yaml:"surface"`
	Curb      float64  `json:"curb" yaml:"curb"`
	HasRamp   bool     `json:"has_ramp" yaml:"has_ramp"`
	Slope     float64  `json:"slope" yaml:"slope"`
	Width     float64  `json:"width" yaml:"width"`
	Temporary string   `json:"temporary,omitempty" yaml:"temporary,omitempty"`
}

type Network struct {
	Nodes []NetworkNode `json:"nodes" yaml:"nodes"`
	Edges []NetworkEdge `json:"edges" yaml:"edges"`
}

// ReadNetwork. read a .json, .yaml or .yml network file.
func ReadNetwork(filename string) (*Network, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return DecodeNetworkJSON(f)
	case ".yaml", ".yml":
		return DecodeNetworkYAML(f)
	default:
		return nil, util.NewErrorf(util.ErrBadParamInput, "unsupported network file extension: %s", filename)
	}
}

func DecodeNetworkJSON(r io.Reader) (*Network, error) {
	var network Network
	if err := json.NewDecoder(r).Decode(&network); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "decode json network")
	}
	return &network, nil
}

func DecodeNetworkYAML(r io.Reader) (*Network, error) {
	var network Network
	if err := yaml.NewDecoder(r).Decode(&network); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "decode yaml network")
	}
	return &network, nil
}

// BuildGraph. convert the raw records and build the graph with its adjacency index.
func (n *Network) BuildGraph() (*Graph, error) {
	nodes := make([]Node, 0, len(n.Nodes))
	coords := make(map[int64]geo.Coordinate, len(n.Nodes))
	for _, nn := range n.Nodes {
		nodes = append(nodes, NewNode(nn.ID, nn.Lat, nn.Lng, nn.Name))
		coords[nn.ID] = geo.NewCoordinate(nn.Lat, nn.Lng)
	}

	edges := make([]Edge, 0, len(n.Edges))
	for _, ne := range n.Edges {
		var dist float64
		if ne.Distance != nil {
			dist = *ne.Distance
		} else {
			from, okFrom := coords[ne.From]
			to, okTo := coords[ne.To]
			if !okFrom || !okTo {
				return nil, util.NewErrorf(util.ErrBadParamInput, "edge %d-%d references an unknown node", ne.From, ne.To)
			}
			dist = geo.CalculateHaversineDistance(from.Lat, from.Lon, to.Lat, to.Lon)
		}
		edges = append(edges, NewEdge(ne.From, ne.To, dist, pkg.GetSurfaceType(ne.Surface), ne.Curb, ne.HasRamp,
			ne.Slope, ne.Width, ne.Temporary))
	}

	g, err := NewGraph(nodes, edges)
	if err != nil {
		return nil, fmt.Errorf("build graph from network: %w", err)
	}
	return g, nil
}

// LoadGraph. load a graph from a network file (.json/.yaml/.yml) or a preprocessed graph file (anything else).
func LoadGraph(filename string) (*Graph, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json", ".yaml", ".yml":
		network, err := ReadNetwork(filename)
		if err != nil {
			return nil, err
		}
		return network.BuildGraph()
	default:
		return ReadGraph(filename)
	}
}
