package routing

import (
	"github.com/lintang-b-s/accessnav/pkg"
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
)

// VertexInfo. best known weight to reach a node, its parent node and the edge used.
type VertexInfo struct {
	weight     float64
	parent     da.Index
	parentEdge da.Index
}

func NewVertexInfo(weight float64, parent, parentEdge da.Index) VertexInfo {
	return VertexInfo{
		weight:     weight,
		parent:     parent,
		parentEdge: parentEdge,
	}
}

func newUnreachedVertexInfo() VertexInfo {
	return NewVertexInfo(pkg.INF_WEIGHT, da.INVALID_INDEX, da.INVALID_INDEX)
}

func (vi VertexInfo) GetWeight() float64 {
	return vi.weight
}

func (vi VertexInfo) GetParent() da.Index {
	return vi.parent
}

func (vi VertexInfo) GetParentEdge() da.Index {
	return vi.parentEdge
}
