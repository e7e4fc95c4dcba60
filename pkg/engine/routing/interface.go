package routing

import (
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
)

type CostFunction interface {
	GetWeight(e *da.Edge, p da.AccessibilityProfile) float64
}
