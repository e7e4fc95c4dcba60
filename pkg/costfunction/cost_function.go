package costfunction

import (
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
)

// CostFunction. search weight of an edge for a rider profile, never below e.Distance.
type CostFunction interface {
	GetWeight(e *da.Edge, p da.AccessibilityProfile) float64
}
