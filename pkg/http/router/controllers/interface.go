package controllers

import (
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
	"github.com/lintang-b-s/accessnav/pkg/http/usecases"
)

type RoutingService interface {
	ShortestPath(origLat, origLon, dstLat, dstLon float64, profile da.AccessibilityProfile) (*usecases.Route, error)
	ShortestPathByNode(startId, endId int64, profile da.AccessibilityProfile) (*usecases.Route, error)
	CompareProfiles(startId, endId int64) ([]usecases.ProfileRoute, error)
	EdgeAccessibility(edgeId da.Index, profile da.AccessibilityProfile) (*usecases.EdgeReport, error)
}
