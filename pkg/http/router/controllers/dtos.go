package controllers

import (
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
	"github.com/lintang-b-s/accessnav/pkg/http/usecases"
	"github.com/lintang-b-s/accessnav/pkg/util"
)

type profileRequest struct {
	MobilityType  string   `json:"mobility_type" validate:"required,oneof=wheelchair wheelchair-assisted stroller crutches"`
	MaxCurbHeight *float64 `json:"max_curb_height" validate:"omitempty,gte=0"`
	MaxSlope      *float64 `json:"max_slope" validate:"omitempty,gte=0"`
	MinWidth      *float64 `json:"min_width" validate:"omitempty,gte=0"`
}

type shortestPathRequest struct {
	profileRequest
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
}

type shortestPathByNodeRequest struct {
	profileRequest
	StartId int64 `json:"start_id"`
	EndId   int64 `json:"end_id"`
}

type compareProfilesRequest struct {
	StartId int64 `json:"start_id"`
	EndId   int64 `json:"end_id"`
}

type edgeAccessibilityRequest struct {
	profileRequest
	EdgeId int64 `json:"edge_id" validate:"gte=0,lte=4294967294"`
}

type profileResponse struct {
	MobilityType  string  `json:"mobility_type"`
	MaxCurbHeight float64 `json:"max_curb_height"`
	MaxSlope      float64 `json:"max_slope"`
	MinWidth      float64 `json:"min_width"`
}

func NewProfileResponse(p da.AccessibilityProfile) profileResponse {
	return profileResponse{
		MobilityType:  p.MobilityType.String(),
		MaxCurbHeight: p.MaxCurbHeight,
		MaxSlope:      p.MaxSlope,
		MinWidth:      p.MinWidth,
	}
}

type edgeResponse struct {
	Id        uint32  `json:"id"`
	From      int64   `json:"from"`
	To        int64   `json:"to"`
	Distance  float64 `json:"distance"`
	Surface   string  `json:"surface"`
	Curb      float64 `json:"curb"`
	HasRamp   bool    `json:"has_ramp"`
	Slope     float64 `json:"slope"`
	Width     float64 `json:"width"`
	Temporary string  `json:"temporary,omitempty"`
}

func NewEdgeResponse(e da.Edge) edgeResponse {
	return edgeResponse{
		Id:        uint32(e.ID),
		From:      e.From,
		To:        e.To,
		Distance:  e.Distance,
		Surface:   e.Surface.String(),
		Curb:      e.Curb,
		HasRamp:   e.HasRamp,
		Slope:     e.Slope,
		Width:     e.Width,
		Temporary: e.Temporary,
	}
}

type issueResponse struct {
	Edge    edgeResponse `json:"edge"`
	Level   string       `json:"level"`
	Reasons []string     `json:"reasons"`
}

type shortestPathResponse struct {
	Path               []int64         `json:"path"`
	Edges              []edgeResponse  `json:"edges"`
	Polyline           string          `json:"polyline"`
	Distance           float64         `json:"distance"`
	Weight             float64         `json:"weight"`
	Eta                int             `json:"eta"` // minutes
	AccessibilityScore int             `json:"accessibility_score"`
	Issues             []issueResponse `json:"issues"`
}

func NewShortestPathResponse(route *usecases.Route) shortestPathResponse {
	res := route.Result
	edges := make([]edgeResponse, 0, len(res.Edges))
	for _, e := range res.Edges {
		edges = append(edges, NewEdgeResponse(e))
	}
	issues := make([]issueResponse, 0, len(res.Issues))
	for _, issue := range res.Issues {
		issues = append(issues, issueResponse{
			Edge:    NewEdgeResponse(issue.Edge),
			Level:   issue.Level.String(),
			Reasons: issue.Reasons,
		})
	}
	return shortestPathResponse{
		Path:               res.Path,
		Edges:              edges,
		Polyline:           route.Polyline,
		Distance:           util.RoundFloat(res.TotalDistance, 2),
		Weight:             util.RoundFloat(res.TotalWeight, 2),
		Eta:                route.EtaMinutes,
		AccessibilityScore: res.AccessibilityScore,
		Issues:             issues,
	}
}

type profileRouteResponse struct {
	Profile profileResponse       `json:"profile"`
	Found   bool                  `json:"found"`
	Route   *shortestPathResponse `json:"route,omitempty"`
}

func NewCompareProfilesResponse(routes []usecases.ProfileRoute) []profileRouteResponse {
	out := make([]profileRouteResponse, 0, len(routes))
	for _, r := range routes {
		pr := profileRouteResponse{Profile: NewProfileResponse(r.Profile), Found: r.Found}
		if r.Found {
			sp := NewShortestPathResponse(r.Route)
			pr.Route = &sp
		}
		out = append(out, pr)
	}
	return out
}

type edgeAccessibilityResponse struct {
	Edge       edgeResponse `json:"edge"`
	Accessible bool         `json:"accessible"`
	Level      string       `json:"level"`
	Reasons    []string     `json:"reasons"`
	Weight     *float64     `json:"weight,omitempty"`
}

func NewEdgeAccessibilityResponse(report *usecases.EdgeReport) edgeAccessibilityResponse {
	resp := edgeAccessibilityResponse{
		Edge:       NewEdgeResponse(report.Edge),
		Accessible: report.Accessible,
		Level:      report.Level.String(),
		Reasons:    report.Reasons,
	}
	if report.Accessible {
		w := report.Weight
		resp.Weight = &w
	}
	return resp
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
