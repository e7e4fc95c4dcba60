package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/accessnav/pkg"
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
	helper "github.com/lintang-b-s/accessnav/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
	validator      *validator.Validate
	trans          ut.Translator
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &routingAPI{
		routingService: routingService,
		log:            log,
		validator:      validate,
		trans:          trans,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
	group.GET("/computeRoutesByNode", api.shortestPathByNode)
	group.GET("/compareProfiles", api.compareProfiles)
	group.GET("/edgeAccessibility", api.edgeAccessibility)
}

// shortestPath godoc
//
//	@Summary		accessible route between two coordinates
//	@Description	origin and destination are snapped to the nearest sidewalk node
//	@Tags			routing
//	@Produce		json
//	@Param			origin_lat		query		number	true	"origin latitude"
//	@Param			origin_lon		query		number	true	"origin longitude"
//	@Param			destination_lat	query		number	true	"destination latitude"
//	@Param			destination_lon	query		number	true	"destination longitude"
//	@Param			mobility_type	query		string	true	"wheelchair, wheelchair-assisted, stroller or crutches"
//	@Param			max_curb_height	query		number	false	"cm"
//	@Param			max_slope		query		number	false	"percent"
//	@Param			min_width		query		number	false	"cm"
//	@Success		200				{object}	shortestPathResponse
//	@Failure		400				{object}	errorResponse
//	@Failure		404				{object}	errorResponse
//	@Router			/computeRoutes [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request shortestPathRequest
		err     error
	)

	query := r.URL.Query()
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"origin_lat", &request.OriginLat},
		{"origin_lon", &request.OriginLon},
		{"destination_lat", &request.DestinationLat},
		{"destination_lon", &request.DestinationLon},
	} {
		*f.dst, err = strconv.ParseFloat(query.Get(f.name), 64)
		if err != nil {
			api.BadRequestResponse(w, r, fmt.Errorf("%s is required and must be a valid float", f.name))
			return
		}
	}
	if err := parseProfileRequest(query, &request.profileRequest); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validate(w, r, request) {
		return
	}

	route, err := api.routingService.ShortestPath(request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon, request.toProfile())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(route)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// shortestPathByNode godoc
//
//	@Summary	accessible route between two node ids
//	@Tags		routing
//	@Produce	json
//	@Param		start_id		query		int		true	"start node id"
//	@Param		end_id			query		int		true	"end node id"
//	@Param		mobility_type	query		string	true	"wheelchair, wheelchair-assisted, stroller or crutches"
//	@Success	200				{object}	shortestPathResponse
//	@Failure	400				{object}	errorResponse
//	@Failure	404				{object}	errorResponse
//	@Router		/computeRoutesByNode [get]
func (api *routingAPI) shortestPathByNode(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request shortestPathByNodeRequest
		err     error
	)

	query := r.URL.Query()
	request.StartId, request.EndId, err = parseNodePair(query)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := parseProfileRequest(query, &request.profileRequest); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validate(w, r, request) {
		return
	}

	route, err := api.routingService.ShortestPathByNode(request.StartId, request.EndId, request.toProfile())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(route)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// compareProfiles godoc
//
//	@Summary	route between two node ids with the preset profile of every mobility type
//	@Tags		routing
//	@Produce	json
//	@Param		start_id	query		int	true	"start node id"
//	@Param		end_id		query		int	true	"end node id"
//	@Success	200			{array}		profileRouteResponse
//	@Failure	400			{object}	errorResponse
//	@Failure	404			{object}	errorResponse
//	@Router		/compareProfiles [get]
func (api *routingAPI) compareProfiles(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request compareProfilesRequest
		err     error
	)

	request.StartId, request.EndId, err = parseNodePair(r.URL.Query())
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	routes, err := api.routingService.CompareProfiles(request.StartId, request.EndId)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewCompareProfilesResponse(routes)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// edgeAccessibility godoc
//
//	@Summary	accessibility verdict, reasons and weight of one edge
//	@Tags		accessibility
//	@Produce	json
//	@Param		edge_id			query		int		true	"edge id"
//	@Param		mobility_type	query		string	true	"wheelchair, wheelchair-assisted, stroller or crutches"
//	@Success	200				{object}	edgeAccessibilityResponse
//	@Failure	400				{object}	errorResponse
//	@Failure	404				{object}	errorResponse
//	@Router		/edgeAccessibility [get]
func (api *routingAPI) edgeAccessibility(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request edgeAccessibilityRequest
		err     error
	)

	query := r.URL.Query()
	request.EdgeId, err = strconv.ParseInt(query.Get("edge_id"), 10, 64)
	if err != nil {
		api.BadRequestResponse(w, r, fmt.Errorf("edge_id is required and must be a valid int"))
		return
	}
	if err := parseProfileRequest(query, &request.profileRequest); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validate(w, r, request) {
		return
	}

	report, err := api.routingService.EdgeAccessibility(da.Index(request.EdgeId), request.toProfile())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewEdgeAccessibilityResponse(report)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func parseNodePair(query url.Values) (int64, int64, error) {
	startId, err := strconv.ParseInt(query.Get("start_id"), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("start_id is required and must be a valid int")
	}
	endId, err := strconv.ParseInt(query.Get("end_id"), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("end_id is required and must be a valid int")
	}
	return startId, endId, nil
}

func parseProfileRequest(query url.Values, request *profileRequest) error {
	request.MobilityType = query.Get("mobility_type")
	for _, f := range []struct {
		name string
		dst  **float64
	}{
		{"max_curb_height", &request.MaxCurbHeight},
		{"max_slope", &request.MaxSlope},
		{"min_width", &request.MinWidth},
	} {
		raw := query.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%s must be a valid float", f.name)
		}
		*f.dst = &v
	}
	return nil
}

// toProfile. thresholds left out of the request fall back to the preset of the mobility type.
func (request profileRequest) toProfile() da.AccessibilityProfile {
	profile := da.DefaultProfile(pkg.GetMobilityType(request.MobilityType))
	if request.MaxCurbHeight != nil {
		profile.MaxCurbHeight = *request.MaxCurbHeight
	}
	if request.MaxSlope != nil {
		profile.MaxSlope = *request.MaxSlope
	}
	if request.MinWidth != nil {
		profile.MinWidth = *request.MinWidth
	}
	return profile
}
