package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lintang-b-s/accessnav/pkg"
	"github.com/lintang-b-s/accessnav/pkg/costfunction"
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
	"github.com/lintang-b-s/accessnav/pkg/engine/routing"
	"github.com/lintang-b-s/accessnav/pkg/http/usecases"
	"github.com/lintang-b-s/accessnav/pkg/metrics"
	"github.com/lintang-b-s/accessnav/pkg/spatialindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (http.Handler, *metrics.Metric) {
	t.Helper()
	nodes := []da.Node{
		da.NewNode(1, 0, 0, "A"),
		da.NewNode(2, 0, 0.0008, "B"),
		da.NewNode(3, 0, 0.0012, "C"),
		da.NewNode(4, 0.01, 0.01, "far"),
		da.NewNode(5, 0.01, 0.011, "far2"),
	}
	edges := []da.Edge{
		da.NewEdge(1, 2, 100, pkg.ASPHALT, 0, false, 0, 200, ""),
		da.NewEdge(2, 3, 50, pkg.ASPHALT, 10, false, 0, 200, ""),
		da.NewEdge(4, 5, 120, pkg.ASPHALT, 0, false, 0, 200, ""),
	}
	g, err := da.NewGraph(nodes, edges)
	require.NoError(t, err)

	cf := costfunction.NewAccessibilityCostFunction()
	re, err := routing.NewRoutingEngine(g, cf, zap.NewNop(), 16, 0)
	require.NoError(t, err)
	rt := spatialindex.NewRtree()
	rt.Build(g, zap.NewNop())

	m := metrics.NewMetric()
	rs := usecases.NewRoutingService(zap.NewNop(), re, cf, rt, m, 50, 2)
	return NewAPI(zap.NewNop(), m).Handler(false, rs), m
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestComputeRoutesByNode(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doGet(t, h, "/api/computeRoutesByNode?start_id=1&end_id=3&mobility_type=crutches")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	var body struct {
		Data struct {
			Path               []int64 `json:"path"`
			Distance           float64 `json:"distance"`
			Eta                int     `json:"eta"`
			AccessibilityScore int     `json:"accessibility_score"`
			Polyline           string  `json:"polyline"`
			Issues             []struct {
				Level   string   `json:"level"`
				Reasons []string `json:"reasons"`
			} `json:"issues"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []int64{1, 2, 3}, body.Data.Path)
	assert.Equal(t, 150.0, body.Data.Distance)
	assert.Equal(t, 5, body.Data.Eta)
	assert.Equal(t, 80, body.Data.AccessibilityScore)
	assert.NotEmpty(t, body.Data.Polyline)
	require.Len(t, body.Data.Issues, 1)
	assert.Equal(t, "partial", body.Data.Issues[0].Level)
	assert.Equal(t, []string{"curb_height", "no_ramp"}, body.Data.Issues[0].Reasons)
}

func TestComputeRoutesErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	cases := []struct {
		name   string
		target string
		status int
	}{
		{"blocked curb", "/api/computeRoutesByNode?start_id=1&end_id=3&mobility_type=wheelchair", http.StatusNotFound},
		{"curb allowed by override", "/api/computeRoutesByNode?start_id=1&end_id=3&mobility_type=wheelchair&max_curb_height=10", http.StatusOK},
		{"disconnected", "/api/computeRoutesByNode?start_id=1&end_id=4&mobility_type=stroller", http.StatusNotFound},
		{"unknown node", "/api/computeRoutesByNode?start_id=1&end_id=77&mobility_type=stroller", http.StatusNotFound},
		{"missing mobility", "/api/computeRoutesByNode?start_id=1&end_id=3", http.StatusBadRequest},
		{"bad mobility", "/api/computeRoutesByNode?start_id=1&end_id=3&mobility_type=skateboard", http.StatusBadRequest},
		{"negative threshold", "/api/computeRoutesByNode?start_id=1&end_id=3&mobility_type=stroller&max_slope=-1", http.StatusBadRequest},
		{"bad id", "/api/computeRoutesByNode?start_id=x&end_id=3&mobility_type=stroller", http.StatusBadRequest},
		{"bad latitude", "/api/computeRoutes?origin_lat=91&origin_lon=0&destination_lat=0&destination_lon=0.0012&mobility_type=stroller", http.StatusBadRequest},
		{"no sidewalk nearby", "/api/computeRoutes?origin_lat=1&origin_lon=1&destination_lat=0&destination_lon=0.0012&mobility_type=stroller", http.StatusNotFound},
		{"unknown edge", "/api/edgeAccessibility?edge_id=9&mobility_type=stroller", http.StatusNotFound},
		{"edge id beyond index range", "/api/edgeAccessibility?edge_id=4294967296&mobility_type=stroller", http.StatusBadRequest},
		{"negative edge id", "/api/edgeAccessibility?edge_id=-1&mobility_type=stroller", http.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := doGet(t, h, c.target)
			assert.Equal(t, c.status, rec.Code, rec.Body.String())
			if c.status != http.StatusOK {
				var body apiError
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.NotEmpty(t, body.Error.Message)
			}
		})
	}
}

func TestComputeRoutesByCoordinates(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doGet(t, h, "/api/computeRoutes?origin_lat=0.00005&origin_lon=0&destination_lat=0&destination_lon=0.00079&mobility_type=wheelchair")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"path":[1,2]`)
}

func TestCompareProfilesEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doGet(t, h, "/api/compareProfiles?start_id=1&end_id=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			Profile struct {
				MobilityType string `json:"mobility_type"`
			} `json:"profile"`
			Found bool `json:"found"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 4)
	found := map[string]bool{}
	for _, d := range body.Data {
		found[d.Profile.MobilityType] = d.Found
	}
	// 10cm curb without ramp: only crutches (max 10cm) get through
	assert.Equal(t, map[string]bool{
		"wheelchair": false, "wheelchair-assisted": false, "stroller": false, "crutches": true,
	}, found)
}

func TestEdgeAccessibilityEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doGet(t, h, "/api/edgeAccessibility?edge_id=1&mobility_type=wheelchair")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Accessible bool     `json:"accessible"`
			Level      string   `json:"level"`
			Reasons    []string `json:"reasons"`
			Weight     *float64 `json:"weight"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Data.Accessible)
	assert.Equal(t, "inaccessible", body.Data.Level)
	assert.Nil(t, body.Data.Weight)
	assert.Equal(t, []string{"curb_height", "no_ramp"}, body.Data.Reasons)
}

func TestHeartbeatAndMetrics(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doGet(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".", rec.Body.String())

	doGet(t, h, "/api/computeRoutesByNode?start_id=1&end_id=2&mobility_type=stroller")
	rec = doGet(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `accessnav_route_queries_total{mobility="stroller",outcome="found"} 1`)
}

func TestRecoverPanic(t *testing.T) {
	api := NewAPI(zap.NewNop(), nil)
	h := api.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := doGet(t, h, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
}

func TestLimit(t *testing.T) {
	h := Limit(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.Equal(t, http.StatusNoContent, doGet(t, h, "/").Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(t, h, "/").Code)
}

func TestRealIP(t *testing.T) {
	var got string
	h := RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.RemoteAddr
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.7", got)
}
