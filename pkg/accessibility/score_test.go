package accessibility

import (
	"testing"

	"github.com/lintang-b-s/accessnav/pkg"
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreEmptyPath(t *testing.T) {
	score, issues := Score(nil, testProfile)
	assert.Equal(t, 100, score)
	assert.Empty(t, issues)
}

func TestScoreMixedPath(t *testing.T) {
	accessible := clearEdge()
	partial := da.NewEdge(2, 3, 40, pkg.COBBLESTONE, 0, false, 0, 200, "")
	blocked := da.NewEdge(3, 4, 40, pkg.ASPHALT, 10, false, 0, 200, "")

	testCases := []struct {
		name       string
		edges      []da.Edge
		wantScore  int
		wantIssues []da.AccessibilityLevel
	}{
		{name: "all accessible", edges: []da.Edge{accessible, accessible}, wantScore: 100},
		{name: "one partial of two", edges: []da.Edge{accessible, partial}, wantScore: 80, wantIssues: []da.AccessibilityLevel{da.PARTIAL}},
		{name: "one partial of three", edges: []da.Edge{accessible, partial, accessible}, wantScore: 87, wantIssues: []da.AccessibilityLevel{da.PARTIAL}},
		{
			name:       "accessible and inaccessible",
			edges:      []da.Edge{accessible, blocked},
			wantScore:  50,
			wantIssues: []da.AccessibilityLevel{da.INACCESSIBLE},
		},
		{
			name:       "partial and inaccessible",
			edges:      []da.Edge{partial, blocked, partial},
			wantScore:  40,
			wantIssues: []da.AccessibilityLevel{da.PARTIAL, da.INACCESSIBLE, da.PARTIAL},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			score, issues := Score(tt.edges, testProfile)
			assert.Equal(t, tt.wantScore, score)
			require.Len(t, issues, len(tt.wantIssues))
			for i, level := range tt.wantIssues {
				assert.Equal(t, level, issues[i].Level)
			}
		})
	}
}

func TestScoreIssueCarriesEdgeAndReasons(t *testing.T) {
	blocked := da.NewEdge(3, 4, 40, pkg.ASPHALT, 10, false, 0, 200, "")
	_, issues := Score([]da.Edge{blocked}, testProfile)
	require.Len(t, issues, 1)
	assert.Equal(t, blocked, issues[0].Edge)
	assert.Contains(t, issues[0].Reasons, REASON_CURB_HEIGHT)
	assert.Contains(t, issues[0].Reasons, REASON_NO_RAMP)
}

func TestEstimateTravelMinutes(t *testing.T) {
	testCases := []struct {
		mobility pkg.MobilityType
		dist     float64
		want     int
	}{
		{pkg.WHEELCHAIR, 400, 10},
		{pkg.WHEELCHAIR, 401, 11},
		{pkg.WHEELCHAIR_ASSISTED, 100, 2},
		{pkg.STROLLER, 61, 2},
		{pkg.CRUTCHES, 90, 3},
		{pkg.UNKNOWN_MOBILITY, 50, 1},
		{pkg.WHEELCHAIR, 0, 0},
	}

	for _, tt := range testCases {
		t.Run(tt.mobility.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateTravelMinutes(tt.dist, tt.mobility))
		})
	}
}
