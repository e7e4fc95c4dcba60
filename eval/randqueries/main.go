package main

import (
	"encoding/csv"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/lintang-b-s/accessnav/pkg"
	"github.com/lintang-b-s/accessnav/pkg/concurrent"
	da "github.com/lintang-b-s/accessnav/pkg/datastructure"
	"github.com/lintang-b-s/accessnav/pkg/engine"
	"github.com/lintang-b-s/accessnav/pkg/engine/routing"
	log "github.com/lintang-b-s/accessnav/pkg/logger"
	"github.com/lintang-b-s/accessnav/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	graphFile  = flag.String("graph", "./data/pedestrian.graph", "pedestrian graph file")
	outputFile = flag.String("output", "./data/randqueries.csv", "query results csv")
	numQueries = flag.Int("n", 10000, "number of random queries")
	numWorkers = flag.Int("workers", 0, "number of query workers (0 = one per cpu)")
	seed       = flag.Uint64("seed", 0, "random seed (0 = time based)")
)

type query struct {
	startId, endId int64
	profile        da.AccessibilityProfile
}

type queryResult struct {
	query
	found         bool
	distance      float64
	weight        float64
	score         int
	settledNodes  int
	elapsedMicros int64
}

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	e, err := engine.NewEngine(*graphFile, logger)
	if err != nil {
		logger.Fatal("failed to load routing engine", zap.Error(err))
	}
	re := e.GetRoutingEngine()
	g := re.GetGraph()
	if g.NumberOfNodes() == 0 {
		logger.Fatal("empty graph")
	}

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	rd := rand.New(rand.NewSource(s))

	mobilities := pkg.MobilityTypes()
	queries := make([]query, *numQueries)
	for i := range queries {
		queries[i] = query{
			startId: g.GetNodeID(da.Index(rd.Intn(g.NumberOfNodes()))),
			endId:   g.GetNodeID(da.Index(rd.Intn(g.NumberOfNodes()))),
			profile: da.DefaultProfile(mobilities[rd.Intn(len(mobilities))]),
		}
	}

	logger.Info("running random queries", zap.Int("queries", len(queries)), zap.Uint64("seed", s))
	start := time.Now()
	results := concurrent.Map(*numWorkers, queries, func(q query) queryResult {
		t := time.Now()
		astar := routing.NewAStar(re)
		res := astar.ShortestPathSearch(q.startId, q.endId, q.profile)
		return queryResult{
			query:         q,
			found:         res.Found(),
			distance:      res.TotalDistance,
			weight:        res.TotalWeight,
			score:         res.AccessibilityScore,
			settledNodes:  astar.GetNumSettledNodes(),
			elapsedMicros: time.Since(t).Microseconds(),
		}
	})
	elapsed := time.Since(start)

	found := 0
	for _, r := range results {
		if r.found {
			found++
		}
	}
	logger.Info("random queries done",
		zap.Duration("elapsed", elapsed),
		zap.Float64("avg_query_micros", float64(elapsed.Microseconds())/float64(max(len(results), 1))),
		zap.Int("found", found))

	if err := writeResults(*outputFile, results); err != nil {
		logger.Fatal("failed to write results", zap.Error(err))
	}
}

func writeResults(filename string, results []queryResult) error {
	fout, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fout.Close()

	w := csv.NewWriter(fout)
	if err := w.Write([]string{"start_id", "end_id", "mobility", "found", "distance", "weight", "score",
		"settled_nodes", "elapsed_us"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write([]string{
			strconv.FormatInt(r.startId, 10),
			strconv.FormatInt(r.endId, 10),
			r.profile.MobilityType.String(),
			strconv.FormatBool(r.found),
			strconv.FormatFloat(r.distance, 'f', 2, 64),
			strconv.FormatFloat(r.weight, 'f', 2, 64),
			strconv.Itoa(r.score),
			strconv.Itoa(r.settledNodes),
			strconv.FormatInt(r.elapsedMicros, 10),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
