package main

import (
	"context"
	"flag"
	"runtime"

	"github.com/lintang-b-s/accessnav/pkg/engine"
	"github.com/lintang-b-s/accessnav/pkg/http"
	"github.com/lintang-b-s/accessnav/pkg/http/usecases"
	"github.com/lintang-b-s/accessnav/pkg/logger"
	"github.com/lintang-b-s/accessnav/pkg/metrics"
	"github.com/lintang-b-s/accessnav/pkg/spatialindex"
	"github.com/lintang-b-s/accessnav/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	graphFile    = flag.String("graph", "./data/pedestrian.graph", "pedestrian graph file (.graph, .json, .yaml)")
	useRateLimit = flag.Bool("rate_limit", true, "enable the api rate limiter")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	routingEngine, err := engine.NewEngine(*graphFile, logger)
	if err != nil {
		logger.Fatal("failed to load routing engine", zap.Error(err))
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(routingEngine.GetGraph(), logger)

	metric := metrics.NewMetric()
	re := routingEngine.GetRoutingEngine()
	routingService := usecases.NewRoutingService(logger, re, re.GetCostFunction(), rtree, metric,
		viper.GetFloat64("SEARCH_RADIUS_M"), runtime.NumCPU())

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api, err := http.NewServer(logger).Use(ctx, logger, *useRateLimit, routingService, metric)
	if err != nil {
		logger.Fatal("failed to start api", zap.Error(err))
	}

	go func() {
		signal := http.GracefulShutdown()
		logger.Info("accessnav routing engine server stopping", zap.String("signal", signal.String()))
		cleanup()
	}()

	if err := api.Wait(); err != nil && err != context.Canceled {
		logger.Error("api stopped with error", zap.Error(err))
	}
	logger.Info("accessnav routing engine server stopped")
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
