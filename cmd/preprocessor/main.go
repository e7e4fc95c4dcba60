package main

import (
	"context"
	"flag"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/accessnav/pkg/datastructure"
	"github.com/lintang-b-s/accessnav/pkg/logger"
	"github.com/lintang-b-s/accessnav/pkg/osmparser"
	"github.com/lintang-b-s/accessnav/pkg/util"
	"go.uber.org/zap"
)

var (
	inputFile  = flag.String("input", "./data/map.osm.pbf", "openstreetmap extract (.osm.pbf, .osm) or network file (.json, .yaml)")
	outputFile = flag.String("output", "./data/pedestrian.graph", "output graph file")
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

	var graph *datastructure.Graph
	switch strings.ToLower(filepath.Ext(*inputFile)) {
	case ".json", ".yaml", ".yml":
		logger.Info("reading network file", zap.String("input", *inputFile))
		graph, err = datastructure.LoadGraph(*inputFile)
	default:
		logger.Info("parsing openstreetmap extract", zap.String("input", *inputFile))
		graph, err = osmparser.NewOSMParser(logger).Parse(context.Background(), *inputFile)
	}
	if err != nil {
		logger.Fatal("failed to build pedestrian graph", zap.Error(err))
	}

	logger.Info("graph built",
		zap.Int("nodes", graph.NumberOfNodes()),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Int("components", graph.NumberOfComponents()))

	if err := graph.WriteGraph(*outputFile); err != nil {
		logger.Fatal("failed to write graph", zap.Error(err))
	}

	logger.Sugar().Infof("Preprocessing completed successfully: %s", *outputFile)
}
