package engine

import (
	"github.com/lintang-b-s/accessnav/pkg/costfunction"
	"github.com/lintang-b-s/accessnav/pkg/datastructure"
	"github.com/lintang-b-s/accessnav/pkg/engine/routing"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Engine struct {
	routingEngine *routing.RoutingEngine
}

func (e *Engine) GetRoutingEngine() *routing.RoutingEngine {
	return e.routingEngine
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.routingEngine.GetGraph()
}

// NewEngine. load the pedestrian network at graphFilePath (.graph, .json or .yaml) and build the routing engine.
func NewEngine(graphFilePath string, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting accessibility-aware routing engine...")

	logger.Info("Reading graph from ", zap.String("graphFilePath", graphFilePath))
	graph, err := datastructure.LoadGraph(graphFilePath)
	if err != nil {
		return nil, err
	}
	logger.Info("Graph loaded",
		zap.Int("nodes", graph.NumberOfNodes()),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Int("components", graph.NumberOfComponents()))

	return NewEngineFromGraph(graph, logger)
}

func NewEngineFromGraph(graph *datastructure.Graph, logger *zap.Logger) (*Engine, error) {
	re, err := routing.NewRoutingEngine(graph, costfunction.NewAccessibilityCostFunction(), logger,
		viper.GetInt("ROUTE_CACHE_SIZE"), viper.GetInt("MAX_SETTLED_NODES"))
	if err != nil {
		return nil, err
	}
	return &Engine{routingEngine: re}, nil
}
