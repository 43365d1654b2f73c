package workflow

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"bakery_recommend/internal/metrics"
)

// ErrPipelineNotFound 表示请求的场景没有对应的 Pipeline
var ErrPipelineNotFound = errors.New("pipeline not found")

// PipelineConfig 单个 Pipeline 的配置
type PipelineConfig struct {
	Description string       `json:"description"`
	Nodes       []NodeConfig `json:"nodes"`
}

// NodeConfig 节点的配置片段
type NodeConfig struct {
	Name   string                 `json:"name"`
	Type   string                 `json:"type"`
	Config map[string]interface{} `json:"config"`
	Nodes  []NodeConfig           `json:"nodes,omitempty"` // 用于组合节点 (如 parallel)
}

// GlobalConfig 整个配置文件的结构
type GlobalConfig struct {
	Pipelines map[string]PipelineConfig `json:"pipelines"`
}

// NodeFactory 创建 Node 的函数签名
type NodeFactory func(config NodeConfig) (Node, error)

// Registry 节点注册表
type Registry struct {
	factories map[string]NodeFactory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]NodeFactory),
	}
}

// Register 注册一个新的节点类型
func (r *Registry) Register(nodeType string, factory NodeFactory) {
	r.factories[nodeType] = factory
}

// CreateNode 根据配置创建节点实例
func (r *Registry) CreateNode(cfg NodeConfig) (Node, error) {
	// parallel 属于框架层面的能力
	if cfg.Type == "parallel" {
		var children []Node
		for _, childCfg := range cfg.Nodes {
			childNode, err := r.CreateNode(childCfg)
			if err != nil {
				return nil, err
			}
			children = append(children, childNode)
		}
		limit, _ := cfg.Config["max_concurrency"].(float64)
		return NewParallelNode(cfg.Name, children).WithLimit(int(limit)), nil
	}

	factory, ok := r.factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown node type: %s", cfg.Type)
	}
	return factory(cfg)
}

// Engine 流程引擎
type Engine struct {
	pipelines map[string][]Node // scene -> nodes
	registry  *Registry
}

// NewEngine 从配置文件创建引擎
func NewEngine(configPath string, registry *Registry) (*Engine, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline config: %w", err)
	}
	return NewEngineFromJSON(data, registry)
}

// NewEngineFromJSON 从 JSON 内容创建引擎
func NewEngineFromJSON(data []byte, registry *Registry) (*Engine, error) {
	var globalCfg GlobalConfig
	if err := json.Unmarshal(data, &globalCfg); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline config: %w", err)
	}
	if len(globalCfg.Pipelines) == 0 {
		return nil, errors.New("pipeline config declares no pipelines")
	}

	engine := &Engine{
		pipelines: make(map[string][]Node),
		registry:  registry,
	}

	for scene, pipeCfg := range globalCfg.Pipelines {
		var nodes []Node
		for _, nodeCfg := range pipeCfg.Nodes {
			node, err := registry.CreateNode(nodeCfg)
			if err != nil {
				return nil, fmt.Errorf("failed to create node '%s' in pipeline '%s': %w", nodeCfg.Name, scene, err)
			}
			nodes = append(nodes, node)
		}
		engine.pipelines[scene] = nodes
	}

	return engine, nil
}

// Scenes 返回所有已配置的场景名（已排序）
func (e *Engine) Scenes() []string {
	scenes := make([]string, 0, len(e.pipelines))
	for s := range e.pipelines {
		scenes = append(scenes, s)
	}
	sort.Strings(scenes)
	return scenes
}

// Run 执行指定场景的推荐流程
func (e *Engine) Run(ctx *Context, scene string) error {
	nodes, ok := e.pipelines[scene]
	if !ok {
		return fmt.Errorf("%w for scene: %s", ErrPipelineNotFound, scene)
	}

	ctx.AddLog(fmt.Sprintf("Starting pipeline execution for scene: %s", scene))

	for _, node := range nodes {
		if ctx.Ctx != nil {
			if err := ctx.Ctx.Err(); err != nil {
				return fmt.Errorf("pipeline %s interrupted before node %s: %w", scene, node.Name(), err)
			}
		}
		ctx.AddLog(fmt.Sprintf("Executing node: %s (%s)", node.Name(), node.Type()))
		if err := node.Execute(ctx); err != nil {
			ctx.AddLog(fmt.Sprintf("Node execution failed: %v", err))
			metrics.RecordNodeError(scene, node.Name())
			return fmt.Errorf("node %s: %w", node.Name(), err)
		}
	}

	ctx.AddLog("Pipeline execution completed")
	return nil
}
