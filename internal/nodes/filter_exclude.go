package nodes

import (
	"fmt"

	"bakery_recommend/internal/workflow"
)

// ExcludeFilterNode 移除请求中指定排除的商品（如售罄），
// 以及节点配置中固定排除的商品
type ExcludeFilterNode struct {
	name  string
	fixed []string
}

func NewExcludeFilterNode(cfg workflow.NodeConfig) (workflow.Node, error) {
	var fixed []string
	if raw, ok := cfg.Config["names"].([]interface{}); ok {
		for _, v := range raw {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("filter_exclude '%s': names must be strings", cfg.Name)
			}
			fixed = append(fixed, s)
		}
	}
	return &ExcludeFilterNode{name: cfg.Name, fixed: fixed}, nil
}

func (n *ExcludeFilterNode) Name() string { return n.name }
func (n *ExcludeFilterNode) Type() string { return "filter" }

func (n *ExcludeFilterNode) Execute(ctx *workflow.Context) error {
	candidates := ctx.GetCandidates()
	if len(candidates) == 0 {
		return nil
	}

	names := append([]string(nil), n.fixed...)
	if ctx.Request != nil {
		names = append(names, ctx.Request.Exclude...)
	}

	kept, removed := exclude(candidates, names)
	ctx.UpdateCandidates(kept)
	ctx.AddLog(fmt.Sprintf("Exclude filter (%s) removed %d items, kept %d", n.name, removed, len(kept)))
	return nil
}
