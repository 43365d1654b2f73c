package nodes

import (
	"fmt"

	"bakery_recommend/internal/workflow"
)

// CategoryFilterNode 从菜单中取出某一分组的商品作为候选集
type CategoryFilterNode struct {
	name  string
	group string
}

func NewCategoryFilterNode(cfg workflow.NodeConfig) (workflow.Node, error) {
	group, _ := cfg.Config["group"].(string)
	if group == "" {
		group = groupBakery
	}
	if group != groupBakery && group != groupDrink {
		return nil, fmt.Errorf("filter_category '%s': unknown group %q", cfg.Name, group)
	}
	return &CategoryFilterNode{name: cfg.Name, group: group}, nil
}

func (n *CategoryFilterNode) Name() string { return n.name }
func (n *CategoryFilterNode) Type() string { return "filter" }

func (n *CategoryFilterNode) Execute(ctx *workflow.Context) error {
	items, err := selectGroup(ctx, n.group)
	if err != nil {
		return err
	}
	ctx.UpdateCandidates(items)
	ctx.AddLog(fmt.Sprintf("Category filter (%s) selected %d %s items", n.name, len(items), n.group))
	return nil
}
