package nodes

import (
	"fmt"

	"bakery_recommend/internal/engine"
	"bakery_recommend/internal/metrics"
	"bakery_recommend/internal/model"
	"bakery_recommend/internal/workflow"
)

// ComboSearchNode 在预算内搜索商品组合
type ComboSearchNode struct {
	name  string
	opts  engine.ComboOptions
	group string
}

func NewComboSearchNode(cfg workflow.NodeConfig) (workflow.Node, error) {
	opts := engine.DefaultComboOptions()
	if v, ok := cfg.Config["pool_size"].(float64); ok {
		opts.PoolSize = int(v)
	}
	if v, ok := cfg.Config["max_results"].(float64); ok {
		opts.MaxResults = int(v)
	}
	if v, ok := cfg.Config["max_combo_size"].(float64); ok {
		opts.MaxComboSize = int(v)
	}
	if opts.PoolSize <= 0 || opts.MaxResults <= 0 || opts.MaxComboSize <= 0 {
		return nil, fmt.Errorf("combo_search '%s': pool_size, max_results and max_combo_size must be positive", cfg.Name)
	}
	group, _ := cfg.Config["group"].(string)

	return &ComboSearchNode{name: cfg.Name, opts: opts, group: group}, nil
}

func (n *ComboSearchNode) Name() string { return n.name }
func (n *ComboSearchNode) Type() string { return "combo" }

func (n *ComboSearchNode) Execute(ctx *workflow.Context) error {
	candidates, err := candidatesFor(ctx, n.group)
	if err != nil {
		return err
	}

	budget := 0
	if ctx.Request != nil {
		budget = ctx.Request.Budget
	}

	// 预算连最便宜的一件都买不起，与“搜不到组合”区分开
	if cheapest, ok := engine.MinPrice(candidates); ok && cheapest > budget {
		ctx.SetCombos([]model.Combo{})
		ctx.SetCombosStatus(workflow.StatusBudgetTooLow)
		ctx.AddLog(fmt.Sprintf("Combo search (%s) skipped: budget %d below cheapest item %d", n.name, budget, cheapest))
		return nil
	}

	combos, stats := engine.SearchCombos(candidates, preferenceOf(ctx), budget, n.opts)
	metrics.RecordComboSearch(stats.Evaluated)

	ctx.SetCombos(combos)
	if len(combos) == 0 {
		ctx.SetCombosStatus(workflow.StatusNoMatch)
	} else {
		ctx.SetCombosStatus(workflow.StatusOK)
	}
	ctx.AddLog(fmt.Sprintf("Combo search (%s) pool=%d evaluated=%d feasible=%d returned=%d",
		n.name, stats.Pool, stats.Evaluated, stats.Feasible, len(combos)))
	return nil
}
