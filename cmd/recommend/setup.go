package main

import (
	"bakery_recommend/internal/nodes"
	"bakery_recommend/internal/workflow"
)

// RegisterNodes 注册所有可用的 Workflow 节点
func RegisterNodes() *workflow.Registry {
	registry := workflow.NewRegistry()

	// 分类过滤：bakery / drink
	registry.Register("filter_category", nodes.NewCategoryFilterNode)

	// 排除售罄等商品
	registry.Register("filter_exclude", nodes.NewExcludeFilterNode)

	// 单品打分排序
	registry.Register("rank_score", nodes.NewScoreRankNode)

	// 预算内组合搜索
	registry.Register("combo_search", nodes.NewComboSearchNode)

	return registry
}
