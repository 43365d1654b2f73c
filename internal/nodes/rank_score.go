package nodes

import (
	"fmt"

	"bakery_recommend/internal/engine"
	"bakery_recommend/internal/model"
	"bakery_recommend/internal/workflow"
)

// ScoreRankNode 按得分对候选商品排序并截断
// 饮品推荐不使用标签，只按甜度排序 (use_tags=false)
type ScoreRankNode struct {
	name    string
	limit   int
	useTags bool
	group   string
}

func NewScoreRankNode(cfg workflow.NodeConfig) (workflow.Node, error) {
	limit, ok := cfg.Config["limit"].(float64)
	if !ok {
		limit = 3
	}
	useTags, ok := cfg.Config["use_tags"].(bool)
	if !ok {
		useTags = true
	}
	group, _ := cfg.Config["group"].(string)

	return &ScoreRankNode{
		name:    cfg.Name,
		limit:   int(limit),
		useTags: useTags,
		group:   group,
	}, nil
}

func (n *ScoreRankNode) Name() string { return n.name }
func (n *ScoreRankNode) Type() string { return "rank" }

func (n *ScoreRankNode) Execute(ctx *workflow.Context) error {
	candidates, err := candidatesFor(ctx, n.group)
	if err != nil {
		return err
	}

	pref := preferenceOf(ctx)
	if !n.useTags {
		pref = model.Preference{Sweetness: pref.Sweetness}
	}

	ranked := engine.Top(engine.Rank(candidates, pref), n.limit)
	ctx.SetRanked(ranked)
	if len(ranked) == 0 {
		ctx.SetItemsStatus(workflow.StatusNoMatch)
	} else {
		ctx.SetItemsStatus(workflow.StatusOK)
	}

	ctx.AddLog(fmt.Sprintf("Rank (%s) completed. Candidates: %d, Result count: %d", n.name, len(candidates), len(ranked)))
	return nil
}
