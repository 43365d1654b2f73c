package engine

import "bakery_recommend/internal/model"

// PopularTag 是带有固定加分的“人气”标签，与用户选择的标签无关
const PopularTag = "#popular"

const (
	tagWeight       = 3
	sweetnessCap    = 3
	popularityBonus = 2
)

// Score 计算单个商品在给定偏好下的得分
//
//	score = 3*标签命中数 + max(0, 3-|甜度差|) + (人气 ? 2 : 0)
//
// 纯函数，无副作用，可并发调用
func Score(item model.MenuItem, pref model.Preference) int {
	return scoreWithSet(item, tagSet(pref.Tags), pref.Sweetness)
}

func scoreWithSet(item model.MenuItem, chosen map[string]struct{}, sweetness int) int {
	matched := 0
	seen := make(map[string]struct{}, len(item.Tags))
	for _, t := range item.Tags {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := chosen[t]; ok {
			matched++
		}
	}

	diff := item.Sweetness - sweetness
	if diff < 0 {
		diff = -diff
	}
	fit := sweetnessCap - diff
	if fit < 0 {
		fit = 0
	}

	score := matched*tagWeight + fit
	if item.HasTag(PopularTag) {
		score += popularityBonus
	}
	return score
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}
