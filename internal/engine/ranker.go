package engine

import (
	"sort"

	"bakery_recommend/internal/model"
)

// Rank 对商品打分并排序：分数降序，价格升序，其余保持输入顺序（稳定排序）
// 不修改入参
func Rank(items []model.MenuItem, pref model.Preference) []model.ScoredItem {
	chosen := tagSet(pref.Tags)
	scored := make([]model.ScoredItem, len(items))
	for i, it := range items {
		scored[i] = model.ScoredItem{MenuItem: it, Score: scoreWithSet(it, chosen, pref.Sweetness)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Price < scored[j].Price
	})
	return scored
}

// Top 返回排序结果的前 n 个，n <= 0 表示不截断
func Top(ranked []model.ScoredItem, n int) []model.ScoredItem {
	if n > 0 && len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}

// MinPrice 返回商品中的最低价格，列表为空时 ok 为 false
func MinPrice(items []model.MenuItem) (lowest int, ok bool) {
	for i, it := range items {
		if i == 0 || it.Price < lowest {
			lowest = it.Price
		}
	}
	return lowest, len(items) > 0
}
