package engine

import (
	"sort"
	"strings"

	"bakery_recommend/internal/model"
)

const (
	DefaultPoolSize     = 12
	DefaultMaxResults   = 3
	DefaultMaxComboSize = 3
)

// ComboOptions 控制组合搜索的规模
// PoolSize 是进入枚举前保留的候选数量。该截断是启发式的：
// 只在排名前 PoolSize 的商品里搜索，不保证对整个菜单全局最优
type ComboOptions struct {
	PoolSize     int
	MaxResults   int
	MaxComboSize int
}

// DefaultComboOptions 返回默认参数 (12 / 3 / 3)
func DefaultComboOptions() ComboOptions {
	return ComboOptions{
		PoolSize:     DefaultPoolSize,
		MaxResults:   DefaultMaxResults,
		MaxComboSize: DefaultMaxComboSize,
	}
}

func (o ComboOptions) withDefaults() ComboOptions {
	if o.PoolSize <= 0 {
		o.PoolSize = DefaultPoolSize
	}
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.MaxComboSize <= 0 {
		o.MaxComboSize = DefaultMaxComboSize
	}
	return o
}

// Stats 记录一次组合搜索的工作量
type Stats struct {
	Pool      int // 截断后的候选数量
	Evaluated int // 枚举的子集数量
	Feasible  int // 未超预算的子集数量
}

// RecommendCombos 在预算内推荐至多 MaxResults 个互不相同的商品组合
// 没有可行组合时返回空切片，这是正常结果而不是错误
func RecommendCombos(candidates []model.MenuItem, pref model.Preference, budget int, opts ComboOptions) []model.Combo {
	combos, _ := SearchCombos(candidates, pref, budget, opts)
	return combos
}

type scoredCombo struct {
	idx   []int
	price int
	score int
}

// SearchCombos 与 RecommendCombos 相同，同时返回搜索统计
func SearchCombos(candidates []model.MenuItem, pref model.Preference, budget int, opts ComboOptions) ([]model.Combo, Stats) {
	opts = opts.withDefaults()

	pool := Top(Rank(candidates, pref), opts.PoolSize)
	stats := Stats{Pool: len(pool)}
	out := make([]model.Combo, 0, opts.MaxResults)
	if len(pool) == 0 {
		return out, stats
	}

	var feasible []scoredCombo
	for r := 1; r <= opts.MaxComboSize && r <= len(pool); r++ {
		forEachCombination(len(pool), r, func(idx []int) {
			stats.Evaluated++
			price, score := 0, 0
			for _, i := range idx {
				price += pool[i].Price
				score += pool[i].Score
			}
			if price > budget {
				return
			}
			feasible = append(feasible, scoredCombo{
				idx:   append([]int(nil), idx...),
				price: price,
				score: score,
			})
		})
	}
	stats.Feasible = len(feasible)

	// 分数降序，价格升序，数量降序（同分同价时偏向更丰富的组合）
	sort.SliceStable(feasible, func(i, j int) bool {
		a, b := feasible[i], feasible[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.price != b.price {
			return a.price < b.price
		}
		return len(a.idx) > len(b.idx)
	})

	seen := make(map[string]struct{}, opts.MaxResults)
	for _, c := range feasible {
		items := make([]model.MenuItem, len(c.idx))
		for k, i := range c.idx {
			items[k] = pool[i].MenuItem
		}
		combo := model.Combo{
			Items:      items,
			TotalPrice: c.price,
			TotalScore: c.score,
			Count:      len(items),
		}

		sig := Signature(combo)
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}
		out = append(out, combo)
		if len(out) == opts.MaxResults {
			break
		}
	}
	return out, stats
}

// Signature 返回组合的身份标识：成员名称排序后拼接，与顺序无关
func Signature(c model.Combo) string {
	names := c.Names()
	sort.Strings(names)
	return strings.Join(names, "\x00")
}

// forEachCombination 按字典序枚举 [0,n) 中所有大小为 r 的组合
// fn 收到的切片会被复用，需要保留时自行拷贝
func forEachCombination(n, r int, fn func(idx []int)) {
	if r <= 0 || r > n {
		return
	}
	idx := make([]int, r)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)

		i := r - 1
		for i >= 0 && idx[i] == n-r+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < r; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
