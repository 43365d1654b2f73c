package model

// MenuItem 代表菜单中的一个商品（面包、饮品等）
// Name 在同一份菜单内唯一，作为商品标识
type MenuItem struct {
	Category  string   `json:"category"`
	Name      string   `json:"name"`
	Price     int      `json:"price"`
	Sweetness int      `json:"sweetness"` // 0~5
	Tags      []string `json:"tags"`
}

// HasTag 判断商品是否带有指定标签
func (m MenuItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ScoredItem 是一次请求内计算出的 (商品, 分数) 对，不会回写到商品上
type ScoredItem struct {
	MenuItem
	Score int `json:"score"`
}

// Combo 代表一组 1~3 个商品构成的推荐套餐
type Combo struct {
	Items      []MenuItem `json:"items"`
	TotalPrice int        `json:"total_price"`
	TotalScore int        `json:"total_score"`
	Count      int        `json:"count"`
}

// Names 返回套餐内商品名称（保持成员顺序）
func (c Combo) Names() []string {
	names := make([]string, len(c.Items))
	for i, it := range c.Items {
		names[i] = it.Name
	}
	return names
}
