package catalog

import (
	"fmt"
	"os"

	"bakery_recommend/internal/model"
)

// Catalog 是启动时加载一次的只读菜单
// 加载后不再修改，多个请求可以并发读取
type Catalog struct {
	items  []model.MenuItem
	byName map[string]int
}

// Load 从 CSV 文件加载菜单
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu file: %w", err)
	}
	defer f.Close()

	items, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse menu file %s: %w", path, err)
	}
	return New(items), nil
}

// New 用已解析的商品构建 Catalog，入参会被拷贝
func New(items []model.MenuItem) *Catalog {
	c := &Catalog{
		items:  make([]model.MenuItem, len(items)),
		byName: make(map[string]int, len(items)),
	}
	for i, it := range items {
		tags := make([]string, len(it.Tags))
		copy(tags, it.Tags)
		it.Tags = tags
		c.items[i] = it
		if _, ok := c.byName[it.Name]; !ok {
			c.byName[it.Name] = i
		}
	}
	return c
}

// Len 返回商品数量
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items 返回全部商品（按加载顺序）
// 返回的是切片副本，调用方修改不会影响 Catalog
func (c *Catalog) Items() []model.MenuItem {
	out := make([]model.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Get 根据名称获取商品
func (c *Catalog) Get(name string) (model.MenuItem, error) {
	i, ok := c.byName[name]
	if !ok {
		return model.MenuItem{}, fmt.Errorf("menu item not found: %s", name)
	}
	return c.items[i], nil
}

// Filter 返回属于给定分类的商品，保持加载顺序
func (c *Catalog) Filter(categories ...string) []model.MenuItem {
	set := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		set[cat] = struct{}{}
	}
	var out []model.MenuItem
	for _, it := range c.items {
		if _, ok := set[it.Category]; ok {
			out = append(out, it)
		}
	}
	return out
}
