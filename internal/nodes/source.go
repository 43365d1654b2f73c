package nodes

import (
	"errors"
	"fmt"

	"bakery_recommend/internal/catalog"
	"bakery_recommend/internal/model"
	"bakery_recommend/internal/workflow"
)

const (
	groupBakery = "bakery"
	groupDrink  = "drink"
)

var errNoCatalog = errors.New("workflow context has no catalog")

// ErrInvalidRequest 表示请求参数与节点要求不符（如分类不属于该分组），属于调用方错误
var ErrInvalidRequest = errors.New("invalid request")

// selectGroup 按分组从菜单中取出候选商品，不处理排除列表
//   - bakery: 请求指定的烘焙分类，未指定时取全部烘焙分类
//   - drink:  请求指定的单个饮品分类
func selectGroup(ctx *workflow.Context, group string) ([]model.MenuItem, error) {
	if ctx.Catalog == nil {
		return nil, errNoCatalog
	}
	req := ctx.Request
	if req == nil {
		req = &model.Request{}
	}

	var items []model.MenuItem
	switch group {
	case groupBakery:
		cats := req.Categories
		if len(cats) == 0 {
			cats = catalog.BakeryCategories
		}
		for _, c := range cats {
			if !catalog.IsBakery(c) {
				return nil, fmt.Errorf("%w: category %q is not a bakery category", ErrInvalidRequest, c)
			}
		}
		items = ctx.Catalog.Filter(cats...)
	case groupDrink:
		if req.Category == "" {
			return nil, fmt.Errorf("%w: drink category is required", ErrInvalidRequest)
		}
		if !catalog.IsDrink(req.Category) {
			return nil, fmt.Errorf("%w: category %q is not a drink category", ErrInvalidRequest, req.Category)
		}
		items = ctx.Catalog.Filter(req.Category)
	default:
		return nil, fmt.Errorf("unknown item group %q", group)
	}
	return items, nil
}

// exclude 移除名称在 names 中的商品，返回保留的商品和移除数量
func exclude(items []model.MenuItem, names []string) ([]model.MenuItem, int) {
	if len(names) == 0 {
		return items, 0
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}

	kept := make([]model.MenuItem, 0, len(items))
	removed := 0
	for _, it := range items {
		if _, ok := set[it.Name]; ok {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	return kept, removed
}

// candidatesFor 节点配置了 group 时直接从菜单取并应用请求的排除列表，
// 否则沿用上游过滤后的候选集（排除由 filter_exclude 负责）
func candidatesFor(ctx *workflow.Context, group string) ([]model.MenuItem, error) {
	if group == "" {
		return ctx.GetCandidates(), nil
	}
	items, err := selectGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	if ctx.Request != nil {
		items, _ = exclude(items, ctx.Request.Exclude)
	}
	return items, nil
}

func preferenceOf(ctx *workflow.Context) model.Preference {
	if ctx.Request == nil {
		return model.Preference{}
	}
	return ctx.Request.Preference
}
