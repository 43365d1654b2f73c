package catalog

// 菜单分类
const (
	CategoryBread    = "bread"
	CategorySandwich = "sandwich"
	CategorySalad    = "salad"
	CategoryDessert  = "dessert"

	CategoryCoffee   = "coffee"
	CategoryLatte    = "latte"
	CategoryAde      = "ade"
	CategorySmoothie = "smoothie"
	CategoryTea      = "tea"
)

var (
	// BakeryCategories 可参与套餐组合的分类
	BakeryCategories = []string{CategoryBread, CategorySandwich, CategorySalad, CategoryDessert}
	// DrinkCategories 饮品分类
	DrinkCategories = []string{CategoryCoffee, CategoryLatte, CategoryAde, CategorySmoothie, CategoryTea}
	// SelectableTags 前端可供选择的口味标签
	SelectableTags = []string{"#sweet", "#salty", "#nutty", "#crispy", "#moist", "#hearty", "#light", "#choco", "#fruit"}
)

// IsBakery 判断分类是否属于烘焙类
func IsBakery(category string) bool {
	return contains(BakeryCategories, category)
}

// IsDrink 判断分类是否属于饮品
func IsDrink(category string) bool {
	return contains(DrinkCategories, category)
}

// IsKnownCategory 判断分类是否在固定集合内
func IsKnownCategory(category string) bool {
	return IsBakery(category) || IsDrink(category)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
