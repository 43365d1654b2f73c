package model

// Preference 描述一次推荐请求中用户的口味偏好
type Preference struct {
	Tags      []string `json:"tags"`      // 最多 3 个
	Sweetness int      `json:"sweetness"` // 目标甜度 0~5
}

// Request 是一次推荐请求的全部输入，不依赖任何会话状态
type Request struct {
	Preference
	Budget     int      `json:"budget"`
	Categories []string `json:"categories,omitempty"` // 套餐可选分类，空表示全部烘焙类
	Category   string   `json:"category,omitempty"`   // 饮品分类
	Exclude    []string `json:"exclude,omitempty"`    // 需要排除的商品（如售罄）
}
