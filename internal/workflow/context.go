package workflow

import (
	"context"
	"sync"

	"bakery_recommend/internal/catalog"
	"bakery_recommend/internal/model"
)

// 推荐结果状态
const (
	StatusOK           = "ok"
	StatusBudgetTooLow = "budget_too_low"
	StatusNoMatch      = "no_match"
	StatusPartial      = "partial" // 多分支场景中部分分支没有结果
)

// BranchError 记录并行分支中失败的节点，其余分支的结果仍然返回
type BranchError struct {
	Node    string `json:"node"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Context 承载一次推荐流程的所有状态信息
// 每个请求独立创建，Catalog 只读共享；可变字段由锁保护，支持并行节点同时写入
type Context struct {
	Ctx       context.Context
	RequestID string
	Request   *model.Request
	Catalog   *catalog.Catalog
	Config    map[string]interface{}

	mu         sync.RWMutex
	Candidates []model.MenuItem   // 当前候选集
	Ranked     []model.ScoredItem // 单品排序结果
	Combos     []model.Combo      // 套餐推荐结果
	TraceLog   []string

	combosStatus string
	itemsStatus  string
	branchErrs   []BranchError
}

// NewContext 创建一个新的工作流上下文
func NewContext(ctx context.Context, requestID string, req *model.Request, cat *catalog.Catalog) *Context {
	return &Context{
		Ctx:        ctx,
		RequestID:  requestID,
		Request:    req,
		Catalog:    cat,
		Config:     make(map[string]interface{}),
		Candidates: make([]model.MenuItem, 0),
		TraceLog:   make([]string, 0),
	}
}

// GetCandidates 获取当前候选集的副本
func (c *Context) GetCandidates() []model.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]model.MenuItem, len(c.Candidates))
	copy(result, c.Candidates)
	return result
}

// UpdateCandidates 更新整个候选集，用于过滤阶段
func (c *Context) UpdateCandidates(items []model.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Candidates = items
}

// SetRanked 写入单品排序结果
func (c *Context) SetRanked(items []model.ScoredItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Ranked = items
}

// GetRanked 读取单品排序结果
func (c *Context) GetRanked() []model.ScoredItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Ranked
}

// SetCombos 写入套餐推荐结果
func (c *Context) SetCombos(combos []model.Combo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Combos = combos
}

// GetCombos 读取套餐推荐结果
func (c *Context) GetCombos() []model.Combo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Combos
}

// SetCombosStatus 记录套餐结果的状态
func (c *Context) SetCombosStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.combosStatus = status
}

// GetCombosStatus 读取套餐结果的状态，未产生套餐结果时为空
func (c *Context) GetCombosStatus() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.combosStatus
}

// SetItemsStatus 记录单品排序结果的状态
func (c *Context) SetItemsStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.itemsStatus = status
}

// GetItemsStatus 读取单品排序结果的状态，未产生单品结果时为空
func (c *Context) GetItemsStatus() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.itemsStatus
}

// GetStatus 汇总各结果的状态
//   - 只有一类结果时直接返回它的状态
//   - 全部 ok 返回 ok；全部相同的非 ok 状态返回该状态
//   - 其余情况（部分分支有结果，或有分支失败）返回 partial
func (c *Context) GetStatus() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var statuses []string
	for _, s := range []string{c.combosStatus, c.itemsStatus} {
		if s != "" {
			statuses = append(statuses, s)
		}
	}
	if len(statuses) == 0 {
		if len(c.branchErrs) > 0 {
			return StatusPartial
		}
		return StatusOK
	}
	for _, s := range statuses[1:] {
		if s != statuses[0] {
			return StatusPartial
		}
	}
	if len(c.branchErrs) > 0 && statuses[0] == StatusOK {
		return StatusPartial
	}
	return statuses[0]
}

// AddBranchError 记录一个失败的并行分支
func (c *Context) AddBranchError(node string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.branchErrs = append(c.branchErrs, BranchError{Node: node, Message: err.Error(), Err: err})
}

// BranchErrors 返回失败分支的副本
func (c *Context) BranchErrors() []BranchError {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]BranchError, len(c.branchErrs))
	copy(out, c.branchErrs)
	return out
}

// AddLog 添加追踪日志
func (c *Context) AddLog(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.TraceLog = append(c.TraceLog, msg)
}

// Logs 返回追踪日志副本
func (c *Context) Logs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.TraceLog))
	copy(out, c.TraceLog)
	return out
}

// Node 定义工作流中的执行节点
type Node interface {
	Name() string
	Type() string // e.g., "filter", "rank", "combo", "parallel"
	Execute(ctx *Context) error
}
