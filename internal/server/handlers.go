package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bakery_recommend/internal/catalog"
	"bakery_recommend/internal/engine"
	"bakery_recommend/internal/metrics"
	"bakery_recommend/internal/model"
	"bakery_recommend/internal/nodes"
	"bakery_recommend/internal/workflow"
)

// RecommendRequest 推荐接口请求体
// 超过 3 个标签时只保留前 3 个
type RecommendRequest struct {
	Budget     int      `json:"budget" binding:"min=0"`
	Sweetness  *int     `json:"sweetness" binding:"required,min=0,max=5"`
	Tags       []string `json:"tags" binding:"omitempty,dive,max=32"`
	Categories []string `json:"categories"`
	Category   string   `json:"category"`
	Exclude    []string `json:"exclude"`
}

func (r RecommendRequest) toModel() (*model.Request, error) {
	pref, err := engine.NewPreference(r.Tags, *r.Sweetness)
	if err != nil {
		return nil, err
	}
	if err := engine.ValidateBudget(r.Budget); err != nil {
		return nil, err
	}
	for _, c := range r.Categories {
		if !catalog.IsBakery(c) {
			return nil, fmt.Errorf("category %q is not a bakery category", c)
		}
	}
	if r.Category != "" && !catalog.IsDrink(r.Category) {
		return nil, fmt.Errorf("category %q is not a drink category", r.Category)
	}
	return &model.Request{
		Preference: pref,
		Budget:     r.Budget,
		Categories: r.Categories,
		Category:   r.Category,
		Exclude:    r.Exclude,
	}, nil
}

// handleRecommend 处理推荐请求
// POST /api/v1/recommend/:scene
func (s *Server) handleRecommend(c *gin.Context) {
	scene := c.Param("scene")

	var body RecommendRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "invalid request body: "+err.Error())
		return
	}
	req, err := body.toModel()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.opts.RequestTimeout)
	defer cancel()

	reqID := c.GetString(requestIDKey)
	wfCtx := workflow.NewContext(ctx, reqID, req, s.catalog)
	wfCtx.Config["scene"] = scene

	if err := s.engine.Run(wfCtx, scene); err != nil {
		switch {
		case errors.Is(err, workflow.ErrPipelineNotFound):
			respondError(c, http.StatusNotFound, "unknown_scene", fmt.Sprintf("scene '%s' not supported", scene))
		case errors.Is(err, nodes.ErrInvalidRequest):
			respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "recommendation_failed", fmt.Sprintf("recommendation failed: %v", err))
		}
		return
	}

	// 分支因请求参数失败时（如 pairing 缺少饮品分类）整体按参数错误处理
	branchErrs := wfCtx.BranchErrors()
	for _, be := range branchErrs {
		if errors.Is(be.Err, nodes.ErrInvalidRequest) {
			respondError(c, http.StatusBadRequest, "invalid_request", be.Message)
			return
		}
	}

	status := wfCtx.GetStatus()
	metrics.RecordRecommendation(scene, status)

	resp := gin.H{
		"request_id": reqID,
		"scene":      scene,
		"status":     status,
	}
	if combos := wfCtx.GetCombos(); combos != nil {
		resp["combos"] = combos
		resp["combos_status"] = wfCtx.GetCombosStatus()
	}
	if items := wfCtx.GetRanked(); items != nil {
		resp["items"] = items
		resp["items_status"] = wfCtx.GetItemsStatus()
	}
	if len(branchErrs) > 0 {
		resp["errors"] = branchErrs
	}
	if s.opts.Debug {
		resp["trace"] = wfCtx.Logs()
	}
	c.JSON(http.StatusOK, resp)
}

// handleCatalog 返回菜单，可按分类过滤
// GET /api/v1/catalog?category=coffee
func (s *Server) handleCatalog(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusOK, gin.H{"items": s.catalog.Items()})
		return
	}
	if !catalog.IsKnownCategory(category) {
		respondError(c, http.StatusBadRequest, "invalid_request", fmt.Sprintf("unknown category %q", category))
		return
	}
	items := s.catalog.Filter(category)
	if items == nil {
		items = []model.MenuItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// handleCatalogItem 按名称查询单个商品
// GET /api/v1/catalog/:name
func (s *Server) handleCatalogItem(c *gin.Context) {
	item, err := s.catalog.Get(c.Param("name"))
	if err != nil {
		respondError(c, http.StatusNotFound, "item_not_found", err.Error())
		return
	}
	c.JSON(http.StatusOK, item)
}

// handleTags 返回前端需要的标签与分类
func (s *Server) handleTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tags":              catalog.SelectableTags,
		"max_tags":          engine.MaxTags,
		"bakery_categories": catalog.BakeryCategories,
		"drink_categories":  catalog.DrinkCategories,
		"scenes":            s.engine.Scenes(),
	})
}
