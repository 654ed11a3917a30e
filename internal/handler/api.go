package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/novelle/internal/i18n"
	"github.com/user/novelle/internal/middleware"
	"github.com/user/novelle/internal/model"
	"github.com/user/novelle/internal/utils"
)

// ItemView 作品的接口响应形态（标题/简介已本地化）
type ItemView struct {
	*model.Item
	Title       string `json:"title"`
	Description string `json:"description"`
}

// itemView 按请求语言本地化单个作品
func (h *Handler) itemView(item *model.Item, lang string) *ItemView {
	v := &ItemView{Item: item, Title: item.Title, Description: item.Description}
	if lang == i18n.DefaultLanguage {
		return v
	}

	v.Title = h.Translator.GetItemTranslation(item.Title, "title", lang)
	if desc := h.Translator.GetItemTranslation(item.Title, "description", lang); desc != "" {
		v.Description = desc
	}
	return v
}

// itemViews 批量本地化
func (h *Handler) itemViews(items []*model.Item, lang string) []*ItemView {
	views := make([]*ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, h.itemView(item, lang))
	}
	return views
}

// ListItems 作品列表
func (h *Handler) ListItems(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	cacheKey := "items:" + strconv.Itoa(limit) + ":" + strconv.Itoa(offset)
	items, ok := h.listCache.Get(cacheKey)
	if !ok {
		var err error
		items, err = h.Repos.Item.List(limit, offset)
		if err != nil {
			utils.InternalServerError(c, "")
			return
		}
		h.listCache.Set(cacheKey, items)
	}

	utils.Success(c, h.itemViews(items, h.lang(c)))
}

// FeaturedItems 推荐作品
func (h *Handler) FeaturedItems(c *gin.Context) {
	items, ok := h.listCache.Get("items:featured")
	if !ok {
		var err error
		items, err = h.Repos.Item.ListFeatured(10)
		if err != nil {
			utils.InternalServerError(c, "")
			return
		}
		h.listCache.Set("items:featured", items)
	}

	utils.Success(c, h.itemViews(items, h.lang(c)))
}

// CanvasItems 条漫类作品（canvas 标签）
func (h *Handler) CanvasItems(c *gin.Context) {
	items, ok := h.listCache.Get("items:canvas")
	if !ok {
		var err error
		items, err = h.Repos.Item.ListByTag("canvas", 50)
		if err != nil {
			utils.InternalServerError(c, "")
			return
		}
		h.listCache.Set("items:canvas", items)
	}

	utils.Success(c, h.itemViews(items, h.lang(c)))
}

// GetItem 作品详情
func (h *Handler) GetItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "作品 ID 不正确")
		return
	}

	item, err := h.Repos.Item.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if item == nil {
		utils.NotFound(c, i18n.GetTranslation("error.notFound", h.lang(c)))
		return
	}

	utils.Success(c, h.itemView(item, h.lang(c)))
}

// SimilarItems 相似作品
func (h *Handler) SimilarItems(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "作品 ID 不正确")
		return
	}

	item, err := h.Repos.Item.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if item == nil {
		utils.NotFound(c, "")
		return
	}

	similar, err := h.Repos.Item.ListSimilar(item, 10)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, h.itemViews(similar, h.lang(c)))
}

// Rankings 排行榜（按 rank 升序）
func (h *Handler) Rankings(c *gin.Context) {
	rankings, ok := h.rankCache.Get("rankings:current")
	if !ok {
		var err error
		rankings, err = h.Repos.Ranking.ListCurrent(50)
		if err != nil {
			utils.InternalServerError(c, "")
			return
		}
		h.rankCache.Set("rankings:current", rankings)
	}

	lang := h.lang(c)
	type rankingView struct {
		*model.Ranking
		Item *ItemView `json:"item,omitempty"`
	}
	views := make([]*rankingView, 0, len(rankings))
	for _, r := range rankings {
		v := &rankingView{Ranking: r}
		if r.Item != nil {
			v.Item = h.itemView(r.Item, lang)
		}
		views = append(views, v)
	}

	utils.Success(c, views)
}

// GetUser 当前用户信息（/api/user，与 /api/auth/me 等价）
func (h *Handler) GetUser(c *gin.Context) {
	h.Me(c)
}

// LikeItem 点赞
func (h *Handler) LikeItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "作品 ID 不正确")
		return
	}

	added, err := h.Repos.Like.Add(userID, id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	// 重复点赞不重复计数
	if added {
		if err := h.Repos.Item.AdjustLikes(id, 1); err != nil {
			utils.InternalServerError(c, "")
			return
		}
	}
	utils.Success(c, gin.H{"liked": true})
}

// UnlikeItem 取消点赞
func (h *Handler) UnlikeItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "作品 ID 不正确")
		return
	}

	removed, err := h.Repos.Like.Remove(userID, id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if removed {
		if err := h.Repos.Item.AdjustLikes(id, -1); err != nil {
			utils.InternalServerError(c, "")
			return
		}
	}
	utils.Success(c, gin.H{"liked": false})
}

// ListHistory 阅读历史
func (h *Handler) ListHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	histories, err := h.Repos.History.ListByUser(userID, 50, 0)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, histories)
}

// SyncHistory 同步阅读进度
func (h *Handler) SyncHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		ItemID   int `json:"item_id" binding:"required"`
		Position int `json:"position" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数不正确")
		return
	}

	err := h.Repos.History.Upsert(&model.ReadingHistory{
		UserID:   userID,
		ItemID:   req.ItemID,
		Position: req.Position,
		ReadAt:   time.Now(),
	})
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, nil)
}

// AppConfig 前端启动所需的公开配置
func (h *Handler) AppConfig(c *gin.Context) {
	utils.Success(c, gin.H{
		"site_name":              h.Config.SiteName,
		"supabase_url":           h.Config.SupabaseURL,
		"supabase_anon_key":      h.Config.SupabaseAnonKey,
		"stripe_publishable_key": h.Config.StripePublishableKey,
		"languages":              i18n.SupportedLanguages,
	})
}
