package repository

import (
	"errors"

	"github.com/user/novelle/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// List 获取作品列表
func (r *ItemRepository) List(limit, offset int) ([]*model.Item, error) {
	var items []*model.Item
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

// ListFeatured 获取推荐作品
func (r *ItemRepository) ListFeatured(limit int) ([]*model.Item, error) {
	var items []*model.Item
	err := r.db.Where("is_featured = ?", true).
		Order("view_count DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// ListByTag 按标签筛选作品（如 canvas）
func (r *ItemRepository) ListByTag(tag string, limit int) ([]*model.Item, error) {
	var items []*model.Item
	err := r.db.Where("? = ANY(tags)", tag).
		Order("view_count DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// FindByID 根据 ID 查找作品
func (r *ItemRepository) FindByID(id int) (*model.Item, error) {
	var item model.Item
	err := r.db.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// IncrementViews 浏览数 +1
func (r *ItemRepository) IncrementViews(id int) error {
	return r.db.Model(&model.Item{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// AdjustLikes 调整点赞数（delta 可为负）
func (r *ItemRepository) AdjustLikes(id, delta int) error {
	return r.db.Model(&model.Item{}).Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("GREATEST(like_count + ?, 0)", delta)).Error
}

// ListSimilar 基于向量检索相似作品，没有向量时回退到同热度作品
func (r *ItemRepository) ListSimilar(item *model.Item, limit int) ([]*model.Item, error) {
	var items []*model.Item
	if item.Embedding == nil {
		err := r.db.Where("id <> ?", item.ID).
			Order("view_count DESC").
			Limit(limit).
			Find(&items).Error
		return items, err
	}

	err := r.db.Where("id <> ? AND embedding IS NOT NULL", item.ID).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <=> ?", Vars: []interface{}{*item.Embedding}},
		}).
		Limit(limit).
		Find(&items).Error
	return items, err
}

// WeeklyViews 统计近 7 天各作品的阅读会话数（用于排行榜快照）
func (r *ItemRepository) WeeklyViews() (map[int]int, error) {
	type row struct {
		ItemID int
		Views  int
	}
	var rows []row
	err := r.db.Model(&model.ViewLog{}).
		Select("item_id, COUNT(*) AS views").
		Where("started_at > NOW() - INTERVAL '7 days'").
		Group("item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make(map[int]int, len(rows))
	for _, rw := range rows {
		views[rw.ItemID] = rw.Views
	}
	return views, nil
}
