package repository

import (
	"github.com/user/novelle/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Upsert 更新或插入阅读记录
func (r *HistoryRepository) Upsert(h *model.ReadingHistory) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"position", "read_at"}),
	}).Create(h).Error
}

// ListByUser 获取用户阅读历史
func (r *HistoryRepository) ListByUser(userID, limit, offset int) ([]*model.ReadingHistory, error) {
	var histories []*model.ReadingHistory
	err := r.db.Preload("Item").
		Where("user_id = ?", userID).
		Order("read_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&histories).Error
	return histories, err
}

// CountByUser 统计用户阅读历史数量
func (r *HistoryRepository) CountByUser(userID int) (int, error) {
	var count int64
	err := r.db.Model(&model.ReadingHistory{}).Where("user_id = ?", userID).Count(&count).Error
	return int(count), err
}

// Delete 删除阅读记录
func (r *HistoryRepository) Delete(userID, id int) error {
	return r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&model.ReadingHistory{}).Error
}
