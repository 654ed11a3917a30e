package repository

import (
	"time"

	"github.com/user/novelle/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Add 点赞
// 返回是否真的新增（重复点赞不重复计数）
func (r *LikeRepository) Add(userID, itemID int) (bool, error) {
	like := &model.ItemLike{
		UserID:    userID,
		ItemID:    itemID,
		CreatedAt: time.Now(),
	}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Remove 取消点赞
func (r *LikeRepository) Remove(userID, itemID int) (bool, error) {
	result := r.db.Where("user_id = ? AND item_id = ?", userID, itemID).Delete(&model.ItemLike{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IsLiked 检查是否已点赞
func (r *LikeRepository) IsLiked(userID, itemID int) (bool, error) {
	var count int64
	err := r.db.Model(&model.ItemLike{}).Where("user_id = ? AND item_id = ?", userID, itemID).Count(&count).Error
	return count > 0, err
}
