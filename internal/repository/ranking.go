package repository

import (
	"github.com/user/novelle/internal/model"
	"gorm.io/gorm"
)

type RankingRepository struct {
	db *gorm.DB
}

func NewRankingRepository(db *gorm.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

// ListCurrent 获取当前快照，按 rank 升序
func (r *RankingRepository) ListCurrent(limit int) ([]*model.Ranking, error) {
	var rankings []*model.Ranking
	err := r.db.Preload("Item").
		Order("rank ASC").
		Limit(limit).
		Find(&rankings).Error
	return rankings, err
}

// ReplaceSnapshot 用新快照整体替换当前排行榜
// 在单个事务内先清空再写入，保证读取方不会看到半个快照
func (r *RankingRepository) ReplaceSnapshot(rankings []*model.Ranking) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM rankings").Error; err != nil {
			return err
		}
		if len(rankings) == 0 {
			return nil
		}
		return tx.Create(rankings).Error
	})
}
