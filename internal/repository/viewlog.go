package repository

import (
	"errors"
	"time"

	"github.com/user/novelle/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ViewLogRepository struct {
	db *gorm.DB
}

func NewViewLogRepository(db *gorm.DB) *ViewLogRepository {
	return &ViewLogRepository{db: db}
}

// Open 写入会话起始记录
// 重复的 session_id 直接忽略（客户端重发 start 不应报错）
func (r *ViewLogRepository) Open(log *model.ViewLog) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoNothing: true,
	}).Create(log).Error
}

// Heartbeat 更新会话的已读秒数和位置
// 心跳可能乱序到达，elapsed 只增不减
func (r *ViewLogRepository) Heartbeat(sessionID string, elapsedSecs, position int) error {
	return r.db.Model(&model.ViewLog{}).
		Where("session_id = ? AND ended_at IS NULL", sessionID).
		UpdateColumns(map[string]interface{}{
			"elapsed_seconds": gorm.Expr("GREATEST(elapsed_seconds, ?)", elapsedSecs),
			"last_position":   position,
		}).Error
}

// Close 关闭会话，返回这次调用是否真正关掉了该行
// 已关闭的会话不再更新，迟到或重复的 end 上报返回 false（调用方据此跳过统计入账）
func (r *ViewLogRepository) Close(sessionID string, elapsedSecs, position int) (bool, error) {
	now := time.Now()
	result := r.db.Model(&model.ViewLog{}).
		Where("session_id = ? AND ended_at IS NULL", sessionID).
		UpdateColumns(map[string]interface{}{
			"elapsed_seconds": gorm.Expr("GREATEST(elapsed_seconds, ?)", elapsedSecs),
			"last_position":   position,
			"ended_at":        now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindBySessionID 根据会话 ID 查找日志
func (r *ViewLogRepository) FindBySessionID(sessionID string) (*model.ViewLog, error) {
	var log model.ViewLog
	err := r.db.Where("session_id = ?", sessionID).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &log, nil
}
