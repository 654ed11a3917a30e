package model

import (
	"time"
)

// ViewLog 阅读会话日志
// 会话 ID 由客户端（或日志器）单页生命周期内生成，服务端按 session_id 归并
type ViewLog struct {
	ID             int        `json:"id" db:"id"`
	SessionID      string     `json:"session_id" db:"session_id" gorm:"uniqueIndex"`
	ItemID         int        `json:"item_id" db:"item_id" gorm:"index"`
	UserID         *int       `json:"user_id" db:"user_id"`
	RevenueType    string     `json:"revenue_type" db:"revenue_type"`
	DeviceType     string     `json:"device_type" db:"device_type"`
	ElapsedSeconds int        `json:"elapsed_seconds" db:"elapsed_seconds"`
	LastPosition   int        `json:"last_position" db:"last_position"`
	StartedAt      time.Time  `json:"started_at" db:"started_at"`
	EndedAt        *time.Time `json:"ended_at" db:"ended_at"`
}

// ViewReport 会话上报载荷（start / heartbeat / end 共用）
type ViewReport struct {
	SessionID   string `json:"session_id"`
	ItemID      int    `json:"item_id"`
	UserID      *int   `json:"user_id,omitempty"`
	RevenueType string `json:"revenue_type,omitempty"`
	DeviceType  string `json:"device_type,omitempty"`
	ElapsedSecs int    `json:"elapsed_seconds"`
	Position    int    `json:"position"`
	Foreground  bool   `json:"foreground"`
}
