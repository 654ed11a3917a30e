package model

import (
	"time"
)

// 会员等级
const (
	TierFree    = "free"
	TierPremium = "premium"
)

// User 用户模型
// OAuth 登录的用户 PasswordHash 为空，GoogleSub 记录提供方身份
type User struct {
	ID             int       `json:"id" db:"id"`
	Email          string    `json:"email" db:"email" gorm:"unique"`
	Username       string    `json:"username" db:"username"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	GoogleSub      string    `json:"-" db:"google_sub" gorm:"uniqueIndex"`
	AvatarURL      *string   `json:"avatar_url" db:"avatar_url"`
	Points         int       `json:"points" db:"points"`
	Tier           string    `json:"tier" db:"tier"`
	ReadingSeconds int       `json:"reading_seconds" db:"reading_seconds"`
	ItemsRead      int       `json:"items_read" db:"items_read"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// SessionUser 专门用于 Session 存储的用户信息结构
type SessionUser struct {
	ID       int
	Email    string
	Username string
	Tier     string
}

// ReadingHistory 阅读历史
type ReadingHistory struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_history_item"`
	ItemID    int       `json:"item_id" db:"item_id" gorm:"uniqueIndex:idx_user_history_item"`
	Position  int       `json:"position" db:"position"`
	ReadAt    time.Time `json:"read_at" db:"read_at"`
	Item      *Item     `json:"item,omitempty" gorm:"foreignKey:ItemID"` // 关联查询时填充
}

// ItemLike 点赞记录
type ItemLike struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_like_item"`
	ItemID    int       `json:"item_id" db:"item_id" gorm:"uniqueIndex:idx_user_like_item"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
