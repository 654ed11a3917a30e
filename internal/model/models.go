package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// Item 作品模型（视觉小说）
type Item struct {
	ID          int            `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	ImageURL    string         `json:"image_url" db:"image_url"`
	Tags        pq.StringArray `json:"tags" db:"tags" gorm:"type:text[]"`
	Rating      string         `json:"rating" db:"rating"`
	ViewCount   int            `json:"view_count" db:"view_count"`
	LikeCount   int            `json:"like_count" db:"like_count"`
	IsFeatured  bool           `json:"is_featured" db:"is_featured" gorm:"index"`
	// 相似作品检索用的向量，可为空
	Embedding *pgvector.Vector `json:"-" db:"embedding" gorm:"type:vector(768)"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// ItemTranslation 作品多语言信息（以默认语言标题为键）
type ItemTranslation struct {
	ID            int    `json:"id" db:"id"`
	OriginalTitle string `json:"original_title" db:"original_title" gorm:"uniqueIndex:idx_item_translation_lang"`
	Language      string `json:"language" db:"language" gorm:"uniqueIndex:idx_item_translation_lang"`
	Title         string `json:"title" db:"title"`
	Description   string `json:"description" db:"description"`
}

// Ranking 排行榜快照条目
// 同一快照内 rank 为从 1 开始的连续排列
type Ranking struct {
	ID           int       `json:"id" db:"id"`
	ItemID       int       `json:"item_id" db:"item_id"`
	Rank         int       `json:"rank" db:"rank"`
	PreviousRank *int      `json:"previous_rank" db:"previous_rank"`
	WeeklyViews  int       `json:"weekly_views" db:"weekly_views"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	Item         *Item     `json:"item,omitempty" gorm:"foreignKey:ItemID"` // 关联查询时填充
}

// PointsPackage 积分套餐（静态商品目录）
type PointsPackage struct {
	ID              int    `json:"id" db:"id"`
	Title           string `json:"title" db:"title"`
	Price           string `json:"price" db:"price"`
	Points          int    `json:"points" db:"points"`
	IsPopular       bool   `json:"is_popular" db:"is_popular"`
	DiscountPercent int    `json:"discount_percent" db:"discount_percent"`
}

// PointsPurchase 积分购买记录
type PointsPurchase struct {
	ID              int       `json:"id" db:"id"`
	UserID          int       `json:"user_id" db:"user_id" gorm:"index"`
	PackageID       int       `json:"package_id" db:"package_id"`
	Points          int       `json:"points" db:"points"`
	Price           string    `json:"price" db:"price"`
	PaymentIntentID string    `json:"payment_intent_id" db:"payment_intent_id" gorm:"uniqueIndex"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
