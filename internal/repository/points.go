package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/user/novelle/internal/model"
	"gorm.io/gorm"
)

type PointsRepository struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

// ListPackages 获取积分套餐目录
func (r *PointsRepository) ListPackages() ([]*model.PointsPackage, error) {
	var packages []*model.PointsPackage
	err := r.db.Order("points ASC").Find(&packages).Error
	return packages, err
}

// FindPackage 根据 ID 查找套餐
func (r *PointsRepository) FindPackage(id int) (*model.PointsPackage, error) {
	var pkg model.PointsPackage
	err := r.db.First(&pkg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &pkg, nil
}

// RecordPurchase 记录购买并入账积分
// 写购买记录和加余额在同一事务内，保证余额恰好增加套餐点数
func (r *PointsRepository) RecordPurchase(userID int, pkg *model.PointsPackage, paymentIntentID string) (*model.PointsPurchase, error) {
	purchase := &model.PointsPurchase{
		UserID:          userID,
		PackageID:       pkg.ID,
		Points:          pkg.Points,
		Price:           pkg.Price,
		PaymentIntentID: paymentIntentID,
		Status:          "completed",
		CreatedAt:       time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(purchase).Error; err != nil {
			// payment_intent_id 唯一索引：同一笔支付重放不允许二次入账
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicatePurchase
			}
			return err
		}
		result := tx.Model(&model.User{}).Where("id = ?", userID).
			UpdateColumn("points", gorm.Expr("points + ?", pkg.Points))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("用户不存在: %d", userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

// SpendPoints 扣减积分，余额不足时返回错误
func (r *PointsRepository) SpendPoints(userID, points int) error {
	result := r.db.Model(&model.User{}).
		Where("id = ? AND points >= ?", userID, points).
		UpdateColumn("points", gorm.Expr("points - ?", points))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientPoints
	}
	return nil
}

// ListPurchases 获取用户购买记录
func (r *PointsRepository) ListPurchases(userID, limit int) ([]*model.PointsPurchase, error) {
	var purchases []*model.PointsPurchase
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&purchases).Error
	return purchases, err
}

// ErrInsufficientPoints 积分余额不足
var ErrInsufficientPoints = errors.New("积分余额不足")

// ErrDuplicatePurchase 同一 PaymentIntent 已经入账过
var ErrDuplicatePurchase = errors.New("该笔支付已入账")
