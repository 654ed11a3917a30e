package repository

import (
	"errors"
	"time"

	"github.com/user/novelle/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建本地账号用户
func (r *UserRepository) Create(email, username, password string) (*model.User, error) {
	// 密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Tier:         model.TierFree,
		CreatedAt:    time.Now(),
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// UpsertByGoogleSub 按 OAuth 身份原子化读取或创建用户
// 并发首次登录时由唯一约束保证只会产生一条记录
func (r *UserRepository) UpsertByGoogleSub(sub, email, username string, avatarURL *string) (*model.User, error) {
	user := &model.User{
		Email:     email,
		Username:  username,
		GoogleSub: sub,
		AvatarURL: avatarURL,
		Tier:      model.TierFree,
		CreatedAt: time.Now(),
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "google_sub"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "avatar_url"}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}

	// 冲突路径下 Create 不回填已有字段，重新读取完整记录
	return r.FindByGoogleSub(sub)
}

// FindByGoogleSub 根据 OAuth 身份查找用户
func (r *UserRepository) FindByGoogleSub(sub string) (*model.User, error) {
	var user model.User
	err := r.db.Where("google_sub = ?", sub).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByEmail 根据邮箱查找用户
func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByID 根据 ID 查找用户
func (r *UserRepository) FindByID(id int) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// CheckPassword 验证密码
func (r *UserRepository) CheckPassword(user *model.User, password string) bool {
	if user.PasswordHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

// UpdateUsername 更新用户名
func (r *UserRepository) UpdateUsername(userID int, username string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("username", username).Error
}

// AddReadingStats 累加阅读统计
func (r *UserRepository) AddReadingStats(userID, seconds, itemsRead int) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"reading_seconds": gorm.Expr("reading_seconds + ?", seconds),
			"items_read":      gorm.Expr("items_read + ?", itemsRead),
		}).Error
}

// UpdateTier 更新会员等级
func (r *UserRepository) UpdateTier(userID int, tier string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("tier", tier).Error
}

// Count 获取用户总数
func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}
