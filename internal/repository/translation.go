package repository

import (
	"errors"

	"github.com/user/novelle/internal/model"
	"gorm.io/gorm"
)

type TranslationRepository struct {
	db *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) *TranslationRepository {
	return &TranslationRepository{db: db}
}

// Find 根据原始标题和语言查找作品翻译
func (r *TranslationRepository) Find(originalTitle, lang string) (*model.ItemTranslation, error) {
	var tr model.ItemTranslation
	err := r.db.Where("original_title = ? AND language = ?", originalTitle, lang).First(&tr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &tr, nil
}

// Upsert 更新或插入作品翻译
func (r *TranslationRepository) Upsert(tr *model.ItemTranslation) error {
	existing, err := r.Find(tr.OriginalTitle, tr.Language)
	if err != nil {
		return err
	}
	if existing != nil {
		tr.ID = existing.ID
		return r.db.Save(tr).Error
	}
	return r.db.Create(tr).Error
}
