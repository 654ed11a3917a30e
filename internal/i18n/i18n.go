package i18n

import (
	"time"

	"github.com/user/novelle/internal/model"
	"github.com/user/novelle/internal/repository"
	"github.com/user/novelle/internal/utils"
)

// DefaultLanguage 默认语言（回退目标）
const DefaultLanguage = "en"

// SupportedLanguages 支持的语言列表
var SupportedLanguages = []string{"en", "ja", "zh"}

// IsSupported 判断语言代码是否受支持
func IsSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// GetTranslation 界面文案查找
// 回退链：目标语言 → 默认语言 → 原始 key（保底的可读文案）
func GetTranslation(key, lang string) string {
	if table, ok := locales[lang]; ok {
		if s, ok := table[key]; ok && s != "" {
			return s
		}
	}
	if s, ok := locales[DefaultLanguage][key]; ok && s != "" {
		return s
	}
	return key
}

// Translator 作品级翻译查找器，带进程内缓存
type Translator struct {
	repo *repository.TranslationRepository
}

// NewTranslator 创建作品翻译查找器
func NewTranslator(repo *repository.TranslationRepository) *Translator {
	return &Translator{repo: repo}
}

// GetItemTranslation 按原始标题查找作品的本地化标题/简介
// 缺失时 title 字段回退为原始标题，description 字段回退为空串
func (t *Translator) GetItemTranslation(originalTitle, field, lang string) string {
	fallback := ""
	if field == "title" {
		fallback = originalTitle
	}

	if lang == DefaultLanguage || !IsSupported(lang) {
		return fallback
	}

	tr := t.lookup(originalTitle, lang)
	if tr == nil {
		return fallback
	}

	switch field {
	case "title":
		if tr.Title != "" {
			return tr.Title
		}
	case "description":
		if tr.Description != "" {
			return tr.Description
		}
	}
	return fallback
}

// lookup 带缓存的数据库查找，查不到的也缓存（负缓存），避免反复打库
func (t *Translator) lookup(originalTitle, lang string) *model.ItemTranslation {
	if t.repo == nil {
		return nil
	}

	key := "item_translation:" + lang + ":" + originalTitle
	if cached, ok := utils.CacheGet(key); ok {
		tr, _ := cached.(*model.ItemTranslation)
		return tr
	}

	tr, err := t.repo.Find(originalTitle, lang)
	if err != nil {
		// 查找失败按缺失处理，不向上冒泡
		return nil
	}

	utils.CacheSet(key, tr, 10*time.Minute)
	return tr
}
