package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTranslation(t *testing.T) {
	t.Run("默认语言表的所有 key 在任何语言下都有非空文案", func(t *testing.T) {
		for _, lang := range SupportedLanguages {
			for _, key := range Keys() {
				got := GetTranslation(key, lang)
				require.NotEmpty(t, got, "key=%s lang=%s", key, lang)
			}
		}
	})

	t.Run("目标语言有文案时返回目标语言", func(t *testing.T) {
		assert.Equal(t, "ホーム", GetTranslation("nav.home", "ja"))
		assert.Equal(t, "首页", GetTranslation("nav.home", "zh"))
	})

	t.Run("目标语言缺项时回退到英文", func(t *testing.T) {
		// rankings.up 只在 en 表里有
		assert.Equal(t, "Up", GetTranslation("rankings.up", "ja"))
		assert.Equal(t, "Up", GetTranslation("rankings.up", "zh"))
	})

	t.Run("不支持的语言回退到英文", func(t *testing.T) {
		assert.Equal(t, "Home", GetTranslation("nav.home", "fr"))
	})

	t.Run("未定义的 key 返回 key 本身", func(t *testing.T) {
		assert.Equal(t, "no.such.key", GetTranslation("no.such.key", "en"))
		assert.Equal(t, "no.such.key", GetTranslation("no.such.key", "ja"))
	})
}

func TestGetItemTranslation(t *testing.T) {
	// 不挂数据库：所有查找都当作缺失，验证回退行为
	tr := NewTranslator(nil)

	t.Run("缺失翻译时 title 原样返回", func(t *testing.T) {
		for _, lang := range SupportedLanguages {
			assert.Equal(t, "五番町の夜", tr.GetItemTranslation("五番町の夜", "title", lang))
		}
	})

	t.Run("缺失翻译时 description 返回空串", func(t *testing.T) {
		assert.Equal(t, "", tr.GetItemTranslation("五番町の夜", "description", "ja"))
		assert.Equal(t, "", tr.GetItemTranslation("五番町の夜", "description", "en"))
	})

	t.Run("默认语言直接返回原始标题", func(t *testing.T) {
		assert.Equal(t, "Midnight Garden", tr.GetItemTranslation("Midnight Garden", "title", "en"))
	})
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("en"))
	assert.True(t, IsSupported("ja"))
	assert.True(t, IsSupported("zh"))
	assert.False(t, IsSupported(""))
	assert.False(t, IsSupported("fr"))
}
