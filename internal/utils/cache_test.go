package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCache(t *testing.T) {
	t.Run("基本读写", func(t *testing.T) {
		c := NewListCache[[]string](10, time.Minute)
		c.Set("k", []string{"a", "b"})

		got, ok := c.Get("k")
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, got)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("未命中返回零值", func(t *testing.T) {
		c := NewListCache[int](10, time.Minute)
		got, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Zero(t, got)
	})

	t.Run("过期后视为未命中并被清除", func(t *testing.T) {
		c := NewListCache[int](10, 10*time.Millisecond)
		c.Set("k", 1)

		time.Sleep(20 * time.Millisecond)
		_, ok := c.Get("k")
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("超出容量触发 LRU 淘汰", func(t *testing.T) {
		c := NewListCache[int](2, time.Minute)
		c.Set("a", 1)
		c.Set("b", 2)
		c.Set("c", 3)

		_, ok := c.Get("a")
		assert.False(t, ok, "最旧的条目应被淘汰")
		_, ok = c.Get("c")
		assert.True(t, ok)
	})

	t.Run("Clear 清空全部", func(t *testing.T) {
		c := NewListCache[int](10, time.Minute)
		c.Set("a", 1)
		c.Set("b", 2)
		c.Clear()
		assert.Equal(t, 0, c.Len())
	})
}

func TestGlobalCache(t *testing.T) {
	t.Run("未初始化时安全降级", func(t *testing.T) {
		Cache = nil
		_, ok := CacheGet("k")
		assert.False(t, ok)
		CacheSet("k", 1, time.Minute) // 不应 panic
		CacheDelete("k")
		CacheClear()
	})

	t.Run("初始化后正常读写", func(t *testing.T) {
		InitCache()
		CacheSet("k", "v", time.Minute)
		got, ok := CacheGet("k")
		require.True(t, ok)
		assert.Equal(t, "v", got)

		CacheDelete("k")
		_, ok = CacheGet("k")
		assert.False(t, ok)
	})
}
