package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/novelle/internal/model"
)

// fakeReporter 记录所有上报，便于断言次数与内容
type fakeReporter struct {
	mu         sync.Mutex
	starts     []model.ViewReport
	heartbeats []model.ViewReport
	ends       []model.ViewReport
	fail       bool
}

func (f *fakeReporter) ReportStart(r model.ViewReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts = append(f.starts, r)
	if f.fail {
		return errors.New("network down")
	}
	return nil
}

func (f *fakeReporter) ReportHeartbeat(r model.ViewReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heartbeats = append(f.heartbeats, r)
	if f.fail {
		return errors.New("network down")
	}
	return nil
}

func (f *fakeReporter) ReportEnd(r model.ViewReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ends = append(f.ends, r)
	if f.fail {
		return errors.New("network down")
	}
	return nil
}

func (f *fakeReporter) counts() (starts, heartbeats, ends int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.starts), len(f.heartbeats), len(f.ends)
}

func TestViewLogger_StartEnd(t *testing.T) {
	t.Run("开始后立即结束：时长为 0，恰好一次 start 一次 end", func(t *testing.T) {
		rep := &fakeReporter{}
		l := NewViewLogger(rep, "web", time.Hour)

		l.Start(42, nil, "free")
		l.End()

		starts, heartbeats, ends := rep.counts()
		assert.Equal(t, 1, starts)
		assert.Equal(t, 0, heartbeats)
		assert.Equal(t, 1, ends)
		assert.Equal(t, 0, rep.ends[0].ElapsedSecs)
		assert.False(t, l.Active())
	})

	t.Run("空闲时 End 是空操作", func(t *testing.T) {
		rep := &fakeReporter{}
		l := NewViewLogger(rep, "web", time.Hour)

		l.End()

		starts, heartbeats, ends := rep.counts()
		assert.Zero(t, starts)
		assert.Zero(t, heartbeats)
		assert.Zero(t, ends)
	})

	t.Run("结束后可以再次开始（状态机可重入）", func(t *testing.T) {
		rep := &fakeReporter{}
		l := NewViewLogger(rep, "web", time.Hour)

		l.Start(1, nil, "free")
		first := l.SessionID()
		l.End()
		l.Start(2, nil, "free")
		second := l.SessionID()
		l.End()

		require.NotEmpty(t, first)
		require.NotEmpty(t, second)
		assert.NotEqual(t, first, second, "每次会话的 ID 必须不同")

		starts, _, ends := rep.counts()
		assert.Equal(t, 2, starts)
		assert.Equal(t, 2, ends)
	})
}

func TestViewLogger_DuplicateStart(t *testing.T) {
	// 重复 Start 被忽略：会话不变，也不会出现第二个心跳定时器
	rep := &fakeReporter{}
	l := NewViewLogger(rep, "web", 20*time.Millisecond)

	l.Start(1, nil, "free")
	sid := l.SessionID()
	l.Start(2, nil, "free")

	assert.Equal(t, sid, l.SessionID(), "重复 Start 不应替换会话")
	starts, _, _ := rep.counts()
	assert.Equal(t, 1, starts)

	// 如果出现了第二个定时器，心跳数会翻倍
	time.Sleep(110 * time.Millisecond)
	l.End()

	_, heartbeats, _ := rep.counts()
	assert.GreaterOrEqual(t, heartbeats, 3)
	assert.LessOrEqual(t, heartbeats, 6, "心跳数超出单定时器的可能范围")
}

func TestViewLogger_HeartbeatStopsAfterEnd(t *testing.T) {
	rep := &fakeReporter{}
	l := NewViewLogger(rep, "web", 20*time.Millisecond)

	l.Start(1, nil, "free")
	time.Sleep(70 * time.Millisecond)
	l.End()

	_, afterEnd, _ := rep.counts()
	require.GreaterOrEqual(t, afterEnd, 1, "会话期间应有心跳")

	// 结束后不应再有任何心跳
	time.Sleep(100 * time.Millisecond)
	_, final, _ := rep.counts()
	assert.Equal(t, afterEnd, final)
}

func TestViewLogger_SwallowsReporterErrors(t *testing.T) {
	// 上报失败只记日志：会话继续、心跳继续、End 照常工作
	rep := &fakeReporter{fail: true}
	l := NewViewLogger(rep, "web", 20*time.Millisecond)

	l.Start(1, nil, "free")
	time.Sleep(70 * time.Millisecond)
	assert.True(t, l.Active())
	l.End()

	starts, heartbeats, ends := rep.counts()
	assert.Equal(t, 1, starts)
	assert.GreaterOrEqual(t, heartbeats, 2, "失败的心跳不应阻止后续心跳")
	assert.Equal(t, 1, ends)
}

func TestViewLogger_Flush(t *testing.T) {
	rep := &fakeReporter{}
	l := NewViewLogger(rep, "web", time.Hour)

	l.Start(7, nil, "premium")
	l.UpdatePosition(120)
	l.Flush()

	// Flush 立即回到 idle，不等待上报完成
	assert.False(t, l.Active())

	// 兜底上报最终会被发出
	assert.Eventually(t, func() bool {
		_, _, ends := rep.counts()
		return ends == 1
	}, time.Second, 10*time.Millisecond)

	rep.mu.Lock()
	defer rep.mu.Unlock()
	assert.Equal(t, 120, rep.ends[0].Position)
	assert.Equal(t, 7, rep.ends[0].ItemID)
}

func TestViewLogger_UpdatePosition(t *testing.T) {
	rep := &fakeReporter{}
	l := NewViewLogger(rep, "web", time.Hour)

	// 空闲时更新位置不报错、无副作用
	l.UpdatePosition(10)

	l.Start(1, nil, "free")
	l.UpdatePosition(55)
	l.End()

	assert.Equal(t, 55, rep.ends[0].Position)
}
