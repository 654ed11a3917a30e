package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/novelle/internal/model"
)

// fakeViewLogStore 模拟会话日志表：只有首次 Close 返回 true
type fakeViewLogStore struct {
	opened []string
	closed map[string]bool
}

func newFakeViewLogStore() *fakeViewLogStore {
	return &fakeViewLogStore{closed: map[string]bool{}}
}

func (f *fakeViewLogStore) Open(log *model.ViewLog) error {
	f.opened = append(f.opened, log.SessionID)
	return nil
}

func (f *fakeViewLogStore) Heartbeat(sessionID string, elapsedSecs, position int) error {
	return nil
}

func (f *fakeViewLogStore) Close(sessionID string, elapsedSecs, position int) (bool, error) {
	if f.closed[sessionID] {
		return false, nil
	}
	f.closed[sessionID] = true
	return true, nil
}

// fakeUserStatsStore 记录每次统计入账
type fakeUserStatsStore struct {
	calls   int
	seconds int
	items   int
}

func (f *fakeUserStatsStore) AddReadingStats(userID, seconds, itemsRead int) error {
	f.calls++
	f.seconds += seconds
	f.items += itemsRead
	return nil
}

type fakeItemViewStore struct {
	views map[int]int
}

func (f *fakeItemViewStore) IncrementViews(id int) error {
	if f.views == nil {
		f.views = map[int]int{}
	}
	f.views[id]++
	return nil
}

func newTestReporter() (*ViewReporter, *fakeViewLogStore, *fakeUserStatsStore, *fakeItemViewStore) {
	logs := newFakeViewLogStore()
	users := &fakeUserStatsStore{}
	items := &fakeItemViewStore{}
	return &ViewReporter{logs: logs, users: users, items: items}, logs, users, items
}

func TestViewReporter_ReportEnd(t *testing.T) {
	userID := 7
	report := model.ViewReport{
		SessionID:   "sess-1",
		ItemID:      42,
		UserID:      &userID,
		ElapsedSecs: 300,
		Position:    12,
	}

	t.Run("首次 end 入账一次阅读统计", func(t *testing.T) {
		r, _, users, _ := newTestReporter()
		require.NoError(t, r.ReportEnd(report))
		assert.Equal(t, 1, users.calls)
		assert.Equal(t, 300, users.seconds)
		assert.Equal(t, 1, users.items)
	})

	t.Run("End 和信标各发一次 end：统计只入账一次", func(t *testing.T) {
		r, _, users, _ := newTestReporter()
		require.NoError(t, r.ReportEnd(report))
		require.NoError(t, r.ReportEnd(report))
		require.NoError(t, r.ReportEnd(report))
		assert.Equal(t, 1, users.calls)
		assert.Equal(t, 300, users.seconds)
		assert.Equal(t, 1, users.items)
	})

	t.Run("匿名会话结束不碰用户统计", func(t *testing.T) {
		r, logs, users, _ := newTestReporter()
		anon := report
		anon.SessionID = "sess-anon"
		anon.UserID = nil
		require.NoError(t, r.ReportEnd(anon))
		assert.True(t, logs.closed["sess-anon"])
		assert.Equal(t, 0, users.calls)
	})
}

func TestViewReporter_ReportStart(t *testing.T) {
	r, logs, _, items := newTestReporter()
	report := model.ViewReport{SessionID: "sess-2", ItemID: 9}

	require.NoError(t, r.ReportStart(report))
	assert.Equal(t, []string{"sess-2"}, logs.opened)
	assert.Equal(t, 1, items.views[9])
}
