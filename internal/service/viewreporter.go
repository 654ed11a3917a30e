package service

import (
	"time"

	"github.com/user/novelle/internal/model"
	"github.com/user/novelle/internal/repository"
)

// viewLogStore 会话日志的持久化口径
type viewLogStore interface {
	Open(log *model.ViewLog) error
	Heartbeat(sessionID string, elapsedSecs, position int) error
	Close(sessionID string, elapsedSecs, position int) (bool, error)
}

// userStatsStore 用户阅读统计入账
type userStatsStore interface {
	AddReadingStats(userID, seconds, itemsRead int) error
}

// itemViewStore 作品浏览数计数
type itemViewStore interface {
	IncrementViews(id int) error
}

// ViewReporter 把会话上报落到数据库
// HTTP 日志接口和嵌入式日志器共用同一条持久化路径
type ViewReporter struct {
	logs  viewLogStore
	users userStatsStore
	items itemViewStore
}

// NewViewReporter 创建数据库上报器
func NewViewReporter(repos *repository.Repositories) *ViewReporter {
	return &ViewReporter{
		logs:  repos.ViewLog,
		users: repos.User,
		items: repos.Item,
	}
}

// ReportStart 会话开始：写日志行并给作品浏览数 +1
func (r *ViewReporter) ReportStart(report model.ViewReport) error {
	log := &model.ViewLog{
		SessionID:      report.SessionID,
		ItemID:         report.ItemID,
		UserID:         report.UserID,
		RevenueType:    report.RevenueType,
		DeviceType:     report.DeviceType,
		ElapsedSeconds: 0,
		LastPosition:   report.Position,
		StartedAt:      time.Now(),
	}
	if err := r.logs.Open(log); err != nil {
		return err
	}
	return r.items.IncrementViews(report.ItemID)
}

// ReportHeartbeat 心跳：刷新已读秒数与位置
func (r *ViewReporter) ReportHeartbeat(report model.ViewReport) error {
	return r.logs.Heartbeat(report.SessionID, report.ElapsedSecs, report.Position)
}

// ReportEnd 会话结束：关单并累加用户阅读统计
// 统计只在本次调用真正关掉会话时入账：End 和 pagehide 信标常常各发一次 end，
// 第二次是空操作，不能再加一遍 reading_seconds / items_read
func (r *ViewReporter) ReportEnd(report model.ViewReport) error {
	closed, err := r.logs.Close(report.SessionID, report.ElapsedSecs, report.Position)
	if err != nil {
		return err
	}
	if closed && report.UserID != nil {
		return r.users.AddReadingStats(*report.UserID, report.ElapsedSecs, 1)
	}
	return nil
}
