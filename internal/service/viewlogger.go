package service

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/user/novelle/internal/model"
)

// HeartbeatInterval 心跳上报周期
const HeartbeatInterval = 60 * time.Second

// Reporter 会话上报出口
// 所有实现都必须容忍失败：日志器会吞掉错误继续运行
type Reporter interface {
	ReportStart(report model.ViewReport) error
	ReportHeartbeat(report model.ViewReport) error
	ReportEnd(report model.ViewReport) error
}

// activeSession 当前活跃会话的内部状态
type activeSession struct {
	sessionID   string
	itemID      int
	userID      *int
	revenueType string
	startedAt   time.Time
	position    int
	stop        chan struct{}
}

// ViewLogger 阅读会话日志器
// 状态机：idle → active → idle，可重入；任意时刻最多一个活跃会话、一个心跳定时器
type ViewLogger struct {
	mu         sync.Mutex
	reporter   Reporter
	interval   time.Duration
	deviceType string
	foreground bool
	session    *activeSession
}

// NewViewLogger 创建日志器，interval 传 0 使用默认 60 秒周期
func NewViewLogger(reporter Reporter, deviceType string, interval time.Duration) *ViewLogger {
	if interval <= 0 {
		interval = HeartbeatInterval
	}
	return &ViewLogger{
		reporter:   reporter,
		interval:   interval,
		deviceType: deviceType,
		foreground: true,
	}
}

// Start 开始一个阅读会话
// 已有活跃会话时属于调用方错误：记日志后忽略，保持原会话不变
func (l *ViewLogger) Start(itemID int, userID *int, revenueType string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.session != nil {
		log.Printf("[viewlog] 会话 %s 仍在进行，忽略重复 Start(item=%d)", l.session.sessionID, itemID)
		return
	}

	s := &activeSession{
		sessionID:   uuid.NewString(),
		itemID:      itemID,
		userID:      userID,
		revenueType: revenueType,
		startedAt:   time.Now(),
		stop:        make(chan struct{}),
	}
	l.session = s

	if err := l.reporter.ReportStart(l.reportLocked(0)); err != nil {
		log.Printf("[viewlog] start 上报失败: %v", err)
	}

	go l.heartbeatLoop(s)
}

// heartbeatLoop 按固定周期上报已读秒数，直到会话结束
func (l *ViewLogger) heartbeatLoop(s *activeSession) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			if l.session != s {
				l.mu.Unlock()
				return
			}
			report := l.reportLocked(int(time.Since(s.startedAt).Seconds()))
			l.mu.Unlock()

			// 后台标签页同样上报，后端只关心墙钟时间
			if err := l.reporter.ReportHeartbeat(report); err != nil {
				log.Printf("[viewlog] 心跳上报失败: %v", err)
			}
		}
	}
}

// UpdatePosition 更新当前阅读位置（纯内存，无 I/O）
func (l *ViewLogger) UpdatePosition(position int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.session != nil {
		l.session.position = position
	}
}

// SetForeground 标记标签页前后台状态
func (l *ViewLogger) SetForeground(fg bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.foreground = fg
}

// End 结束会话：上报总时长、停掉定时器、回到 idle
// 没有活跃会话时为空操作
func (l *ViewLogger) End() {
	l.mu.Lock()
	s := l.session
	if s == nil {
		l.mu.Unlock()
		return
	}
	report := l.reportLocked(int(time.Since(s.startedAt).Seconds()))
	l.session = nil
	close(s.stop)
	l.mu.Unlock()

	if err := l.reporter.ReportEnd(report); err != nil {
		log.Printf("[viewlog] end 上报失败: %v", err)
	}
}

// Flush 页面卸载时的兜底上报
// 发出即不管：上报在独立 goroutine 中进行，不等待结果，定时器立即停掉
func (l *ViewLogger) Flush() {
	l.mu.Lock()
	s := l.session
	if s == nil {
		l.mu.Unlock()
		return
	}
	report := l.reportLocked(int(time.Since(s.startedAt).Seconds()))
	l.session = nil
	close(s.stop)
	l.mu.Unlock()

	go func() {
		if err := l.reporter.ReportEnd(report); err != nil {
			log.Printf("[viewlog] flush 上报失败: %v", err)
		}
	}()
}

// Active 是否有活跃会话
func (l *ViewLogger) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session != nil
}

// SessionID 当前会话 ID，空闲时返回空串
func (l *ViewLogger) SessionID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.session == nil {
		return ""
	}
	return l.session.sessionID
}

// reportLocked 基于当前状态组装上报载荷，调用方必须持有锁
func (l *ViewLogger) reportLocked(elapsedSecs int) model.ViewReport {
	s := l.session
	return model.ViewReport{
		SessionID:   s.sessionID,
		ItemID:      s.itemID,
		UserID:      s.userID,
		RevenueType: s.revenueType,
		DeviceType:  l.deviceType,
		ElapsedSecs: elapsedSecs,
		Position:    s.position,
		Foreground:  l.foreground,
	}
}
