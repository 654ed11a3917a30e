package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/novelle/internal/middleware"
	"github.com/user/novelle/internal/model"
	"github.com/user/novelle/internal/utils"
)

// StartViewLog 阅读会话开始上报
func (h *Handler) StartViewLog(c *gin.Context) {
	var report model.ViewReport
	if err := c.ShouldBindJSON(&report); err != nil || report.SessionID == "" || report.ItemID <= 0 {
		utils.BadRequest(c, "请求参数不正确")
		return
	}

	// 登录态优先于载荷里的 user_id
	if id := middleware.GetUserIDPtr(c); id != nil {
		report.UserID = id
	}

	if err := h.Reporter.ReportStart(report); err != nil {
		// 日志类副作用失败不暴露给用户
		log.Printf("[viewlog] start 入库失败 (session=%s): %v", report.SessionID, err)
	}
	c.Status(http.StatusNoContent)
}

// HeartbeatViewLog 阅读会话心跳上报
func (h *Handler) HeartbeatViewLog(c *gin.Context) {
	var report model.ViewReport
	if err := c.ShouldBindJSON(&report); err != nil || report.SessionID == "" {
		utils.BadRequest(c, "请求参数不正确")
		return
	}

	if err := h.Reporter.ReportHeartbeat(report); err != nil {
		log.Printf("[viewlog] 心跳入库失败 (session=%s): %v", report.SessionID, err)
	}
	c.Status(http.StatusNoContent)
}

// EndViewLog 阅读会话结束上报
// 页面卸载时通过 sendBeacon 发送：Content-Type 可能是 text/plain 或缺失，
// 因此不走 ShouldBindJSON，直接读原始 body 手动解析，并且总是立即返回 204
func (h *Handler) EndViewLog(c *gin.Context) {
	defer c.Status(http.StatusNoContent)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil || len(body) == 0 {
		return
	}

	var report model.ViewReport
	if err := json.Unmarshal(body, &report); err != nil || report.SessionID == "" {
		log.Printf("[viewlog] end 载荷解析失败: %v", err)
		return
	}

	if id := middleware.GetUserIDPtr(c); id != nil {
		report.UserID = id
	}

	if err := h.Reporter.ReportEnd(report); err != nil {
		log.Printf("[viewlog] end 入库失败 (session=%s): %v", report.SessionID, err)
	}
}
