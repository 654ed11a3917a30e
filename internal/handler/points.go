package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/user/novelle/internal/middleware"
	"github.com/user/novelle/internal/repository"
	"github.com/user/novelle/internal/service"
	"github.com/user/novelle/internal/utils"
)

// ListPackages 积分套餐目录
func (h *Handler) ListPackages(c *gin.Context) {
	packages, err := h.Repos.Points.ListPackages()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, packages)
}

// CreatePaymentIntent 为选中的套餐创建 Stripe PaymentIntent
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		PackageID int `json:"package_id" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			utils.BadRequest(c, "package_id 必须为正整数")
			return
		}
		utils.BadRequest(c, "请求参数不正确")
		return
	}

	pkg, err := h.Repos.Points.FindPackage(req.PackageID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if pkg == nil {
		utils.NotFound(c, "套餐不存在")
		return
	}

	clientSecret, intentID, err := h.Payment.CreateIntent(pkg, userID)
	if err != nil {
		if errors.Is(err, service.ErrPaymentDisabled) {
			utils.Error(c, 503, "支付功能未启用")
			return
		}
		// Stripe 的错误要直接反馈给用户（前端以 toast 展示）
		log.Printf("创建 PaymentIntent 失败: %v", err)
		utils.PaymentFailed(c, "创建支付失败，请重试")
		return
	}

	utils.Success(c, gin.H{
		"client_secret":     clientSecret,
		"payment_intent_id": intentID,
	})
}

// PurchasePoints 确认购买：校验支付状态后入账积分
func (h *Handler) PurchasePoints(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		PackageID       int    `json:"package_id" binding:"required,gt=0"`
		PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数不正确")
		return
	}

	pkg, err := h.Repos.Points.FindPackage(req.PackageID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if pkg == nil {
		utils.NotFound(c, "套餐不存在")
		return
	}

	if err := h.Payment.VerifySucceeded(req.PaymentIntentID, pkg, userID); err != nil {
		log.Printf("支付校验失败 (intent=%s): %v", req.PaymentIntentID, err)
		utils.PaymentFailed(c, "支付未完成或校验失败")
		return
	}

	purchase, err := h.Repos.Points.RecordPurchase(userID, pkg, req.PaymentIntentID)
	if errors.Is(err, repository.ErrDuplicatePurchase) {
		log.Printf("重复入账被拒绝 (user=%d, intent=%s)", userID, req.PaymentIntentID)
		utils.PaymentFailed(c, "该笔支付已入账")
		return
	}
	if err != nil {
		log.Printf("积分入账失败 (user=%d, pkg=%d): %v", userID, pkg.ID, err)
		utils.InternalServerError(c, "积分入账失败，请联系客服")
		return
	}

	user, _ := h.Repos.User.FindByID(userID)
	utils.SuccessWithMessage(c, "购买成功", gin.H{
		"purchase": purchase,
		"user":     user,
	})
}
