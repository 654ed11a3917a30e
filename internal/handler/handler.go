package handler

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/user/novelle/internal/config"
	"github.com/user/novelle/internal/i18n"
	"github.com/user/novelle/internal/middleware"
	"github.com/user/novelle/internal/model"
	"github.com/user/novelle/internal/repository"
	"github.com/user/novelle/internal/service"
	"github.com/user/novelle/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos      *repository.Repositories
	Config     *config.Config
	Payment    *service.PaymentService
	Reporter   *service.ViewReporter
	Translator *i18n.Translator
	Auth       *AuthProvider

	// 首页与排行榜的热点列表缓存
	listCache *utils.ListCache[[]*model.Item]
	rankCache *utils.ListCache[[]*model.Ranking]
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:      repos,
		Config:     cfg,
		Payment:    service.NewPaymentService(cfg.StripeSecretKey),
		Reporter:   service.NewViewReporter(repos),
		Translator: i18n.NewTranslator(repos.Translation),
		Auth:       NewAuthProvider(cfg),
		listCache:  utils.NewListCache[[]*model.Item](64, 2*time.Minute),
		rankCache:  utils.NewListCache[[]*model.Ranking](4, 2*time.Minute),
	}
}

// lang 解析当前请求的语言（query 优先，其次 cookie，默认 en）
func (h *Handler) lang(c *gin.Context) string {
	if lang := c.Query("lang"); i18n.IsSupported(lang) {
		return lang
	}
	if lang, err := c.Cookie("lang"); err == nil && i18n.IsSupported(lang) {
		return lang
	}
	return i18n.DefaultLanguage
}

// setLoginState 登录成功后写入 JWT Cookie 和 Session
func (h *Handler) setLoginState(c *gin.Context, user *model.User) error {
	token, err := h.generateToken(user)
	if err != nil {
		return err
	}

	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)

	session := sessions.Default(c)
	session.Set("userinfo", model.SessionUser{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Tier:     user.Tier,
	})
	return session.Save()
}

// generateToken 生成 JWT
func (h *Handler) generateToken(user *model.User) (string, error) {
	claims := &middleware.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Tier:   user.Tier,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.Config.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.Config.AppSecret))
}
