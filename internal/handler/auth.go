package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/novelle/internal/config"
	"github.com/user/novelle/internal/middleware"
	"github.com/user/novelle/internal/utils"
	"golang.org/x/oauth2"
)

// AuthProvider Google OAuth（OIDC 授权码模式）
type AuthProvider struct {
	Provider *oidc.Provider
	Config   oauth2.Config
	Enabled  bool
}

// NewAuthProvider 初始化 OIDC 提供方，未配置时禁用 OAuth 登录
func NewAuthProvider(cfg *config.Config) *AuthProvider {
	if cfg.GoogleClient.ClientID == "" {
		log.Println("未配置 GOOGLE_CLIENT_ID，OAuth 登录已禁用")
		return &AuthProvider{Enabled: false}
	}

	provider, err := oidc.NewProvider(context.Background(), cfg.GoogleClient.IssuerURL)
	if err != nil {
		log.Printf("OIDC 提供方初始化失败: %v", err)
		return &AuthProvider{Enabled: false}
	}

	return &AuthProvider{
		Provider: provider,
		Config: oauth2.Config{
			ClientID:     cfg.GoogleClient.ClientID,
			ClientSecret: cfg.GoogleClient.ClientSecret,
			RedirectURL:  cfg.GoogleClient.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		Enabled: true,
	}
}

// googleClaims ID Token 中用到的字段
type googleClaims struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleLogin 跳转到 Google 授权页
func (h *Handler) GoogleLogin(c *gin.Context) {
	if !h.Auth.Enabled {
		utils.Error(c, 503, "OAuth 登录未启用")
		return
	}

	// state 写入 Cookie 防 CSRF
	state := randomState()
	c.SetCookie("oauth_state", state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.Auth.Config.AuthCodeURL(state))
}

// GoogleCallback 授权回调：换取 Token、校验 ID Token、读取或创建用户
func (h *Handler) GoogleCallback(c *gin.Context) {
	if !h.Auth.Enabled {
		utils.Error(c, 503, "OAuth 登录未启用")
		return
	}

	stateCookie, err := c.Cookie("oauth_state")
	if err != nil || c.Query("state") != stateCookie {
		utils.BadRequest(c, "state 校验失败")
		return
	}
	c.SetCookie("oauth_state", "", -1, "/", "", false, true)

	token, err := h.Auth.Config.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		log.Printf("OAuth 换取 Token 失败: %v", err)
		utils.Error(c, 502, "授权失败，请重试")
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		utils.Error(c, 502, "授权响应缺少 ID Token")
		return
	}

	verifier := h.Auth.Provider.Verifier(&oidc.Config{ClientID: h.Auth.Config.ClientID})
	idToken, err := verifier.Verify(c.Request.Context(), rawIDToken)
	if err != nil {
		log.Printf("ID Token 校验失败: %v", err)
		utils.Error(c, 502, "授权失败，请重试")
		return
	}

	var claims googleClaims
	if err := idToken.Claims(&claims); err != nil {
		utils.Error(c, 502, "解析用户信息失败")
		return
	}

	// 首次登录自动建档：用户名取资料里的昵称，退而取邮箱前缀
	username := strings.TrimSpace(claims.Name)
	if username == "" {
		if parts := strings.Split(claims.Email, "@"); len(parts) > 0 {
			username = parts[0]
		}
	}
	var avatarURL *string
	if claims.Picture != "" {
		avatarURL = &claims.Picture
	}

	user, err := h.Repos.User.UpsertByGoogleSub(claims.Sub, claims.Email, username, avatarURL)
	if err != nil || user == nil {
		log.Printf("用户建档失败: %v", err)
		utils.InternalServerError(c, "登录失败，请重试")
		return
	}

	if err := h.setLoginState(c, user); err != nil {
		utils.InternalServerError(c, "登录失败，请重试")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Register 本地账号注册
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数不正确")
		return
	}

	// 检查邮箱是否已存在
	existing, _ := h.Repos.User.FindByEmail(req.Email)
	if existing != nil {
		utils.BadRequest(c, "该邮箱已被注册")
		return
	}

	// 默认截取邮箱 @ 符号前的内容作为用户名
	username := strings.TrimSpace(req.Username)
	if username == "" {
		if parts := strings.Split(req.Email, "@"); len(parts) > 0 {
			username = parts[0]
		}
	}

	user, err := h.Repos.User.Create(req.Email, username, req.Password)
	if err != nil {
		utils.InternalServerError(c, "注册失败，请重试")
		return
	}

	if err := h.setLoginState(c, user); err != nil {
		utils.InternalServerError(c, "注册失败，请重试")
		return
	}
	utils.Success(c, user)
}

// Login 本地账号登录
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数不正确")
		return
	}

	user, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil || user == nil || !h.Repos.User.CheckPassword(user, req.Password) {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	if err := h.setLoginState(c, user); err != nil {
		utils.InternalServerError(c, "登录失败，请重试")
		return
	}
	utils.Success(c, user)
}

// Me 当前登录用户
func (h *Handler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	user, err := h.Repos.User.FindByID(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.Unauthorized(c, "")
		return
	}
	utils.Success(c, user)
}

// Logout 登出
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)

	// 清理 Session
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	utils.SuccessWithMessage(c, "已退出登录", nil)
}

// randomState 生成 OAuth state 随机串
func randomState() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
