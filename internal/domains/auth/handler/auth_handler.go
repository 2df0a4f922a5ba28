package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hacklog-frontend/internal/backend"
	"hacklog-frontend/internal/domains/auth"
	viewService "hacklog-frontend/internal/domains/view/service"
	"hacklog-frontend/internal/shared/middleware"
	"hacklog-frontend/internal/shared/response"
	"hacklog-frontend/pkg/logger"
)

// AuthHandler xử lý session endpoints (Login/Register pages, Header)
// Front end không tự authenticate - credentials đi thẳng tới backend,
// session cookie của backend được forward về browser.
type AuthHandler struct {
	api        *backend.Client
	pages      *viewService.PageService
	cookieName string
}

func NewAuthHandler(api *backend.Client, pages *viewService.PageService, cookieName string) *AuthHandler {
	return &AuthHandler{api: api, pages: pages, cookieName: cookieName}
}

// Login xử lý POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	// 1. PARSE + VALIDATE
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err)
		return
	}

	// 2. AUTHENTICATE VỚI BACKEND
	record, cookies, err := h.api.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("login rejected", err)
		response.Unauthorized(c, auth.ErrLoginFailed.Error())
		return
	}

	// 3. FORWARD SESSION COOKIE VỀ BROWSER
	// Backend set session cookie qua Set-Cookie - forward nguyên vẹn
	for _, cookie := range cookies {
		http.SetCookie(c.Writer, cookie)
	}

	// 4. DROP PAGE STATE CŨ
	// Identity đổi → page state của session cũ không còn đúng
	h.pages.DropSession(middleware.SessionToken(c))

	response.Success(c, http.StatusOK, gin.H{"user": auth.NormalizeSessionUser(record)})
}

// Logout xử lý DELETE /auth/login (match SPA: DELETE /api/login)
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.SessionToken(c)

	if err := h.api.Logout(c.Request.Context(), token); err != nil {
		// Logout best effort - session local vẫn bị drop
		logger.Warn("backend logout failed", err)
	}

	ps := h.pages.PageSet(token)
	ps.Store.Clear()
	h.pages.DropSession(token)

	// Xóa cookie phía browser
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{"loggedOut": true})
}

// Me xử lý GET /auth/me - identity hiện tại (useAuth refresh)
// Anonymous không phải error: trả user null để SPA render logged-out state
func (h *AuthHandler) Me(c *gin.Context) {
	token := middleware.SessionToken(c)
	ps := h.pages.PageSet(token)

	user := ps.Store.Refresh(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Register xử lý POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err)
		return
	}

	if err := h.api.RegisterUser(c.Request.Context(), req.Email, req.Username, req.Password); err != nil {
		logger.Warn("registration rejected", err)
		response.ErrorResponse(c, http.StatusBadRequest, "REGISTRATION_FAILED", registrationMessage(err))
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"registered": true})
}

// registrationMessage giữ human-readable message từ backend nếu có
func registrationMessage(err error) string {
	if apiErr, ok := err.(*backend.APIError); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Registration failed"
}
