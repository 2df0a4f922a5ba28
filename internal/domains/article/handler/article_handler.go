package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hacklog-frontend/internal/domains/article"
	"hacklog-frontend/internal/domains/article/service"
	"hacklog-frontend/internal/domains/auth"
	viewService "hacklog-frontend/internal/domains/view/service"
	"hacklog-frontend/internal/shared/middleware"
	"hacklog-frontend/internal/shared/response"
	"hacklog-frontend/pkg/logger"
)

// ArticleHandler xử lý article form submissions (Create/Edit pages)
type ArticleHandler struct {
	service *service.ArticleService
	pages   *viewService.PageService
}

func NewArticleHandler(service *service.ArticleService, pages *viewService.PageService) *ArticleHandler {
	return &ArticleHandler{service: service, pages: pages}
}

// sessionUser resolve user hiện tại cho ownership/author checks
// Route đã qua RequireRoles nên store thường đã settle
func (h *ArticleHandler) sessionUser(c *gin.Context) (*auth.SessionUser, string) {
	token := middleware.SessionToken(c)
	ps := h.pages.PageSet(token)
	sess := ps.Store.User()
	if sess == nil {
		sess = ps.Store.Refresh(c.Request.Context())
	}
	return sess, token
}

// Create xử lý POST /articles
func (h *ArticleHandler) Create(c *gin.Context) {
	// 1. PARSE REQUEST BODY
	var req article.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// 2. VALIDATE
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err)
		return
	}

	// 3. CALL SERVICE
	sess, token := h.sessionUser(c)
	id, err := h.service.Create(c.Request.Context(), token, sess, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// 4. SUCCESS - trả inserted id để SPA navigate
	c.Header("Location", "/api/v1/views/articles/"+strconv.FormatInt(id, 10))
	response.Success(c, http.StatusCreated, gin.H{"id": id})
}

// Update xử lý PUT /articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid article id")
		return
	}

	var req article.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err)
		return
	}

	sess, token := h.sessionUser(c)
	if err := h.service.Update(c.Request.Context(), token, sess, id, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}

// handleError map domain errors thành HTTP status codes
func (h *ArticleHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		response.Unauthorized(c, "Login required")
	case errors.Is(err, article.ErrNotOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, article.ErrNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("article operation failed", err)
		response.BadGateway(c, "Article operation failed")
	}
}
