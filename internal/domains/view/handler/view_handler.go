package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hacklog-frontend/internal/domains/auth"
	"hacklog-frontend/internal/domains/view"
	"hacklog-frontend/internal/domains/view/service"
	"hacklog-frontend/internal/shared/middleware"
	"hacklog-frontend/internal/shared/response"
	"hacklog-frontend/pkg/logger"
)

// ViewHandler serve page-shaped view endpoints cho SPA pages
// Mỗi GET là một page mount: pull fresh rows, project theo criteria.
type ViewHandler struct {
	pages *service.PageService
}

func NewViewHandler(pages *service.PageService) *ViewHandler {
	return &ViewHandler{pages: pages}
}

// criteriaFromQuery đọc user-controlled projection criteria
// Unknown sort key coerce về identity - không phải error
func criteriaFromQuery(c *gin.Context) view.Criteria {
	return view.Criteria{
		Search: c.Query("search"),
		Tag:    c.Query("tag"),
		Sort:   view.ParseSortKey(c.Query("sort")),
	}
}

// Articles xử lý GET /views/articles - public articles page
func (h *ViewHandler) Articles(c *gin.Context) {
	token := middleware.SessionToken(c)
	rows, notices, err := h.pages.ArticlesView(c.Request.Context(), token, criteriaFromQuery(c), false)
	if err != nil {
		// FetchFailure: primary read lỗi là blocking page error
		logger.Error("articles view load failed", err)
		response.BadGateway(c, "Failed to load articles")
		return
	}
	response.SuccessWithNotices(c, http.StatusOK, gin.H{"rows": rows}, notices)
}

// MyArticles xử lý GET /views/my-articles - bài của session user
func (h *ViewHandler) MyArticles(c *gin.Context) {
	token := middleware.SessionToken(c)
	rows, notices, err := h.pages.ArticlesView(c.Request.Context(), token, criteriaFromQuery(c), true)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			response.Unauthorized(c, "Login required")
			return
		}
		logger.Error("my articles view load failed", err)
		response.BadGateway(c, "Failed to load articles")
		return
	}
	response.SuccessWithNotices(c, http.StatusOK, gin.H{"rows": rows}, notices)
}

// AdminArticles xử lý GET /views/admin/articles
// Cùng row set với Articles - gate ở route level mới khác
func (h *ViewHandler) AdminArticles(c *gin.Context) {
	h.Articles(c)
}

// ArticleDetail xử lý GET /views/articles/:id - trang đọc bài
func (h *ViewHandler) ArticleDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Missing article id")
		return
	}

	token := middleware.SessionToken(c)
	row, err := h.pages.ArticleDetail(c.Request.Context(), token, id)
	if err != nil {
		if errors.Is(err, view.ErrArticleNotFound) {
			response.NotFound(c, "Not found")
			return
		}
		logger.Error("article detail load failed", err)
		response.BadGateway(c, "Failed to load article")
		return
	}
	response.Success(c, http.StatusOK, row)
}

// Users xử lý GET /views/admin/users - admin users page
func (h *ViewHandler) Users(c *gin.Context) {
	token := middleware.SessionToken(c)
	users, notices, err := h.pages.UsersView(c.Request.Context(), token)
	if err != nil {
		logger.Error("users view load failed", err)
		response.BadGateway(c, "Failed to load users")
		return
	}
	response.SuccessWithNotices(c, http.StatusOK, gin.H{"rows": users}, notices)
}

// Tags xử lý GET /views/tags - tag picker / filter dropdown
func (h *ViewHandler) Tags(c *gin.Context) {
	token := middleware.SessionToken(c)
	tags, err := h.pages.TagList(c.Request.Context(), token)
	if err != nil {
		logger.Error("tags load failed", err)
		response.BadGateway(c, "Failed to load tags")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tags": tags})
}
