package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hacklog-frontend/internal/domains/auth"
	"hacklog-frontend/internal/domains/mutate"
	mutateService "hacklog-frontend/internal/domains/mutate/service"
	"hacklog-frontend/internal/domains/view"
	viewService "hacklog-frontend/internal/domains/view/service"
	"hacklog-frontend/internal/shared/middleware"
	"hacklog-frontend/internal/shared/response"
	"hacklog-frontend/pkg/logger"
)

// MutationHandler expose optimistic mutations qua HTTP
// Response luôn 200 khi mutation đã chạy (committed HOẶC rolled back):
// MutationFailure là non-blocking, page sống tiếp với state đã revert.
//
// PageSet được resolve đúng MỘT lần per request rồi truyền xuyên suốt:
// mutation chạy trên set nào thì response đọc rows/notices từ set đó.
// Resolve lại theo token sẽ sai cho anonymous (ephemeral set mới tinh).
type MutationHandler struct {
	mutations *mutateService.MutationService
	pages     *viewService.PageService
}

func NewMutationHandler(mutations *mutateService.MutationService, pages *viewService.PageService) *MutationHandler {
	return &MutationHandler{mutations: mutations, pages: pages}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *MutationHandler) pageSet(c *gin.Context) *viewService.PageSet {
	return h.pages.PageSet(middleware.SessionToken(c))
}

// respondOutcome map mutation outcome ra response envelope
// ps là chính page set mà mutation vừa chạy trên; rows = row set sau
// mutation (optimistic hoặc đã rollback).
func (h *MutationHandler) respondOutcome(c *gin.Context, ps *viewService.PageSet, outcome mutate.Outcome, err error, rows interface{}) {
	if err != nil {
		switch {
		case errors.Is(err, mutate.ErrMutationInFlight):
			// Double-click guard: mutation trên cùng entity đang bay
			response.Conflict(c, "A change for this item is already in progress")
		case errors.Is(err, view.ErrArticleNotFound), errors.Is(err, view.ErrUserNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, auth.ErrInvalidRole):
			response.BadRequest(c, err.Error())
		default:
			// Load failure trước khi mutation chạy
			logger.Error("mutation preload failed", err)
			response.BadGateway(c, "Failed to load current state")
		}
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Success: outcome.State == mutate.StateCommitted,
		Data: gin.H{
			"state": outcome.State.String(),
			"rows":  rows,
		},
		Notices: ps.Notices.Active(),
	})
}

// ========================================
// ARTICLE MUTATIONS
// ========================================

// DeleteArticle xử lý DELETE /articles/:id
func (h *MutationHandler) DeleteArticle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ps := h.pageSet(c)
	outcome, err := h.mutations.DeleteArticle(c.Request.Context(), ps, id)
	h.respondOutcome(c, ps, outcome, err, ps.Articles.Rows())
}

// ToggleFeatured xử lý PUT /articles/:id/featured
func (h *MutationHandler) ToggleFeatured(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ps := h.pageSet(c)
	outcome, err := h.mutations.ToggleFeatured(c.Request.Context(), ps, id)
	h.respondOutcome(c, ps, outcome, err, ps.Articles.Rows())
}

// Like xử lý POST /articles/:id/like - public, không cần login
func (h *MutationHandler) Like(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ps := h.pageSet(c)
	outcome, err := h.mutations.Like(c.Request.Context(), ps, id)
	h.respondOutcome(c, ps, outcome, err, ps.Articles.Rows())
}

// ========================================
// USER MUTATIONS (admin)
// ========================================

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeRole xử lý PUT /users/:id/role
func (h *MutationHandler) ChangeRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ps := h.pageSet(c)
	outcome, err := h.mutations.ChangeRole(c.Request.Context(), ps, id, auth.Role(req.Role))
	h.respondOutcome(c, ps, outcome, err, ps.Users.Rows())
}

// DeleteUser xử lý DELETE /users/:id
func (h *MutationHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ps := h.pageSet(c)
	outcome, err := h.mutations.DeleteUser(c.Request.Context(), ps, id)
	h.respondOutcome(c, ps, outcome, err, ps.Users.Rows())
}
