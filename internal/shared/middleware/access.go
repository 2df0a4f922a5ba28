package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hacklog-frontend/internal/domains/auth"
	viewService "hacklog-frontend/internal/domains/view/service"
)

// RequireRoles là side-effecting nửa của access gate: re-resolve session
// trên mỗi request (mỗi navigation), gọi pure decision rồi map ra HTTP.
// Policy nằm trọn trong auth.Decide - ở đây chỉ là dịch Decision.
func RequireRoles(pages *viewService.PageService, roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		ps := pages.PageSet(token)

		// Refresh mỗi navigation - session có thể đã đổi từ request trước
		ps.Store.Refresh(c.Request.Context())

		decision := auth.Decide(roles, ps.Store.User(), ps.Store.Loading())
		switch decision.Kind {
		case auth.Allow:
			c.Next()
		case auth.Pending:
			// Session chưa settle - render nothing, không redirect
			c.AbortWithStatus(http.StatusNoContent)
		case auth.Redirect:
			status := http.StatusForbidden
			if decision.Target == auth.LoginPath {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, gin.H{
				"success":  false,
				"redirect": decision.Target,
			})
		}
	}
}
