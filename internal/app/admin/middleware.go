package admin

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"trello/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	contextOperator = "admin.operator"

	loginPath = "/admin/login/"
	indexPath = "/admin/"
)

// RequireOperator lets the request through only with a session that belongs
// to an existing operator; everything else is redirected to the login page.
func RequireOperator(sessions *SessionManager, service Service, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Sugar()

	return func(c *gin.Context) {
		id, ok := sessions.OperatorID(c)
		if !ok {
			redirectToLogin(c)
			return
		}

		op, err := service.GetOperator(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, ErrOperatorNotFound) {
				log.Warnw("RequireOperator: session for unknown operator", "operator_id", id)
				redirectToLogin(c)
				return
			}
			log.Errorw("RequireOperator: failed to load operator", "operator_id", id, "error", err)
			web.RenderError(c, http.StatusInternalServerError, "Something went wrong.")
			return
		}

		c.Set(contextOperator, op)
		c.Next()
	}
}

func currentOperator(c *gin.Context) *Operator {
	if v, ok := c.Get(contextOperator); ok {
		if op, ok := v.(*Operator); ok {
			return op
		}
	}
	return nil
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}

// safeNext keeps post-login redirects inside the admin area.
func safeNext(next string) string {
	if !strings.HasPrefix(next, indexPath) || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return indexPath
	}
	return next
}
