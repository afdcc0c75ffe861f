package admin

import (
	"errors"
	"net/http"
	"strings"

	"trello/internal/app/board"
	"trello/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const invalidLoginMessage = "Please enter the correct username and password. Note that both fields may be case-sensitive."

type Handler interface {
	LoginPage(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Index(c *gin.Context)
	Boards(c *gin.Context)
}

type handler struct {
	service  Service
	boards   board.Service
	sessions *SessionManager
	logger   *zap.SugaredLogger
}

func NewHandler(service Service, boards board.Service, sessions *SessionManager, logger *zap.Logger) Handler {
	return &handler{
		service:  service,
		boards:   boards,
		sessions: sessions,
		logger:   logger.Sugar(),
	}
}

func (h *handler) LoginPage(c *gin.Context) {
	next := safeNext(c.Query("next"))

	if id, ok := h.sessions.OperatorID(c); ok {
		if _, err := h.service.GetOperator(c.Request.Context(), id); err == nil {
			c.Redirect(http.StatusFound, next)
			return
		}
	}

	c.HTML(http.StatusOK, web.TemplateAdminLogin, LoginPage{
		Title: "Log in",
		Next:  next,
	})
}

func (h *handler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	next := safeNext(c.PostForm("next"))

	op, err := h.service.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			h.logger.Errorw("Login: authentication failed", "username", username, "error", err)
			web.RenderError(c, http.StatusInternalServerError, "Something went wrong while logging in.")
			return
		}
		c.HTML(http.StatusOK, web.TemplateAdminLogin, LoginPage{
			Title:    "Log in",
			Next:     next,
			Username: username,
			Error:    invalidLoginMessage,
		})
		return
	}

	if err := h.sessions.Login(c, op); err != nil {
		h.logger.Errorw("Login: failed to save session", "username", username, "error", err)
		web.RenderError(c, http.StatusInternalServerError, "Something went wrong while logging in.")
		return
	}

	h.logger.Infow("Login: operator logged in", "operator_id", op.ID, "username", op.Username)
	c.Redirect(http.StatusFound, next)
}

func (h *handler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c); err != nil {
		h.logger.Warnw("Logout: failed to clear session", "error", err)
	}
	c.Redirect(http.StatusFound, loginPath)
}

func (h *handler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/admin/boards/")
}

func (h *handler) Boards(c *gin.Context) {
	boards, err := h.boards.GetAllBoards(c.Request.Context())
	if err != nil {
		h.logger.Errorw("Boards: failed to fetch boards", "error", err)
		web.RenderError(c, http.StatusInternalServerError, "Something went wrong while loading the boards.")
		return
	}

	count, err := h.boards.CountBoards(c.Request.Context())
	if err != nil {
		h.logger.Errorw("Boards: failed to count boards", "error", err)
		web.RenderError(c, http.StatusInternalServerError, "Something went wrong while loading the boards.")
		return
	}

	var username string
	if op := currentOperator(c); op != nil {
		username = op.Username
	}

	c.HTML(http.StatusOK, web.TemplateAdminBoards, BoardsPage{
		Title:    "Boards administration",
		Operator: username,
		Count:    count,
		Boards:   boards,
	})
}
