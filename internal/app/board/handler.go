package board

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"trello/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	fieldShowInput  = "show_input"
	fieldBoardTitle = "board_title"

	listPath = "/boards/"

	emptyTitleMessage = "The name of the board cannot be empty!"
)

type Handler interface {
	RedirectToBoards(c *gin.Context)
	ListBoards(c *gin.Context)
	SubmitBoards(c *gin.Context)
	GetBoardByTitle(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{
		service: service,
		logger:  logger.Sugar(),
	}
}

// RedirectToBoards sends the site root to the boards page.
func (h *handler) RedirectToBoards(c *gin.Context) {
	h.logger.Infow("RedirectToBoards: redirecting", "from", c.Request.URL.Path, "to", listPath)
	c.Redirect(http.StatusFound, listPath)
}

func (h *handler) ListBoards(c *gin.Context) {
	h.renderList(c, false, "")
}

// SubmitBoards handles both buttons of the boards page. A board_title field
// means the creation form was submitted; show_input alone only expands it.
func (h *handler) SubmitBoards(c *gin.Context) {
	if raw, ok := c.GetPostForm(fieldBoardTitle); ok {
		h.createBoard(c, raw)
		return
	}

	_, showInput := c.GetPostForm(fieldShowInput)
	h.renderList(c, showInput, "")
}

func (h *handler) createBoard(c *gin.Context, raw string) {
	board, err := h.service.CreateBoard(c.Request.Context(), raw)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, web.BoardURL(board.Title))
	case errors.Is(err, ErrEmptyTitle):
		h.logger.Warnw("CreateBoard: empty title")
		h.renderList(c, true, emptyTitleMessage)
	case errors.Is(err, ErrTitleTooLong):
		h.logger.Warnw("CreateBoard: title too long", "length", len(raw))
		h.renderList(c, true, fmt.Sprintf("The name of the board cannot be longer than %d characters!", MaxTitleLength))
	case errors.Is(err, ErrBoardExists):
		title := strings.TrimSpace(raw)
		h.logger.Warnw("CreateBoard: duplicate title", "title", title)
		h.renderList(c, true, fmt.Sprintf("A board named '%s' already exists!", title))
	default:
		h.logger.Errorw("CreateBoard: failed", "error", err)
		web.RenderError(c, http.StatusInternalServerError, "Something went wrong while creating the board.")
	}
}

func (h *handler) renderList(c *gin.Context, showInput bool, message string) {
	boards, err := h.service.GetAllBoards(c.Request.Context())
	if err != nil {
		h.logger.Errorw("ListBoards: failed to fetch boards", "error", err)
		web.RenderError(c, http.StatusInternalServerError, "Something went wrong while loading the boards.")
		return
	}

	c.HTML(http.StatusOK, web.TemplateBoards, ListPage{
		Title:     "Boards",
		ShowInput: showInput,
		Message:   message,
		Boards:    boards,
	})
}

func (h *handler) GetBoardByTitle(c *gin.Context) {
	title := c.Param("title")

	board, err := h.service.GetBoardByTitle(c.Request.Context(), title)
	if err != nil {
		if errors.Is(err, ErrBoardNotFound) {
			web.RenderError(c, http.StatusNotFound, "Board not found.")
			return
		}
		h.logger.Errorw("GetBoardByTitle: failed", "error", err)
		web.RenderError(c, http.StatusInternalServerError, "Something went wrong while loading the board.")
		return
	}

	c.HTML(http.StatusOK, web.TemplateBoardDetail, DetailPage{
		Title: board.Title,
		Board: board,
	})
}
