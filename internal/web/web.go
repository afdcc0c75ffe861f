// Package web holds the server-rendered HTML templates and the helpers the
// handlers share to render them.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	TemplateBoards      = "boards.html"
	TemplateBoardDetail = "board_detail.html"
	TemplateError       = "error.html"
	TemplateAdminLogin  = "admin_login.html"
	TemplateAdminBoards = "admin_boards.html"

	timeLayout = "2006-01-02 15:04:05 MST"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ErrorPage is the view model of error.html.
type ErrorPage struct {
	Title   string
	Status  int
	Heading string
}

// BoardURL is the detail page path of the board with the given title. Titles
// made only of dots are percent-encoded so path cleaning cannot collapse them.
func BoardURL(title string) string {
	segment := url.PathEscape(title)
	if title == "." || title == ".." {
		segment = strings.ReplaceAll(title, ".", "%2E")
	}
	return "/boards/" + segment + "/"
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func Templates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{
			"boardURL":   BoardURL,
			"formatTime": FormatTime,
		}).
		ParseFS(templatesFS, "templates/*.html")
}

func MustTemplates() *template.Template {
	return template.Must(Templates())
}

// RenderError renders error.html with status and aborts the gin chain.
func RenderError(c *gin.Context, status int, heading string) {
	c.HTML(status, TemplateError, ErrorPage{
		Title:   http.StatusText(status),
		Status:  status,
		Heading: heading,
	})
	c.Abort()
}
