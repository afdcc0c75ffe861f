package router

import (
	"html/template"
	"net/http"

	"trello/internal/app/admin"
	"trello/internal/app/board"
	"trello/internal/app/health"
	"trello/internal/middleware"
	"trello/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Options struct {
	Templates    *template.Template
	FrontendURLs []string
	SSL          bool
}

type Router struct {
	Engine *gin.Engine
}

func NewRouter(logger *zap.Logger, opts Options) *Router {
	engine := gin.New()
	// Match on the escaped path so board titles containing "/" still land on
	// the detail route.
	engine.UseRawPath = true
	engine.UnescapePathValues = true

	engine.Use(middleware.RequestID())
	engine.Use(middleware.LoggerMiddleware(logger))
	engine.Use(gin.Recovery())
	engine.Use(middleware.SecureMiddleware(opts.SSL))
	engine.Use(middleware.CORSMiddleware(opts.FrontendURLs))
	engine.Use(middleware.MetricsMiddleware())

	engine.SetHTMLTemplate(opts.Templates)
	engine.NoRoute(func(c *gin.Context) {
		web.RenderError(c, http.StatusNotFound, "The page you are looking for does not exist.")
	})

	return &Router{Engine: engine}
}

func (r *Router) RegisterHealthRoutes(handler health.Handler) {
	health.RegisterRoutes(r.Engine, handler)
}

func (r *Router) RegisterMetricsRoutes() {
	r.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (r *Router) RegisterBoardRoutes(handler board.Handler) {
	board.RegisterRoutes(r.Engine, handler)
}

func (r *Router) RegisterAdminRoutes(handler admin.Handler, requireOperator gin.HandlerFunc) {
	admin.RegisterRoutes(r.Engine.Group("/admin"), handler, requireOperator)
}

func (r *Router) Serve(addr string) error {
	return r.Engine.Run(addr)
}
