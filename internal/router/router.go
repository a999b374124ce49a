// Package router wires handlers and middleware onto an Echo instance.
package router

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/bookshop/internal/handler"
	"github.com/iliyamo/bookshop/internal/metrics"
	"github.com/iliyamo/bookshop/internal/middleware"
)

// Deps are the handlers and collaborators the routes need. Cache and
// Metrics may be nil, which disables them. Assets may be nil, in which
// case no frontend is served.
type Deps struct {
	Books    *handler.BookHandler
	Reviews  *handler.ReviewHandler
	Users    *handler.UserHandler
	Verifier middleware.TokenVerifier
	Cache    echo.MiddlewareFunc
	Assets   fs.FS
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// New builds a fully wired Echo instance.
func New(d Deps) *echo.Echo {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	e.Use(echomw.Recover())
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
		e.GET(metrics.Path, echo.WrapHandler(d.Metrics.Handler()))
	}
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOriginFunc:  func(string) (bool, error) { return true, nil },
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	RegisterRoutes(e, d.Assets)
	api := e.Group("/api")
	api.GET("", handler.APIIndex)
	RegisterBooks(api, d.Books, d.Cache)
	RegisterUsers(api, d.Users)
	RegisterReviews(api, d.Reviews, d.Verifier)
	api.Any("/*", handler.APINotFound)
	return e
}

// RegisterRoutes registers the unauthenticated non-API routes: the
// health probe and, when assets are given, the frontend shell. Paths
// that name no asset and match no route fall back to index.html so the
// browser app can do its own routing; /api paths never do.
func RegisterRoutes(e *echo.Echo, assets fs.FS) {
	e.GET("/healthz", handler.Health)
	if assets != nil {
		e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
			Skipper: func(c echo.Context) bool {
				p := c.Request().URL.Path
				return p == "/api" || strings.HasPrefix(p, "/api/")
			},
			Index:      "index.html",
			HTML5:      true,
			Filesystem: http.FS(assets),
		}))
	}
}

// RegisterBooks registers the catalog routes. The optional cache
// middleware only wraps this group.
func RegisterBooks(api *echo.Group, h *handler.BookHandler, cache echo.MiddlewareFunc) {
	g := api.Group("/books")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("", h.ListBooks)
	g.GET("/isbn/:isbn", h.GetByISBN)
	g.GET("/author/:author", h.GetByAuthor)
	g.GET("/title/:title", h.GetByTitle)
}

// RegisterUsers registers account creation and login.
func RegisterUsers(api *echo.Group, h *handler.UserHandler) {
	g := api.Group("/users")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// RegisterReviews registers review routes. Listing is public; writes
// require a bearer token.
func RegisterReviews(api *echo.Group, h *handler.ReviewHandler, v middleware.TokenVerifier) {
	g := api.Group("/reviews")
	g.GET("/:isbn", h.ListReviews)
	auth := middleware.JWTAuth(v)
	g.POST("/:isbn", h.PutReview, auth)
	g.DELETE("/:isbn", h.DeleteReview, auth)
}
