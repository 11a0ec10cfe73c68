package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/mineral-licensing-api/internal/auth"
	"github.com/noah-isme/mineral-licensing-api/internal/handler"
	"github.com/noah-isme/mineral-licensing-api/internal/middleware"
	"github.com/noah-isme/mineral-licensing-api/pkg/config"
	"github.com/noah-isme/mineral-licensing-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/mineral-licensing-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/mineral-licensing-api/pkg/middleware/requestid"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	System     *handler.SystemHandler
	Metrics    *handler.MetricsHandler
	Contact    *handler.ContactHandler
	License    *handler.LicenseHandler
	Miner      *handler.MinerHandler
	Unlicensed *handler.UnlicensedMinerHandler
}

// Dependencies carries everything the router needs besides handlers.
type Dependencies struct {
	Config        *config.Config
	Logger        *zap.Logger
	Authenticator auth.Authenticator
	Observer      middleware.RequestObserver
	// UploadsDir is served under the public base URL path when documents are
	// kept on local disk. Empty disables the static route.
	UploadsDir string
}

// New builds the gin engine with every route mounted.
func New(deps Dependencies, h Handlers) *gin.Engine {
	cfg := deps.Config
	logr := deps.Logger
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS, cfg.Auth.HeaderName))
	r.Use(middleware.Metrics(deps.Observer))

	r.GET("/", h.System.Root)
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.System.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", h.Metrics.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if deps.UploadsDir != "" {
		r.StaticFS(uploadsPath(cfg.Storage.PublicBaseURL), gin.Dir(deps.UploadsDir, false))
	}

	api := r.Group(cfg.APIPrefix)

	contact := api.Group("/contact")
	{
		contact.POST("/submit", h.Contact.Submit)
		contact.GET("/get", h.Contact.List)
	}

	license := api.Group("/license")
	license.Use(middleware.RequireIdentity(deps.Authenticator, "User ID not provided"))
	{
		license.POST("/submit", h.License.Submit)
		license.GET("/get", h.License.List)
	}

	miner := api.Group("/miner")
	miner.Use(middleware.RequireIdentity(deps.Authenticator, "User ID not provided"))
	{
		miner.GET("/license", h.Miner.License)
		miner.GET("/royalty", h.Miner.Royalty)
		miner.GET("/announcements", h.Miner.Announcements)
	}

	unlicensed := api.Group("/unlicensedminer")
	unlicensed.Use(middleware.RequireIdentity(deps.Authenticator, "Authentication required"))
	{
		unlicensed.GET("/status", h.Unlicensed.Status)
		unlicensed.GET("/application", h.Unlicensed.Application)
		unlicensed.GET("/documents", h.Unlicensed.Documents)
		unlicensed.POST("/upload-document", h.Unlicensed.UploadDocument)
		unlicensed.GET("/announcements", h.Unlicensed.Announcements)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found", "code": "NOT_FOUND"})
	})

	return r
}

func uploadsPath(publicBaseURL string) string {
	const fallback = "/uploads"
	parsed, err := url.Parse(publicBaseURL)
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return fallback
	}
	return "/" + strings.Trim(parsed.Path, "/")
}
