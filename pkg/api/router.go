package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/IAmThe2ndHuman/interra-api/pkg/api/handlers"
	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
	"github.com/IAmThe2ndHuman/interra-api/pkg/device/schema"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine     *gin.Engine
	controller device.Controller
	validator  *schema.Validator
	authToken  string
	metrics    http.Handler
}

// NewRouter creates a new API router. metrics may be nil, in which case
// /metrics is not served.
func NewRouter(controller device.Controller, validator *schema.Validator, authToken string, metrics http.Handler) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:     engine,
		controller: controller,
		validator:  validator,
		authToken:  authToken,
		metrics:    metrics,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	toSwagger := func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	}
	r.engine.GET("/docs", toSwagger)
	r.engine.GET("/", toSwagger)

	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics))
	}

	// Health check at root
	healthHandler := handlers.NewHealthHandler(r.controller)
	r.engine.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	v1.GET("/health", healthHandler.Health)
	r.hubRoutes(v1.Group("", BearerAuth(r.authToken)))

	// Unversioned paths served by earlier releases
	r.hubRoutes(r.engine.Group("", BearerAuth(r.authToken)))
}

// hubRoutes registers the token-protected hub endpoints on g
func (r *Router) hubRoutes(g *gin.RouterGroup) {
	systemHandler := handlers.NewSystemHandler(r.controller)
	g.GET("/restart", systemHandler.Restart)

	lightsHandler := handlers.NewLightsHandler(r.controller, r.validator)
	lights := g.Group("/lights")
	{
		lights.GET("", lightsHandler.ListLights)
		lights.GET("/:id", lightsHandler.GetLight)
		lights.PATCH("/:id", lightsHandler.SwitchLight)
	}

	acHandler := handlers.NewACHandler(r.controller, r.validator)
	g.GET("/ac", acHandler.GetAC)
	g.PATCH("/ac", acHandler.SetAC)
}

// Handler returns the router as an http.Handler
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
