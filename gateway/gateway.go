package gateway

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/example/shopadmin/pkg/admin"
	"github.com/example/shopadmin/pkg/config"
	"github.com/example/shopadmin/pkg/logger"
	"github.com/example/shopadmin/pkg/models"
	"github.com/example/shopadmin/pkg/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// historyLimit caps the audit entries returned for one record.
const historyLimit = 50

// Gateway serves the REST collection API: /api/<resource> for every entity.
type Gateway struct {
	config    *config.Config
	logger    *zap.Logger
	router    *gin.Engine
	api       *gin.RouterGroup
	audit     repository.Auditor
	server    *http.Server
	resources []string
}

func NewGateway(cfg *config.Config, logger *zap.Logger, audit repository.Auditor) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogging(logger)...)

	if audit == nil {
		audit = repository.NopAuditor{}
	}
	g := &Gateway{
		config: cfg,
		logger: logger,
		router: router,
		audit:  audit,
	}
	g.SetupRoutes()
	return g
}

func requestLogging(l *zap.Logger) []gin.HandlerFunc {
	return []gin.HandlerFunc{logger.RequestID(), logger.GinMiddleware(l.Named("http"))}
}

func (g *Gateway) SetupRoutes() {
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "resources": g.resources})
	})
	g.api = g.router.Group("/api")
}

// Mount registers every entity collection stored in db.
func (g *Gateway) Mount(db *gorm.DB) {
	Register(g, repository.NewCollection(db, models.Users, g.audit, g.logger))
	Register(g, repository.NewCollection(db, models.Products, g.audit, g.logger))
	Register(g, repository.NewCollection(db, models.Categories, g.audit, g.logger))
	Register(g, repository.NewCollection(db, models.Orders, g.audit, g.logger))
	Register(g, repository.NewCollection(db, models.Payments, g.audit, g.logger))
	Register(g, repository.NewCollection(db, models.Promotions, g.audit, g.logger))
	Register(g, repository.NewCollection(db, models.Reviews, g.audit, g.logger))
}

// Resources lists the mounted collection names.
func (g *Gateway) Resources() []string {
	return g.resources
}

func (g *Gateway) Handler() http.Handler {
	return g.router
}

func (g *Gateway) Start() error {
	addr := g.config.Gateway.Addr()
	g.server = &http.Server{
		Addr:              addr,
		Handler:           g.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.logger.Info("Gateway starting", zap.String("address", addr))
	if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	if g.server == nil {
		return nil
	}
	return g.server.Shutdown(ctx)
}

type collectionHandler[T any, F any] struct {
	coll   *repository.Collection[T, F]
	schema *admin.Schema[T, F]
	audit  repository.Auditor
	logger *zap.Logger
}

// Register mounts the CRUD routes of one collection under /api/<resource>.
func Register[T any, F any](g *Gateway, coll *repository.Collection[T, F]) {
	schema := coll.Schema()
	h := &collectionHandler[T, F]{
		coll:   coll,
		schema: schema,
		audit:  g.audit,
		logger: g.logger.With(zap.String("resource", schema.Resource)),
	}

	group := g.api.Group("/" + schema.Resource)
	{
		group.GET("", h.list)
		group.POST("", h.create)
		group.GET("/:id", h.get)
		group.PUT("/:id", h.update)
		group.DELETE("/:id", h.delete)
		group.GET("/:id/history", h.history)
	}
	g.resources = append(g.resources, schema.Resource)
}

func (h *collectionHandler[T, F]) list(c *gin.Context) {
	records, err := h.coll.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		h.schema.Key(): records,
		"total":        len(records),
	})
}

func (h *collectionHandler[T, F]) get(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	rec, err := h.coll.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *collectionHandler[T, F]) create(c *gin.Context) {
	form, ok := h.bind(c)
	if !ok {
		return
	}
	rec, err := h.coll.Create(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *collectionHandler[T, F]) update(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	form, ok := h.bind(c)
	if !ok {
		return
	}
	rec, err := h.coll.Update(c.Request.Context(), id, form)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *collectionHandler[T, F]) delete(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	if err := h.coll.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *collectionHandler[T, F]) history(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	logs, err := h.audit.History(c.Request.Context(), h.schema.Resource, strconv.FormatInt(id, 10), historyLimit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": logs, "total": len(logs)})
}

func (h *collectionHandler[T, F]) id(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *collectionHandler[T, F]) bind(c *gin.Context) (F, bool) {
	var form F
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return form, false
	}
	if err := admin.ValidateForm(form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return form, false
	}
	return form, true
}

func (h *collectionHandler[T, F]) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": h.schema.Singular + " not found"})
	case errors.Is(err, admin.ErrInvalidForm):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
