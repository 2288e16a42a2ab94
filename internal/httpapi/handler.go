package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coverfinder/internal/applist"
	"coverfinder/internal/catalogcache"
	"coverfinder/internal/coverart"
	"coverfinder/internal/logging"
	"coverfinder/internal/services"
	"coverfinder/internal/steamstore"
)

// StatusClientClosedRequest is returned when a lookup was cancelled or
// superseded before it finished.
const StatusClientClosedRequest = 499

// Engine is the subset of coverart.Engine the handlers use.
type Engine interface {
	ResolveSingleBest(ctx context.Context, title string) (string, error)
	ResolveAll(ctx context.Context, title string) (coverart.Results, error)
	ResolveBatch(ctx context.Context, records []applist.Record) ([]applist.Record, error)
	ClearCache(ctx context.Context) error
	CacheStats() catalogcache.CacheStats
}

// Store answers Steam app and asset queries.
type Store interface {
	AppDetails(ctx context.Context, appID int64) (*steamstore.AppDetails, error)
	ProbeAssets(ctx context.Context, appID int64) ([]steamstore.AssetStatus, error)
}

var (
	_ Engine = (*coverart.Engine)(nil)
	_ Store  = (*steamstore.Client)(nil)
)

// Handler serves cover lookups, cache maintenance and Steam asset routes.
type Handler struct {
	Engine   Engine
	Store    Store
	Sessions *coverart.Superseder

	logger *slog.Logger
}

// NewHandler builds a Handler with its own session superseder.
func NewHandler(engine Engine, store Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		Engine:   engine,
		Store:    store,
		Sessions: coverart.NewSuperseder(),
		logger:   logging.NewComponentLogger(logger, "httpapi"),
	}
}

// RegisterRoutes mounts the handler's routes on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/covers/best", h.best)             // GET /api/covers/best?name=
	rg.GET("/covers", h.covers)                // GET /api/covers?name=&session=
	rg.POST("/covers/batch", h.batch)          // POST /api/covers/batch
	rg.GET("/covers/cache", h.cacheStats)      // GET /api/covers/cache
	rg.DELETE("/covers/cache", h.clearCache)   // DELETE /api/covers/cache
	rg.GET("/steam/apps/:id", h.app)           // GET /api/steam/apps/:id
	rg.GET("/steam/apps/:id/assets", h.assets) // GET /api/steam/apps/:id/assets
}

func (h *Handler) best(c *gin.Context) {
	name := c.Query("name")
	if err := services.ValidateTitle(name); err != nil {
		h.fail(c, err)
		return
	}
	url, err := h.Engine.ResolveSingleBest(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *Handler) covers(c *gin.Context) {
	name := c.Query("name")
	if err := services.ValidateTitle(name); err != nil {
		h.fail(c, err)
		return
	}
	session := strings.TrimSpace(c.Query("session"))

	var results coverart.Results
	err := h.Sessions.Run(c.Request.Context(), session, func(ctx context.Context) error {
		var err error
		results, err = h.Engine.ResolveAll(ctx, name)
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) batch(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read body failed"})
		return
	}
	file, err := applist.Decode(data, applist.FormatJSON)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid app list: " + err.Error()})
		return
	}
	records, err := h.Engine.ResolveBatch(c.Request.Context(), file.Records)
	if err != nil {
		h.fail(c, err)
		return
	}
	file.Records = records
	payload, err := file.Encode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "encode failed"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (h *Handler) cacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engine.CacheStats())
}

func (h *Handler) clearCache(c *gin.Context) {
	if err := h.Engine.ClearCache(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) app(c *gin.Context) {
	id, err := steamstore.ParseAppID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	details, err := h.Store.AppDetails(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if details == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, steamstore.FormatAppInfo(details))
}

func (h *Handler) assets(c *gin.Context) {
	id, err := steamstore.ParseAppID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	statuses, err := h.Store.ProbeAssets(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"app_id": id, "assets": statuses})
}

// fail maps a classified error onto a response. Internal detail is logged,
// not returned, except for validation messages.
func (h *Handler) fail(c *gin.Context, err error) {
	switch services.Classify(err) {
	case services.ErrCancelled:
		c.JSON(StatusClientClosedRequest, gin.H{"error": "cancelled"})
	case services.ErrValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
	case services.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		logging.WarnWithContext(h.logger, "request failed", "http_request_failed",
			logging.String("path", c.FullPath()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "client received 502"),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream lookup failed"})
	}
}

// validationMessage drops the sentinel and component prefix from a
// services.Wrap message.
func validationMessage(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
