// Package rest — диагностический HTTP-контур сервера заказов:
// метрики, снимок каталога и счётчиков. Протокол заказов живёт в transport/tcp.
package rest

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/wb_eshop/internal/catalog"
	"github.com/Gunvolt24/wb_eshop/internal/ports"
	"github.com/Gunvolt24/wb_eshop/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_eshop/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	store *catalog.Store
	log   ports.Logger
}

func NewHandler(store *catalog.Store, log ports.Logger) *Handler {
	return &Handler{store: store, log: log}
}

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	r.Use(requestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/catalog", h.getCatalog)
	r.GET("/stats", h.getStats)

	return r
}

// getCatalog — текущий снимок каталога (описание, цена, остаток).
func (h *Handler) getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Products())
}

// getStats — глобальные счётчики заказов и выручка.
func (h *Handler) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Counters())
}

func requestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		requestID, _ := ctxmeta.RequestIDFromContext(c.Request.Context())
		log.Infof(c.Request.Context(), "request request_id=%s method=%s path=%s status=%d duration=%s",
			requestID, c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
