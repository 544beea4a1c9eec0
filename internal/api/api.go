// Package api implements the HTTP API for the import service.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonesrussell/gorecipe/internal/domain"
	"github.com/jonesrussell/gorecipe/internal/importer"
	"github.com/jonesrussell/gorecipe/internal/logger"
)

// ImportService runs one import request.
type ImportService interface {
	Import(ctx context.Context, url string) (*domain.ImportResult, error)
}

// importRequest is the POST /api/v1/import body.
type importRequest struct {
	URL string `json:"url" binding:"required,url"`
	// Legacy selects the single-Recipe response shape without
	// per-field confidence.
	Legacy bool `json:"legacy"`
}

// SetupRouter creates the gin engine with all routes configured.
func SetupRouter(log logger.Interface, imports ImportService) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.POST("/import", handleImport(log, imports))

	return router
}

// handleImport runs an import and maps the error taxonomy onto HTTP
// statuses: fetch and parse failures are 502, pages with no extractable
// data are 422.
func handleImport(log logger.Interface, imports ImportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req importRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: url is required"})
			return
		}

		result, err := imports.Import(c.Request.Context(), req.URL)
		if err != nil {
			var noData *importer.NoDataError
			if errors.As(err, &noData) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": noData.Error()})
				return
			}
			log.Error("import failed", "url", req.URL, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		if req.Legacy {
			c.JSON(http.StatusOK, result.ToRecipe())
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// loggingMiddleware logs each request with its duration.
func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String())
	}
}
