package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	domainerrors "keephy.backend/internal/domain/errors"
	"keephy.backend/internal/interfaces/http/middleware"
	"keephy.backend/internal/interfaces/http/response"
)

const serviceName = "keephy-backend"

var corsAllowHeaders = strings.Join([]string{
	"Origin",
	"Content-Type",
	"Accept",
	middleware.AuthorizationHeader,
	middleware.RequestIDHeader,
	middleware.IdempotencyHeader,
}, ", ")

// applyCORSMiddleware echoes allowed origins back with credentials enabled.
// A "*" entry allows any origin.
func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (allowed[origin] || allowed["*"]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine, version string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": version,
		})
	})
}

// registerOperationalRoutes wires the root banner, metrics, static logos and
// the fallback for unknown routes
func registerOperationalRoutes(r *gin.Engine, logoDir string) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Keephy API is running")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if logoDir != "" {
		r.Static("/uploads/logo", logoDir)
	}
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, domainerrors.NotFound("Could not find the route"))
	})
}
