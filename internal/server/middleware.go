package server

import (
	"fmt"
	"net/http"
	"time"

	"nft-auction/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// RecoveryHandler turns a panic into a 500 envelope
func RecoveryHandler(c *gin.Context, recovered any) {
	utils.Error("panic recovered", map[string]any{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"panic":  fmt.Sprint(recovered),
	})
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   fmt.Sprint(recovered),
	})
}

// CORSMiddleware allows any origin to call the GET/POST surface
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	})
}
