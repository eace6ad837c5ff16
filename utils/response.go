package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a successful envelope: {"success": true, "message": ..., <payload>}
func JSONResponse(c *gin.Context, status int, payload gin.H, message string) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// JSONError sends a failed envelope: {"success": false, "message": ..., "error": ...}
func JSONError(c *gin.Context, status int, err error, message string) {
	body := gin.H{
		"success": false,
		"error":   err.Error(),
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}
