package handler

import (
	"github.com/gin-gonic/gin"
)

// All responses share the {error, message, data} envelope. Failures carry
// real HTTP status codes but keep the same body shape as successes.

func respond(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{
		"error":   false,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error":   true,
		"message": message,
	})
}
