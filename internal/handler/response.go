package handler

import "github.com/gin-gonic/gin"

// Error emits the wire error shape shared by every endpoint.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
