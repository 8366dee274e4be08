package response

import "github.com/gin-gonic/gin"

// The wire shapes mirror the existing mobile client's expectations:
// single failures as {"error": "..."}, field validation as
// {"errors": ["...", ...]}.

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func Errors(c *gin.Context, statusCode int, messages ...string) {
	c.JSON(statusCode, gin.H{"errors": messages})
}

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}
