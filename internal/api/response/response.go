package response

import (
	"github.com/gin-gonic/gin"
)

// Error writes the `{"error": ...}` body used by the CRUD surfaces for
// validation failures, missing entities and generic data-access failures.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// Message writes the `{"message": ...}` body used by the auth surface.
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}
