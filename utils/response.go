// utils/response.go
package utils

import "github.com/gin-gonic/gin"

func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// RespondWithValidationErrors returns the full list of human-readable
// validation messages; nothing is written when validation fails.
func RespondWithValidationErrors(c *gin.Context, status int, errors []string) {
	c.AbortWithStatusJSON(status, gin.H{"errors": errors})
}
