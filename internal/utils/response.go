package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondSuccess writes the standard success envelope
func RespondSuccess(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
		"message": message,
	})
}

// RespondError writes the standard failure envelope
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   true,
		"message": message,
	})
}

// RespondMissingFields writes the failure envelope with the list of unmet
// requirements, so the applicant UI can render them individually
func RespondMissingFields(c *gin.Context, status int, message string, missingFields []string) {
	c.JSON(status, gin.H{
		"success":        false,
		"error":          true,
		"message":        message,
		"missing_fields": missingFields,
	})
}
