package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lonestar/statuary-server/identity"
)

// GET /api/health
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Backend is operational!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// GET /api/admin/health. Authenticated variant echoing the caller's roles,
// used to verify the token path end to end.
func AdminHealth(idp *identity.ManagementClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, ok := c.Get("userID")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No user ID found in token"})
			return
		}
		userID := userIDVal.(string)

		roles, err := idp.GetUserRoles(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch roles"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "Backend is operational!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"roles":     roles,
			"userId":    userID,
		})
	}
}
