package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoStore marks API responses as uncacheable. Listings change with every
// write, and some carry per-principal rows.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
