package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CacheConfig represents cache control configuration
type CacheConfig struct {
	MaxAge         int
	Private        bool
	NoStore        bool
	NoCache        bool
	MustRevalidate bool
}

// NoStoreConfig is used for chat replies, which carry personal details.
func NoStoreConfig() CacheConfig {
	return CacheConfig{Private: true, NoStore: true}
}

func (c CacheConfig) header() string {
	var parts []string
	if c.Private {
		parts = append(parts, "private")
	}
	if c.NoStore {
		parts = append(parts, "no-store")
	}
	if c.NoCache {
		parts = append(parts, "no-cache")
	}
	if c.MustRevalidate {
		parts = append(parts, "must-revalidate")
	}
	if !c.NoStore && !c.NoCache {
		parts = append(parts, "max-age="+strconv.Itoa(c.MaxAge))
	}
	return strings.Join(parts, ", ")
}

// CacheControl sets the Cache-Control header on every response.
func CacheControl(config CacheConfig) gin.HandlerFunc {
	value := config.header()
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
