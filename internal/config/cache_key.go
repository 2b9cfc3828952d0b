package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionKey returns the cache key holding the principal for a session token.
func (r *CacheKeyStruct) SessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

var CacheKey = NewCacheKeyStruct()
