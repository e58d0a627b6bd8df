// Package lru caches hunt results in memory with
// github.com/hashicorp/golang-lru/v2.
package lru

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/hhaeri/HydroAgent"
)

// Cache defaults.
const (
	DefaultSize = 128
	DefaultTTL  = time.Hour
)

// Ensure CachingHunter implements hydroagent.Hunter.
var _ hydroagent.Hunter = (*CachingHunter)(nil)

// CachingHunter answers repeated queries for the same basin from memory.
// Only successful hunts are cached; failures always reach the wrapped hunter.
type CachingHunter struct {
	next  hydroagent.Hunter
	cache *expirable.LRU[string, *hydroagent.HuntResult]
}

// NewCachingHunter creates a CachingHunter holding up to size results for ttl.
// Non-positive arguments fall back to DefaultSize and DefaultTTL.
func NewCachingHunter(next hydroagent.Hunter, size int, ttl time.Duration) *CachingHunter {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachingHunter{
		next:  next,
		cache: expirable.NewLRU[string, *hydroagent.HuntResult](size, nil, ttl),
	}
}

// GetBasinDocuments returns a cached copy when one exists.
func (c *CachingHunter) GetBasinDocuments(ctx context.Context, identifier string) (*hydroagent.HuntResult, error) {
	key := cacheKey(identifier)
	if result, ok := c.cache.Get(key); ok {
		return copyResult(result), nil
	}

	result, err := c.next.GetBasinDocuments(ctx, identifier)
	if err != nil {
		return result, err
	}
	c.cache.Add(key, copyResult(result))
	return result, nil
}

// Len returns the number of cached results.
func (c *CachingHunter) Len() int {
	return c.cache.Len()
}

// Purge drops every cached result.
func (c *CachingHunter) Purge() {
	c.cache.Purge()
}

func cacheKey(identifier string) string {
	return strings.ToLower(strings.Join(strings.Fields(identifier), " "))
}

// copyResult keeps callers from mutating cached values through the pointers.
func copyResult(r *hydroagent.HuntResult) *hydroagent.HuntResult {
	if r == nil {
		return nil
	}
	return &hydroagent.HuntResult{
		BasinName:       copyPtr(r.BasinName),
		LatestYear:      copyPtr(r.LatestYear),
		AnnualReportURL: copyPtr(r.AnnualReportURL),
		GSPURL:          copyPtr(r.GSPURL),
	}
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
