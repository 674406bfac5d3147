package internal

import (
	"fmt"
	"sync"
	"time"
)

type CachedBuild struct {
	Version string
	MinCorr float64
	BuiltAt time.Time
	Result  *BuildResult
}

// GraphCache holds immutable build results keyed by (version, threshold).
// A failed rebuild records the error but never evicts the previous success,
// so readers keep serving the last good graph. Last build wins under
// concurrent rebuilds; results are never mutated in place.
type GraphCache struct {
	mu      sync.RWMutex
	builds  map[string]*CachedBuild
	current *CachedBuild
	lastErr error
}

func NewGraphCache() *GraphCache {
	return &GraphCache{
		builds: make(map[string]*CachedBuild),
	}
}

func cacheKey(version string, minCorr float64) string {
	return fmt.Sprintf("%s@%g", version, minCorr)
}

func (c *GraphCache) Get(version string, minCorr float64) (*CachedBuild, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	build, ok := c.builds[cacheKey(version, minCorr)]
	return build, ok
}

// Put stores a successful build, makes it current, and clears any prior error.
func (c *GraphCache) Put(build *CachedBuild) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builds[cacheKey(build.Version, build.MinCorr)] = build
	c.current = build
	c.lastErr = nil
}

func (c *GraphCache) Current() *CachedBuild {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *GraphCache) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
}

func (c *GraphCache) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Clear drops all cached builds, used when the active dataset switches.
func (c *GraphCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builds = make(map[string]*CachedBuild)
	c.current = nil
}
