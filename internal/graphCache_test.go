package internal

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cachedBuildFixture(version string, minCorr float64) *CachedBuild {
	return &CachedBuild{
		Version: version,
		MinCorr: minCorr,
		BuiltAt: time.Now().UTC(),
		Result:  &BuildResult{Meta: &Meta{MinCorrUsed: minCorr}},
	}
}

func TestGraphCachePutAndGet(t *testing.T) {
	cache := NewGraphCache()

	build := cachedBuildFixture("v1", 0.25)
	cache.Put(build)

	got, ok := cache.Get("v1", 0.25)
	require.True(t, ok)
	assert.Same(t, build, got)
	assert.Same(t, build, cache.Current())

	_, ok = cache.Get("v1", 0.5)
	assert.False(t, ok)
	_, ok = cache.Get("v2", 0.25)
	assert.False(t, ok)
}

func TestGraphCacheKeysByThreshold(t *testing.T) {
	cache := NewGraphCache()

	loose := cachedBuildFixture("v1", 0.25)
	tight := cachedBuildFixture("v1", 0.5)
	cache.Put(loose)
	cache.Put(tight)

	got, ok := cache.Get("v1", 0.25)
	require.True(t, ok)
	assert.Same(t, loose, got)

	// most recent build wins as current
	assert.Same(t, tight, cache.Current())
}

func TestGraphCacheFailedRebuildKeepsPreviousBuild(t *testing.T) {
	cache := NewGraphCache()

	build := cachedBuildFixture("v1", 0.25)
	cache.Put(build)

	cache.SetError(fmt.Errorf("holdings file not found"))

	got, ok := cache.Get("v1", 0.25)
	require.True(t, ok)
	assert.Same(t, build, got)
	assert.Same(t, build, cache.Current())
	require.Error(t, cache.LastError())

	// the next success clears the error
	cache.Put(cachedBuildFixture("v1", 0.3))
	assert.NoError(t, cache.LastError())
}

func TestGraphCacheClear(t *testing.T) {
	cache := NewGraphCache()
	cache.Put(cachedBuildFixture("v1", 0.25))

	cache.Clear()

	_, ok := cache.Get("v1", 0.25)
	assert.False(t, ok)
	assert.Nil(t, cache.Current())
}
