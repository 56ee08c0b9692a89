package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowPerKey(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(1, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("alice"))
	assert.True(t, l.Allow("alice"))
	assert.False(t, l.Allow("alice"))
	assert.True(t, l.Allow("bob"))

	now = now.Add(time.Second)
	assert.True(t, l.Allow("alice"))
}

func TestZeroRateDisablesLimiting(t *testing.T) {
	l := New(0, 0)
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("alice"))
	}
	assert.Equal(t, 0, l.Len())
}

func TestIdleBucketsAreEvicted(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(1, 1)
	l.now = func() time.Time { return now }

	l.Allow("alice")
	now = now.Add(idleTTL + time.Second)
	l.Allow("bob")

	assert.Equal(t, 1, l.Len())
}

func TestBucketSurvivesRepeatedCalls(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(1, 1)
	l.now = func() time.Time { return now }

	allowed := 0
	for i := 0; i < 50; i++ {
		if l.Allow("alice") {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)
	assert.Equal(t, 1, l.Len())
}
