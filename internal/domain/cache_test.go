package domain_test

import (
	"testing"

	"github.com/abdidvp/expectfix/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestInspectCache_IsInvalidated(t *testing.T) {
	cache := domain.NewInspectCache("def456")

	t.Run("same hash", func(t *testing.T) {
		assert.False(t, cache.IsInvalidated("def456"))
	})

	t.Run("different hash", func(t *testing.T) {
		assert.True(t, cache.IsInvalidated("changed"))
	})
}

func TestInspectCache_Clean(t *testing.T) {
	cache := &domain.InspectCache{}
	assert.False(t, cache.IsClean("A.java", "h1"))

	cache.MarkClean("A.java", "h1")
	assert.True(t, cache.IsClean("A.java", "h1"))
	assert.False(t, cache.IsClean("A.java", "h2"), "content changed")

	cache.Forget("A.java")
	assert.False(t, cache.IsClean("A.java", "h1"))
}
