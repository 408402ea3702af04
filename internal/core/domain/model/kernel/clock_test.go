package kernel_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	t.Run("real clock returns UTC", func(t *testing.T) {
		now := kernel.RealClock{}.Now()

		assert.Equal(t, time.UTC, now.Location())
		assert.WithinDuration(t, time.Now(), now, time.Second)
	})

	t.Run("fixed clock is stable", func(t *testing.T) {
		at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		c := kernel.FixedClock{At: at}

		assert.Equal(t, at, c.Now())
		assert.Equal(t, at, c.Now())
	})
}
