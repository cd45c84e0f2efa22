package drag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVelocityTracker(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("single sample has no velocity", func(t *testing.T) {
		var vt velocityTracker
		vt.add(10, 0, base)

		xv, yv := vt.velocity(base)
		assert.Zero(t, xv)
		assert.Zero(t, yv)
	})

	t.Run("cells per second over the window", func(t *testing.T) {
		var vt velocityTracker
		vt.add(0, 0, base)
		vt.add(5, 0, base.Add(25*time.Millisecond))
		vt.add(10, 2, base.Add(50*time.Millisecond))

		xv, yv := vt.velocity(base.Add(50 * time.Millisecond))
		assert.InDelta(t, 200.0, xv, 0.001)
		assert.InDelta(t, 40.0, yv, 0.001)
	})

	t.Run("old samples drop out", func(t *testing.T) {
		var vt velocityTracker
		vt.add(0, 0, base)
		vt.add(100, 0, base.Add(500*time.Millisecond))
		vt.add(110, 0, base.Add(550*time.Millisecond))

		xv, _ := vt.velocity(base.Add(550 * time.Millisecond))
		assert.InDelta(t, 200.0, xv, 0.001)
	})

	t.Run("leftward motion is negative", func(t *testing.T) {
		var vt velocityTracker
		vt.add(50, 0, base)
		vt.add(40, 0, base.Add(50*time.Millisecond))

		xv, _ := vt.velocity(base.Add(50 * time.Millisecond))
		assert.Less(t, xv, 0.0)
	})

	t.Run("reset clears samples", func(t *testing.T) {
		var vt velocityTracker
		vt.add(0, 0, base)
		vt.add(10, 0, base.Add(10*time.Millisecond))
		vt.reset()

		xv, _ := vt.velocity(base.Add(10 * time.Millisecond))
		assert.Zero(t, xv)
	})
}
