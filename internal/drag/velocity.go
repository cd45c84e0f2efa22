package drag

import "time"

// velocityWindow is how far back samples count toward release velocity.
const velocityWindow = 100 * time.Millisecond

type sample struct {
	x, y int
	at   time.Time
}

// velocityTracker estimates pointer velocity in cells per second from the
// samples of the last velocityWindow.
type velocityTracker struct {
	samples []sample
}

func (t *velocityTracker) reset() {
	t.samples = t.samples[:0]
}

func (t *velocityTracker) add(x, y int, at time.Time) {
	t.samples = append(t.samples, sample{x: x, y: y, at: at})
	t.prune(at)
}

func (t *velocityTracker) prune(now time.Time) {
	cut := 0
	for cut < len(t.samples)-1 && now.Sub(t.samples[cut].at) > velocityWindow {
		cut++
	}
	if cut > 0 {
		t.samples = append(t.samples[:0], t.samples[cut:]...)
	}
}

// velocity returns (xvel, yvel) over the retained window.
func (t *velocityTracker) velocity(now time.Time) (float64, float64) {
	t.prune(now)
	if len(t.samples) < 2 {
		return 0, 0
	}
	first := t.samples[0]
	last := t.samples[len(t.samples)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0, 0
	}
	return float64(last.x-first.x) / dt, float64(last.y-first.y) / dt
}
