package clock

import (
	"context"
	"time"
)

// Driver owns the per-frame callback. While stopped, Frame is a no-op, so a
// frame already scheduled by the platform cannot run after a Stop.
type Driver struct {
	frame   func()
	running bool
	frames  uint64
}

// NewDriver creates a stopped driver around the frame callback.
func NewDriver(frame func()) *Driver {
	return &Driver{frame: frame}
}

// Start begins invoking the frame callback.
func (d *Driver) Start() {
	d.running = true
}

// Stop suspends the frame callback.
func (d *Driver) Stop() {
	d.running = false
}

// Running reports whether frames are being executed.
func (d *Driver) Running() bool {
	return d.running
}

// Frames returns how many frames have run since the driver was created.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Frame runs one frame if the loop is active and reports whether it ran.
func (d *Driver) Frame() bool {
	if !d.running {
		return false
	}
	d.frames++
	d.frame()
	return true
}

// Run calls tick at the given rate with the real elapsed time since the
// previous call, until ctx is done or tick returns false.
func Run(ctx context.Context, fps int, tick func(dt time.Duration) bool) error {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if !tick(dt) {
				return nil
			}
		}
	}
}
