package lattice

import (
	"log/slog"
	"time"
)

// RenderStats holds per-render timing and draw-call metrics. Layout and
// render times are filled by the Composite, batch and submit times by the
// renderer.
type RenderStats struct {
	LayoutTime    time.Duration
	BatchTime     time.Duration
	SubmitTime    time.Duration
	Visuals       int
	Instances     int
	DrawCallCount int
}

// Total returns the summed duration of every stage.
func (s RenderStats) Total() time.Duration {
	return s.LayoutTime + s.BatchTime + s.SubmitTime
}

// statsReporter is implemented by renderers that record RenderStats.
type statsReporter interface {
	LastStats() RenderStats
}

// SetDebugMode enables per-render stats logging at debug level and sanity
// warnings for oversized trees.
func (c *Composite) SetDebugMode(enabled bool) {
	c.debug = enabled
}

func (c *Composite) debugLog(stats RenderStats) {
	if !c.debug {
		return
	}
	c.log.Debug("render",
		slog.Duration("layout", stats.LayoutTime),
		slog.Duration("batch", stats.BatchTime),
		slog.Duration("submit", stats.SubmitTime),
		slog.Duration("total", stats.Total()),
		slog.Int("visuals", stats.Visuals),
		slog.Int("instances", stats.Instances),
		slog.Int("draw_calls", stats.DrawCallCount),
	)
}

// debugMaxInstances is the instance count above which a single render is
// reported as suspicious.
const debugMaxInstances = 1 << 16

// debugMaxDepth is the layer depth above which a push is reported.
const debugMaxDepth = 32

func (c *Composite) debugCheck() {
	if !c.debug {
		return
	}
	if n := c.scene.SubcomponentCount(); n > debugMaxInstances {
		c.log.Warn("render queue exceeds instance threshold",
			slog.Int("instances", n), slog.Int("threshold", debugMaxInstances))
	}
	if d := len(c.layers); d > debugMaxDepth {
		c.log.Warn("layer depth exceeds threshold",
			slog.Int("depth", d), slog.Int("threshold", debugMaxDepth))
	}
}
