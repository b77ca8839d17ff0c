package render

import (
	"image"
	"sync"

	"github.com/ayusman/chhaya/internal/detector"
	"gocv.io/x/gocv"
)

// Renderer drives the ghost overlay pipeline: smoothing, silhouette
// rasterization, soft mask generation and compositing, once per incoming
// (frame, tracking result) pair. It owns the per-hand smoothing state, so
// independent Renderer instances (multi-camera) never interfere.
//
// Render must not be called concurrently; it is a single-caller, per-frame
// pipeline. ApplySettings and Settings are safe to call from other
// goroutines between frames.
type Renderer struct {
	mu       sync.RWMutex
	settings Settings
	smoother *Smoother
}

// New creates a Renderer with the given settings.
func New(settings Settings) *Renderer {
	return &Renderer{
		settings: settings,
		smoother: NewSmoother(),
	}
}

// ApplySettings swaps the configuration snapshot used by subsequent frames.
func (r *Renderer) ApplySettings(settings Settings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = settings
}

// Settings returns the current configuration snapshot.
func (r *Renderer) Settings() Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings
}

// Tracked returns the number of hands with live smoothing state.
func (r *Renderer) Tracked() int {
	return r.smoother.Tracked()
}

// Render composites the ghost overlay for one frame and returns the result.
// The returned Mat is always a fresh copy owned by the caller, even when the
// ghost style is disabled or the input has no hands. Degenerate input (empty
// frame, hands with too few points) degrades the overlay, never fails: a
// dropped frame of video is worse than an imperfect overlay.
func (r *Renderer) Render(frame *gocv.Mat, hands []detector.HandLandmarks) gocv.Mat {
	if frame == nil {
		return gocv.NewMat()
	}

	out := frame.Clone()

	set := r.Settings().normalized()
	if !set.EnableGhostStyle || frame.Empty() {
		return out
	}

	width := frame.Cols()
	height := frame.Rows()

	type smoothedHand struct {
		key Hand
		pts []image.Point
	}

	union := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8U)
	defer union.Close()

	rendered := make([]smoothedHand, 0, len(hands))
	for i := range hands {
		if len(hands[i].Points) == 0 {
			continue
		}

		key := ParseHand(hands[i].Handedness)
		smoothed := r.smoother.Apply(key, hands[i].Points, set.SmoothingAlpha)
		pts := toPixels(smoothed, width, height)
		rendered = append(rendered, smoothedHand{key: key, pts: pts})

		handMask := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8U)
		drawHandMask(&handMask, pts)
		cleanMask(&handMask)

		// Union via per-pixel max; order is irrelevant.
		gocv.Max(union, handMask, &union)
		handMask.Close()
	}

	if gocv.CountNonZero(union) > 0 {
		body := buildBodyMask(union, set.BlurSigma)
		halo := buildHaloMask(union, set.BlurSigma)

		blendTints(&out, body, halo, set.BodyOpacity, set.HaloOpacity)

		body.Close()
		halo.Close()
	}

	if set.ShowLandmarks {
		for _, h := range rendered {
			drawMarkers(&out, h.key, h.pts, set)
		}
	}

	// Eviction runs post-composite, so a vanished hand's shape may linger
	// for up to the staleness window before its state is dropped.
	r.smoother.Evict(StaleAfter)

	return out
}
