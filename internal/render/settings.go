// Package render implements the ghost hand overlay pipeline. It turns
// per-frame hand landmarks into a temporally smoothed silhouette mask and
// composites a two-layer (body + halo) tint onto the video frame.
package render

import "image/color"

// Default render settings.
const (
	DefaultBodyOpacity    = 0.55
	DefaultHaloOpacity    = 0.2
	DefaultBlurSigma      = 4.0
	DefaultLandmarkSize   = 3
	DefaultSmoothingAlpha = 0.5

	// minBlurSigma is the floor applied to out-of-domain sigma values so a
	// bad slider value degrades the blur instead of aborting the render loop.
	minBlurSigma = 0.5
)

// Overlay tint colors. The body layer is a darker gray-blue composited on
// top of a cool light halo, so the body visually dominates where they overlap.
var (
	bodyTint   = color.RGBA{R: 70, G: 86, B: 112, A: 255}
	haloTint   = color.RGBA{R: 168, G: 205, B: 255, A: 255}
	markerTint = color.RGBA{R: 255, G: 235, B: 140, A: 255}
)

// Settings is an immutable configuration snapshot for the renderer.
type Settings struct {
	// EnableGhostStyle bypasses the entire pipeline when false; Render then
	// returns an unmodified copy of the source frame.
	EnableGhostStyle bool `json:"enable_ghost_style"`

	// ShowLandmarks draws small markers at each smoothed landmark.
	ShowLandmarks bool `json:"show_landmarks"`

	// ShowHandednessLabel draws the hand label near the wrist.
	ShowHandednessLabel bool `json:"show_handedness_label"`

	// BodyOpacity is the tint strength of the hand body layer (0-1).
	BodyOpacity float64 `json:"body_opacity"`

	// HaloOpacity is the tint strength of the halo ring layer (0-1).
	HaloOpacity float64 `json:"halo_opacity"`

	// BlurSigma drives the Gaussian kernel for the body soft mask; the halo
	// uses roughly double this value.
	BlurSigma float64 `json:"blur_sigma"`

	// LandmarkSize is the marker radius in pixels.
	LandmarkSize int `json:"landmark_size"`

	// SmoothingAlpha is the EMA weight given to the newest landmark sample,
	// in (0,1]. 1 disables smoothing.
	SmoothingAlpha float64 `json:"smoothing_alpha"`
}

// DefaultSettings returns a Settings with sensible default values.
func DefaultSettings() Settings {
	return Settings{
		EnableGhostStyle: true,
		BodyOpacity:      DefaultBodyOpacity,
		HaloOpacity:      DefaultHaloOpacity,
		BlurSigma:        DefaultBlurSigma,
		LandmarkSize:     DefaultLandmarkSize,
		SmoothingAlpha:   DefaultSmoothingAlpha,
	}
}

// normalized clamps every field into its valid domain. Out-of-domain values
// are a caller contract violation, but a visual pipeline prefers graceful
// degradation over dropping frames.
func (s Settings) normalized() Settings {
	s.BodyOpacity = clamp01(s.BodyOpacity)
	s.HaloOpacity = clamp01(s.HaloOpacity)

	if s.BlurSigma < minBlurSigma {
		s.BlurSigma = minBlurSigma
	}
	if s.LandmarkSize < 0 {
		s.LandmarkSize = 0
	}
	if s.SmoothingAlpha <= 0 || s.SmoothingAlpha > 1 {
		s.SmoothingAlpha = DefaultSmoothingAlpha
	}

	return s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
