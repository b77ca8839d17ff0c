// Package app wires the camera, detector and renderer into the per-frame
// overlay pipeline and exposes the latest rendered output to the server.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/chhaya/internal/capture"
	"github.com/ayusman/chhaya/internal/detector"
	"github.com/ayusman/chhaya/internal/render"
	"github.com/ayusman/chhaya/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when the scene is static.
	IdleFPS = 5
	// ActiveFPS is the frame rate while activity is detected.
	ActiveFPS = 15
	// IdleTimeoutMs is how long the scene must stay static before the
	// pipeline drops back to the idle cadence.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store          *store.Store
	CameraID       int
	ActivityThresh float64
	Settings       render.Settings
}

// App owns the overlay pipeline: camera in, rendered frames out.
type App struct {
	config   Config
	camera   capture.Camera
	activity *capture.ActivityDetector
	detector detector.Detector
	renderer *render.Renderer
	enabled  bool
	mu       sync.RWMutex
	stopCh   chan struct{}

	// Latest pipeline output, pulled by the stream and landmark handlers.
	outMu     sync.RWMutex
	lastJPEG  []byte
	lastHands []detector.HandLandmarks
	lastStamp time.Time
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	threshold := config.ActivityThresh
	if threshold <= 0 {
		threshold = 1.0 // 1% pixel change
	}

	a := &App{
		config:   config,
		camera:   capture.NewCamera(config.CameraID),
		activity: capture.NewActivityDetector(threshold),
		renderer: render.New(config.Settings),
		enabled:  true,
	}

	a.detector = detector.New(detector.DefaultConfig())
	if _, ok := a.detector.(*detector.MediaPipeDetector); ok {
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Println("MediaPipe not available, using skin-segmentation fallback")
	}

	return a
}

// SetEnabled enables or disables the overlay pipeline.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether the pipeline is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Renderer returns the overlay renderer.
func (a *App) Renderer() *render.Renderer {
	return a.renderer
}

// ApplySettings swaps the render settings used from the next frame on.
func (a *App) ApplySettings(settings render.Settings) {
	a.renderer.ApplySettings(settings)
}

// LoadActiveProfile applies the active store profile's settings, if any.
func (a *App) LoadActiveProfile() error {
	if a.config.Store == nil {
		return nil
	}

	profile, err := a.config.Store.Profiles().Active()
	if err == store.ErrProfileNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	a.renderer.ApplySettings(profile.Settings)
	log.Printf("Applied render profile %q", profile.Name)
	return nil
}

// LatestFrame returns the most recent rendered frame as JPEG bytes along
// with its capture time. ok is false before the first frame is rendered.
func (a *App) LatestFrame() (jpeg []byte, stamp time.Time, ok bool) {
	a.outMu.RLock()
	defer a.outMu.RUnlock()
	return a.lastJPEG, a.lastStamp, a.lastJPEG != nil
}

// LatestHands returns the most recent tracking result.
func (a *App) LatestHands() ([]detector.HandLandmarks, time.Time) {
	a.outMu.RLock()
	defer a.outMu.RUnlock()
	return a.lastHands, a.lastStamp
}

func (a *App) publish(jpeg []byte, hands []detector.HandLandmarks) {
	a.outMu.Lock()
	a.lastJPEG = jpeg
	a.lastHands = hands
	a.lastStamp = time.Now()
	a.outMu.Unlock()
}

// Start opens the camera and begins the pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Overlay pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.activity.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Overlay pipeline stopped")
}
