package app

import (
	"log"
	"time"

	"github.com/ayusman/chhaya/internal/detector"
	"gocv.io/x/gocv"
)

// runPipeline is the main loop: read a frame, gate on scene activity,
// detect hands, render the overlay, publish the result.
//
// Cadence: idle (IdleFPS) while the scene is static, active (ActiveFPS)
// while something moves, falling back to idle after IdleTimeoutMs without
// activity. Hand detection only runs in active mode; the renderer runs every
// frame so the stream never stalls and smoothing state ages out normally.
func (a *App) runPipeline(stopCh <-chan struct{}) {
	activeMode := false
	lastActivity := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			active, _ := a.activity.Detect(frame)

			if active {
				lastActivity = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastActivity) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			var hands []detector.HandLandmarks
			if activeMode {
				if d := a.Detector(); d != nil {
					hands, err = d.Detect(frame)
					if err != nil {
						log.Printf("Error detecting hands: %v", err)
						hands = nil
					}
				}
			}

			rendered := a.renderer.Render(frame, hands)
			frame.Close()

			buf, err := gocv.IMEncode(".jpg", rendered)
			rendered.Close()
			if err != nil {
				log.Printf("Error encoding frame: %v", err)
				continue
			}

			// GetBytes aliases the encode buffer; copy before Close.
			jpeg := append([]byte(nil), buf.GetBytes()...)
			buf.Close()

			a.publish(jpeg, hands)
		}
	}
}
