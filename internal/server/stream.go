package server

import (
	"fmt"
	"net/http"
	"time"
)

// streamInterval paces the MJPEG stream at roughly the active pipeline rate.
const streamInterval = 66 * time.Millisecond // ~15 FPS

// StreamHandler serves the rendered overlay frames as an MJPEG stream.
type StreamHandler struct {
	frames FrameSource
}

// NewStreamHandler creates a new StreamHandler reading from the given source.
func NewStreamHandler(frames FrameSource) *StreamHandler {
	return &StreamHandler{frames: frames}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var lastStamp time.Time

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		jpeg, stamp, ok := h.frames.LatestFrame()
		if !ok || !stamp.After(lastStamp) {
			// Nothing new yet.
			time.Sleep(streamInterval)
			continue
		}
		lastStamp = stamp

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(jpeg))
		w.Write(jpeg)
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(streamInterval)
	}
}
