package render

import (
	"image"

	"gocv.io/x/gocv"
)

// blendTints composites the halo then the body tint layer onto frame, using
// the two soft masks as spatially varying alpha scaled by the configured
// opacities. frame must be CV8UC3 (BGR) and both masks CV8U at the same
// resolution.
//
// Per-pixel Mat access over CGO is too slow for video rate, so the frame and
// mask bytes are pulled out, blended in Go, and copied back in one call.
func blendTints(frame *gocv.Mat, body, halo gocv.Mat, bodyOpacity, haloOpacity float64) {
	width := frame.Cols()
	height := frame.Rows()

	imgData := frame.ToBytes()
	bodyData := body.ToBytes()
	haloData := halo.ToBytes()

	bodyW := float32(bodyOpacity) / 255
	haloW := float32(haloOpacity) / 255

	for idx := 0; idx < width*height; idx++ {
		pixelPos := idx * 3

		// Halo first; the body layer is composited second so it dominates
		// wherever the two overlap.
		if haloData[idx] != 0 && haloW > 0 {
			a := float32(haloData[idx]) * haloW
			imgData[pixelPos+0] = blendChannel(imgData[pixelPos+0], haloTint.B, a)
			imgData[pixelPos+1] = blendChannel(imgData[pixelPos+1], haloTint.G, a)
			imgData[pixelPos+2] = blendChannel(imgData[pixelPos+2], haloTint.R, a)
		}

		if bodyData[idx] != 0 && bodyW > 0 {
			a := float32(bodyData[idx]) * bodyW
			imgData[pixelPos+0] = blendChannel(imgData[pixelPos+0], bodyTint.B, a)
			imgData[pixelPos+1] = blendChannel(imgData[pixelPos+1], bodyTint.G, a)
			imgData[pixelPos+2] = blendChannel(imgData[pixelPos+2], bodyTint.R, a)
		}
	}

	tmp, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, imgData)
	if err != nil {
		return
	}
	defer tmp.Close()
	tmp.CopyTo(frame)
}

// blendChannel mixes one channel toward the tint by alpha in [0,1].
func blendChannel(orig, tint uint8, alpha float32) uint8 {
	return uint8(float32(orig)*(1-alpha) + float32(tint)*alpha)
}

// drawMarkers paints a filled circle at each landmark directly on the output
// frame, undiminished by the masks, and optionally anchors the handedness
// label near the first point.
func drawMarkers(frame *gocv.Mat, key Hand, pts []image.Point, set Settings) {
	if set.LandmarkSize > 0 {
		for _, pt := range pts {
			gocv.Circle(frame, pt, set.LandmarkSize, markerTint, -1)
		}
	}

	if set.ShowHandednessLabel && len(pts) > 0 {
		anchor := image.Pt(pts[0].X+8, pts[0].Y-8)
		gocv.PutText(frame, key.String(), anchor,
			gocv.FontHersheySimplex, 0.5, markerTint, 1)
	}
}
