package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Activity detection constants.
const (
	// activityBlurSize is the Gaussian kernel side used to knock sensor
	// noise out of the difference signal.
	activityBlurSize = 21
	// activityDiffThreshold is the binary threshold for a changed pixel.
	activityDiffThreshold = 25
)

// ActivityDetector decides whether anything is moving in front of the
// camera by frame differencing. The overlay pipeline uses it to drop to an
// idle cadence when the scene is static; there is no point running hand
// detection on an empty room.
type ActivityDetector struct {
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

// NewActivityDetector creates a detector that reports activity when more
// than threshold percent of pixels changed since the previous frame.
func NewActivityDetector(threshold float64) *ActivityDetector {
	return &ActivityDetector{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Detect compares the frame against the previous one and returns whether
// the scene is active plus the percentage of pixels that changed. The first
// frame establishes the baseline and always reports inactive.
func (d *ActivityDetector) Detect(frame *gocv.Mat) (bool, float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred,
		image.Pt(activityBlurSize, activityBlurSize), 0, 0, gocv.BorderDefault)

	if !d.initialized {
		blurred.CopyTo(&d.prevGray)
		d.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, d.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, activityDiffThreshold, 255, gocv.ThresholdBinary)

	changed := gocv.CountNonZero(thresh)
	total := thresh.Rows() * thresh.Cols()
	changePercent := float64(changed) / float64(total) * 100.0

	blurred.CopyTo(&d.prevGray)

	return changePercent > d.threshold, changePercent
}

// Reset clears the baseline so the next frame re-initializes the detector.
func (d *ActivityDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.prevGray.Empty() {
		d.prevGray.Close()
		d.prevGray = gocv.NewMat()
	}
	d.initialized = false
}

// Close releases resources held by the detector.
func (d *ActivityDetector) Close() {
	d.Reset()
}
