package detector

import (
	"image"
	"sort"

	"gocv.io/x/gocv"
)

// Skin segmentation tuning. HSV bounds cover the common skin-tone hue band;
// blobs smaller than minBlobFrac of the frame area are noise.
const (
	segmentKernelSize = 5
	minBlobFrac       = 0.01
	segmentScore      = 0.6
)

// SegmentDetector is the heuristic fallback used when the MediaPipe runtime
// is unavailable. It segments skin-colored blobs in HSV space and synthesizes
// an open-palm landmark layout from each blob's bounding box. The landmarks
// are coarse, but they satisfy the same contract as the model-based detector
// so the overlay keeps working.
type SegmentDetector struct {
	config Config
}

// NewSegmentDetector creates a new skin-segmentation detector.
func NewSegmentDetector(config Config) *SegmentDetector {
	return &SegmentDetector{config: config}
}

// Detect finds skin-colored blobs and returns synthesized hand landmarks.
func (d *SegmentDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if frame == nil || frame.Empty() {
		return nil, nil
	}

	width := frame.Cols()
	height := frame.Rows()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(*frame, &hsv, gocv.ColorBGRToHSV)

	mask := gocv.NewMat()
	defer mask.Close()
	lower := gocv.Scalar{Val1: 0, Val2: 40, Val3: 60}
	upper := gocv.Scalar{Val1: 25, Val2: 255, Val3: 255}
	gocv.InRangeWithScalar(hsv, lower, upper, &mask)

	// Scrub speckle before blob extraction.
	kernel := gocv.GetStructuringElement(gocv.MorphEllipse,
		image.Pt(segmentKernelSize, segmentKernelSize))
	defer kernel.Close()

	cleaned := gocv.NewMat()
	defer cleaned.Close()
	gocv.MorphologyEx(mask, &cleaned, gocv.MorphOpen, kernel)
	gocv.MorphologyEx(cleaned, &cleaned, gocv.MorphClose, kernel)

	contours := gocv.FindContours(cleaned, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	minArea := minBlobFrac * float64(width) * float64(height)

	type blob struct {
		rect image.Rectangle
		area float64
	}

	var blobs []blob
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if area < minArea {
			continue
		}
		blobs = append(blobs, blob{rect: gocv.BoundingRect(contour), area: area})
	}

	sort.Slice(blobs, func(i, j int) bool { return blobs[i].area > blobs[j].area })

	maxHands := d.config.MaxHands
	if maxHands <= 0 {
		maxHands = 2
	}
	if len(blobs) > maxHands {
		blobs = blobs[:maxHands]
	}

	hands := make([]HandLandmarks, 0, len(blobs))
	for _, b := range blobs {
		hands = append(hands, synthesizeHand(b.rect, width, height))
	}

	return hands, nil
}

// Close is a no-op; the segment detector holds no resources between calls.
func (d *SegmentDetector) Close() error {
	return nil
}

// palmTemplate places the 21 MediaPipe landmarks inside a unit bounding box
// as an upright open palm (u across, v down; wrist at the bottom).
var palmTemplate = [NumLandmarks][2]float64{
	{0.50, 0.95}, // wrist
	{0.78, 0.82}, {0.88, 0.68}, {0.94, 0.55}, {0.98, 0.44}, // thumb
	{0.66, 0.52}, {0.68, 0.34}, {0.69, 0.20}, {0.70, 0.08}, // index
	{0.52, 0.50}, {0.52, 0.30}, {0.52, 0.15}, {0.52, 0.02}, // middle
	{0.38, 0.52}, {0.36, 0.33}, {0.35, 0.19}, {0.34, 0.07}, // ring
	{0.24, 0.58}, {0.20, 0.43}, {0.18, 0.32}, {0.16, 0.22}, // pinky
}

// synthesizeHand maps the palm template into the blob's bounding box and
// returns frame-normalized landmarks. Handedness is guessed from which half
// of the frame the blob sits in.
func synthesizeHand(rect image.Rectangle, width, height int) HandLandmarks {
	hand := HandLandmarks{
		Points: make([]Point3D, NumLandmarks),
		Score:  segmentScore,
	}

	cx := float64(rect.Min.X+rect.Max.X) / 2
	if cx < float64(width)/2 {
		hand.Handedness = "Left"
	} else {
		hand.Handedness = "Right"
	}

	rw := float64(rect.Dx())
	rh := float64(rect.Dy())
	for i, uv := range palmTemplate {
		hand.Points[i] = Point3D{
			X: (float64(rect.Min.X) + uv[0]*rw) / float64(width),
			Y: (float64(rect.Min.Y) + uv[1]*rh) / float64(height),
		}
	}

	return hand
}
