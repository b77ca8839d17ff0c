package render

import (
	"image"
	"image/color"

	"github.com/ayusman/chhaya/internal/detector"
	"gocv.io/x/gocv"
)

// Mask geometry tuning.
const (
	// cleanupKernelSize is the structuring element side for the post-draw
	// morphological closing/opening, fixed regardless of resolution.
	cleanupKernelSize = 5

	// strokeDivisor scales the base finger stroke thickness from the short
	// frame dimension (480px tall frame -> ~17px strokes at the knuckle).
	strokeDivisor = 28

	// minStroke is the thinnest segment allowed; below this the morphology
	// pass eats the fingertips.
	minStroke = 2
)

var maskWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// palmIndices are the wrist and finger-base joints forming the palm contour.
var palmIndices = []int{0, 1, 2, 5, 9, 13, 17}

// fingerChains are the per-finger joint chains, base to tip.
var fingerChains = [5][4]int{
	{1, 2, 3, 4},     // thumb
	{5, 6, 7, 8},     // index
	{9, 10, 11, 12},  // middle
	{13, 14, 15, 16}, // ring
	{17, 18, 19, 20}, // pinky
}

// drawHandMask rasterizes one hand's silhouette into mask (CV8U, frame
// sized): a filled palm polygon plus tapered strokes along each finger chain
// with rounded joint caps. Landmark indices beyond the available point count
// are skipped per-segment; a palm with fewer than 3 usable points is skipped
// entirely. Degenerate input draws less, it never fails.
func drawHandMask(mask *gocv.Mat, pts []image.Point) {
	// Palm polygon.
	palm := make([]image.Point, 0, len(palmIndices))
	for _, idx := range palmIndices {
		if idx < len(pts) {
			palm = append(palm, pts[idx])
		}
	}
	if len(palm) >= 3 {
		pv := gocv.NewPointsVectorFromPoints([][]image.Point{palm})
		gocv.FillPoly(mask, pv, maskWhite)
		pv.Close()
	}

	// Finger strokes, thickest at the base and tapering toward the tip.
	short := mask.Cols()
	if mask.Rows() < short {
		short = mask.Rows()
	}
	base := short / strokeDivisor
	if base < minStroke {
		base = minStroke
	}

	for _, chain := range fingerChains {
		for seg := 0; seg < len(chain)-1; seg++ {
			a, b := chain[seg], chain[seg+1]
			if a >= len(pts) || b >= len(pts) {
				continue
			}

			thickness := base - seg*base/4
			if thickness < minStroke {
				thickness = minStroke
			}

			gocv.Line(mask, pts[a], pts[b], maskWhite, thickness)
			// Round the far joint so consecutive segments meet smoothly.
			gocv.Circle(mask, pts[b], thickness/2, maskWhite, -1)
		}
	}
}

// cleanMask applies a morphological closing (fills gaps between thin
// strokes) then opening (removes speckle) with a small elliptical kernel.
func cleanMask(mask *gocv.Mat) {
	kernel := gocv.GetStructuringElement(gocv.MorphEllipse,
		image.Pt(cleanupKernelSize, cleanupKernelSize))
	defer kernel.Close()

	tmp := gocv.NewMat()
	defer tmp.Close()

	gocv.MorphologyEx(*mask, &tmp, gocv.MorphClose, kernel)
	gocv.MorphologyEx(tmp, mask, gocv.MorphOpen, kernel)
}

// toPixels scales normalized landmark coordinates into pixel space, clamped
// to the frame bounds.
func toPixels(points []detector.Point3D, width, height int) []image.Point {
	pts := make([]image.Point, len(points))
	for i, p := range points {
		x := int(p.X * float64(width))
		y := int(p.Y * float64(height))
		if x < 0 {
			x = 0
		} else if x > width-1 {
			x = width - 1
		}
		if y < 0 {
			y = 0
		} else if y > height-1 {
			y = height - 1
		}
		pts[i] = image.Pt(x, y)
	}
	return pts
}
