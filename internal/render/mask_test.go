package render

import (
	"image"
	"testing"

	"github.com/ayusman/chhaya/internal/detector"
	"gocv.io/x/gocv"
)

// squarePalmPoints returns 21 pixel points where the palm contour indices
// form a square of the given side centered in a width x height frame and
// every finger-chain point coincides with the wrist.
func squarePalmPoints(width, height, side int) []image.Point {
	cx, cy := width/2, height/2
	half := side / 2

	corners := map[int]image.Point{
		0:  image.Pt(cx-half, cy+half), // wrist: bottom-left
		1:  image.Pt(cx-half, cy-half),
		2:  image.Pt(cx+half, cy-half),
		5:  image.Pt(cx+half, cy+half),
		9:  image.Pt(cx+half, cy+half),
		13: image.Pt(cx-half, cy+half),
		17: image.Pt(cx-half, cy+half),
	}

	pts := make([]image.Point, 21)
	for i := range pts {
		pts[i] = corners[0]
		if p, ok := corners[i]; ok {
			pts[i] = p
		}
	}
	return pts
}

func TestDrawHandMask_PalmFilled(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	mask := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8U)
	defer mask.Close()

	drawHandMask(&mask, squarePalmPoints(640, 480, 100))

	// Center of the square must be inside the filled palm.
	if mask.GetUCharAt(240, 320) == 0 {
		t.Error("palm interior not filled")
	}

	// Far corner stays empty.
	if mask.GetUCharAt(10, 10) != 0 {
		t.Error("mask filled far outside the hand")
	}
}

func TestDrawHandMask_TooFewPalmPoints(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	mask := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8U)
	defer mask.Close()

	// Two points: no palm polygon, and the only reachable finger segment
	// (thumb 1-2) degenerates but must not panic.
	pts := []image.Point{image.Pt(100, 100), image.Pt(120, 120)}
	drawHandMask(&mask, pts)

	// No polygon was filled away from the two points.
	if mask.GetUCharAt(400, 400) != 0 {
		t.Error("mask unexpectedly filled")
	}
}

func TestDrawHandMask_OutOfRangeIndicesSkipped(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	mask := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8U)
	defer mask.Close()

	// 6 points: palm gets {0,1,2,5}, finger chains mostly out of range.
	pts := squarePalmPoints(640, 480, 100)[:6]
	drawHandMask(&mask, pts)

	if gocv.CountNonZero(mask) == 0 {
		t.Error("expected partial palm from 4 in-range contour points")
	}
}

func TestCleanMask_RemovesSpeckle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	mask := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8U)
	defer mask.Close()

	// A large solid block survives cleanup; a lone pixel does not.
	gocv.Rectangle(&mask, image.Rect(200, 200, 300, 300), maskWhite, -1)
	mask.SetUCharAt(50, 50, 255)

	cleanMask(&mask)

	if mask.GetUCharAt(250, 250) == 0 {
		t.Error("solid block removed by cleanup")
	}
	if mask.GetUCharAt(50, 50) != 0 {
		t.Error("isolated speckle survived opening")
	}
}

func TestMaskUnion_Monotonic(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	one := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8U)
	defer one.Close()
	two := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8U)
	defer two.Close()

	gocv.Rectangle(&one, image.Rect(100, 100, 200, 200), maskWhite, -1)
	gocv.Rectangle(&two, image.Rect(300, 100, 400, 200), maskWhite, -1)

	union := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8U)
	defer union.Close()
	gocv.Max(union, one, &union)
	gocv.Max(union, two, &union)

	// Union covers each input: union - input has no negative values, so
	// subtract in the other direction must be all zero.
	diff := gocv.NewMat()
	defer diff.Close()

	gocv.Subtract(one, union, &diff)
	if gocv.CountNonZero(diff) != 0 {
		t.Error("union is not a superset of the first mask")
	}

	gocv.Subtract(two, union, &diff)
	if gocv.CountNonZero(diff) != 0 {
		t.Error("union is not a superset of the second mask")
	}
}

func TestToPixels_ClampsToFrameBounds(t *testing.T) {
	points := []detector.Point3D{
		{X: -0.5, Y: 0.5},
		{X: 0.5, Y: 1.5},
		{X: 1.0, Y: 1.0},
		{X: 0.25, Y: 0.75},
	}

	pts := toPixels(points, 640, 480)

	want := []image.Point{
		image.Pt(0, 240),
		image.Pt(320, 479),
		image.Pt(639, 479),
		image.Pt(160, 360),
	}

	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
}
