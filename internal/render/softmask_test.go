package render

import (
	"image"
	"testing"

	"gocv.io/x/gocv"
)

// solidSquareMask returns a 640x480 CV8U mask with a filled square of the
// given side centered in it.
func solidSquareMask(side int) gocv.Mat {
	mask := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8U)
	half := side / 2
	gocv.Rectangle(&mask, image.Rect(320-half, 240-half, 320+half, 240+half), maskWhite, -1)
	return mask
}

func TestGaussianKernelSize(t *testing.T) {
	tests := []struct {
		sigma float64
		want  int
	}{
		{1.0, 7},  // radius 3
		{4.0, 23}, // radius 11
		{5.5, 33}, // radius 16
	}

	for _, tt := range tests {
		if got := gaussianKernelSize(tt.sigma); got != tt.want {
			t.Errorf("gaussianKernelSize(%f) = %d, want %d", tt.sigma, got, tt.want)
		}
		if gaussianKernelSize(tt.sigma)%2 != 1 {
			t.Errorf("kernel size for sigma %f is even", tt.sigma)
		}
	}
}

func TestBuildBodyMask_SoftFalloff(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	union := solidSquareMask(100)
	defer union.Close()

	body := buildBodyMask(union, 4.0)
	defer body.Close()

	// Deep interior keeps full intensity.
	if v := body.GetUCharAt(240, 320); v < 250 {
		t.Errorf("interior intensity = %d, want ~255", v)
	}

	// Just outside the square edge (x=370) the blur spills over softly:
	// nonzero but below full intensity.
	edge := body.GetUCharAt(240, 375)
	if edge == 0 {
		t.Error("no falloff just outside the silhouette")
	}
	if edge > 200 {
		t.Errorf("falloff intensity = %d, want well below interior", edge)
	}

	// Far away everything is cut to zero by the threshold.
	if v := body.GetUCharAt(240, 450); v != 0 {
		t.Errorf("intensity far outside = %d, want 0 (thresholded)", v)
	}
}

func TestBuildBodyMask_EdgeExtent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	sigma := 4.0
	union := solidSquareMask(100)
	defer union.Close()

	body := buildBodyMask(union, sigma)
	defer body.Close()

	// The thresholded blur tail reaches roughly 1.7*sigma beyond the square
	// edge (x=370), and never past the kernel radius.
	reach := 0
	for x := 370; x < 640; x++ {
		if body.GetUCharAt(240, x) != 0 {
			reach = x - 370
		}
	}

	if reach < int(sigma) || reach > int(sigma*2.5) {
		t.Errorf("soft edge reach = %dpx, want about %d-%dpx", reach, int(sigma), int(sigma*2.5))
	}
}

func TestBuildHaloMask_RingOutsideOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	union := solidSquareMask(100)
	defer union.Close()

	halo := buildHaloMask(union, 4.0)
	defer halo.Close()

	// The halo is a ring outside the silhouette: zero at the center of a
	// 100px square (50px from any edge, beyond dilation plus blur reach).
	if v := halo.GetUCharAt(240, 320); v != 0 {
		t.Errorf("halo intensity at hand center = %d, want 0", v)
	}

	// A few pixels outside the boundary the ring is present.
	if v := halo.GetUCharAt(240, 378); v == 0 {
		t.Error("no halo just outside the silhouette")
	}

	// The ring dies out within dilation radius + blur reach (~8+24px).
	if v := halo.GetUCharAt(240, 430); v != 0 {
		t.Errorf("halo intensity 60px out = %d, want 0", v)
	}
}

func TestBuildHaloMask_EmptyUnion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	union := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8U)
	defer union.Close()

	halo := buildHaloMask(union, 4.0)
	defer halo.Close()

	if gocv.CountNonZero(halo) != 0 {
		t.Error("empty silhouette produced a nonzero halo")
	}
}
