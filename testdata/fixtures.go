// Package testdata provides synthetic video frames for tests. Render tests
// need deterministic pixel values, so frames are generated rather than
// captured.
package testdata

import (
	"gocv.io/x/gocv"
)

// SolidFrame returns a BGR frame filled with a single color.
// The caller is responsible for closing the returned Mat.
func SolidFrame(width, height int, b, g, r uint8) gocv.Mat {
	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
	mat.SetTo(gocv.NewScalar(float64(b), float64(g), float64(r), 0))
	return mat
}

// GradientFrame returns a BGR frame with a horizontal intensity ramp, useful
// when a test needs every pixel to differ from its neighbors.
// The caller is responsible for closing the returned Mat.
func GradientFrame(width, height int) gocv.Mat {
	data := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(x * 255 / width)
			pos := (y*width + x) * 3
			data[pos+0] = v
			data[pos+1] = v / 2
			data[pos+2] = 255 - v
		}
	}

	mat, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, data)
	if err != nil {
		// Out of memory is the only way this fails on valid dimensions.
		panic(err)
	}
	return mat
}
