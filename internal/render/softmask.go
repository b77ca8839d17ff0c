package render

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// Soft mask tuning.
const (
	// kernelSigmaMult sizes the Gaussian kernel radius from sigma.
	kernelSigmaMult = 2.75

	// softThreshold zeroes near-zero blur residue (~5% of 255) so the
	// falloff does not wash faint tint across the whole frame.
	softThreshold = 12

	// haloDilateRadius is how far the silhouette is expanded to cut the
	// halo ring, fixed regardless of resolution.
	haloDilateRadius = 8

	// haloSigmaMult widens the halo blur relative to the body blur.
	haloSigmaMult = 2.0
)

// gaussianKernelSize returns the odd kernel side for the given sigma.
func gaussianKernelSize(sigma float64) int {
	radius := int(math.Ceil(sigma * kernelSigmaMult))
	return 2*radius + 1
}

// buildBodyMask blurs the binary silhouette into a soft interior-falloff
// alpha mask. Intensities below the fixed threshold are zeroed.
func buildBodyMask(union gocv.Mat, sigma float64) gocv.Mat {
	ksize := gaussianKernelSize(sigma)

	body := gocv.NewMat()
	gocv.GaussianBlur(union, &body, image.Pt(ksize, ksize), sigma, sigma, gocv.BorderDefault)
	gocv.Threshold(body, &body, softThreshold, 255, gocv.ThresholdToZero)

	return body
}

// buildHaloMask isolates the ring just outside the silhouette (dilated minus
// original), then blurs it wide and thresholds. The result is zero inside
// the hand; the body layer owns the interior.
func buildHaloMask(union gocv.Mat, sigma float64) gocv.Mat {
	kernel := gocv.GetStructuringElement(gocv.MorphEllipse,
		image.Pt(2*haloDilateRadius+1, 2*haloDilateRadius+1))
	defer kernel.Close()

	dilated := gocv.NewMat()
	defer dilated.Close()
	gocv.Dilate(union, &dilated, kernel)

	ring := gocv.NewMat()
	defer ring.Close()
	gocv.Subtract(dilated, union, &ring)

	haloSigma := sigma * haloSigmaMult
	ksize := gaussianKernelSize(haloSigma)

	halo := gocv.NewMat()
	gocv.GaussianBlur(ring, &halo, image.Pt(ksize, ksize), haloSigma, haloSigma, gocv.BorderDefault)
	gocv.Threshold(halo, &halo, softThreshold, 255, gocv.ThresholdToZero)

	return halo
}
