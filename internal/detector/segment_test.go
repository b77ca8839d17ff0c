package detector

import (
	"image"
	"testing"

	"gocv.io/x/gocv"
)

func TestSynthesizeHand(t *testing.T) {
	t.Run("left half yields left hand", func(t *testing.T) {
		hand := synthesizeHand(image.Rect(50, 100, 200, 350), 640, 480)

		if hand.Handedness != "Left" {
			t.Errorf("handedness = %q, want Left", hand.Handedness)
		}
		if len(hand.Points) != NumLandmarks {
			t.Fatalf("points = %d, want %d", len(hand.Points), NumLandmarks)
		}
	})

	t.Run("right half yields right hand", func(t *testing.T) {
		hand := synthesizeHand(image.Rect(400, 100, 600, 350), 640, 480)
		if hand.Handedness != "Right" {
			t.Errorf("handedness = %q, want Right", hand.Handedness)
		}
	})

	t.Run("points stay inside the blob box", func(t *testing.T) {
		rect := image.Rect(100, 50, 300, 400)
		hand := synthesizeHand(rect, 640, 480)

		for i, p := range hand.Points {
			x := p.X * 640
			y := p.Y * 480
			if x < float64(rect.Min.X)-1 || x > float64(rect.Max.X)+1 ||
				y < float64(rect.Min.Y)-1 || y > float64(rect.Max.Y)+1 {
				t.Errorf("point %d (%.1f, %.1f) outside blob %v", i, x, y, rect)
			}
		}

		// Wrist at the bottom, middle fingertip at the top.
		if hand.Points[Wrist].Y <= hand.Points[MiddleTip].Y {
			t.Error("wrist should sit below the middle fingertip")
		}
	})
}

func TestSegmentDetector_Detect(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	d := NewSegmentDetector(DefaultConfig())
	defer d.Close()

	// Black frame with one skin-toned rectangle on the right half.
	// BGR(80,120,200) sits at OpenCV HSV(10,153,200), inside the skin band.
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	skin := gocv.NewScalar(80, 120, 200, 0)
	region := frame.Region(image.Rect(400, 120, 560, 400))
	region.SetTo(skin)
	region.Close()

	hands, err := d.Detect(&frame)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if len(hands) != 1 {
		t.Fatalf("detected %d hands, want 1", len(hands))
	}

	hand := hands[0]
	if hand.Handedness != "Right" {
		t.Errorf("handedness = %q, want Right", hand.Handedness)
	}
	if len(hand.Points) != NumLandmarks {
		t.Errorf("points = %d, want %d", len(hand.Points), NumLandmarks)
	}

	for i, p := range hand.Points {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			t.Errorf("point %d = (%f, %f), want normalized coordinates", i, p.X, p.Y)
		}
	}
}

func TestSegmentDetector_EmptyScene(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	d := NewSegmentDetector(DefaultConfig())
	defer d.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	hands, err := d.Detect(&frame)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 0 {
		t.Errorf("detected %d hands in an empty scene, want 0", len(hands))
	}
}

func TestSegmentDetector_NilFrame(t *testing.T) {
	d := NewSegmentDetector(DefaultConfig())
	defer d.Close()

	hands, err := d.Detect(nil)
	if err != nil {
		t.Fatalf("Detect(nil) error = %v", err)
	}
	if hands != nil {
		t.Errorf("Detect(nil) = %v, want nil", hands)
	}
}

func TestSegmentDetector_MaxHands(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	config := DefaultConfig()
	config.MaxHands = 1
	d := NewSegmentDetector(config)
	defer d.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	skin := gocv.NewScalar(80, 120, 200, 0)
	for _, r := range []image.Rectangle{
		image.Rect(50, 120, 210, 400),
		image.Rect(430, 120, 590, 400),
	} {
		region := frame.Region(r)
		region.SetTo(skin)
		region.Close()
	}

	hands, err := d.Detect(&frame)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 1 {
		t.Errorf("detected %d hands with MaxHands=1, want 1", len(hands))
	}
}
