package capture

import (
	"errors"
	"testing"
)

func TestNewCamera(t *testing.T) {
	c := NewCamera(0)
	if c == nil {
		t.Fatal("NewCamera returned nil")
	}

	if c.IsOpen() {
		t.Error("camera should not be open before Open()")
	}
	if c.FPS() != DefaultFPS {
		t.Errorf("FPS() = %d, want %d", c.FPS(), DefaultFPS)
	}
}

func TestCamera_ReadFrameWhenClosed(t *testing.T) {
	c := NewCamera(0)

	_, err := c.ReadFrame()
	if !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() error = %v, want ErrCameraNotOpen", err)
	}
}

func TestCamera_SetFPS(t *testing.T) {
	tests := []struct {
		name string
		fps  int
		want int
	}{
		{"valid value", 30, 30},
		{"zero ignored", 0, DefaultFPS},
		{"negative ignored", -5, DefaultFPS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(0)
			c.SetFPS(tt.fps)
			if c.FPS() != tt.want {
				t.Errorf("FPS() = %d, want %d", c.FPS(), tt.want)
			}
		})
	}
}

func TestCamera_CloseWithoutOpen(t *testing.T) {
	c := NewCamera(0)
	if err := c.Close(); err != nil {
		t.Errorf("Close() on unopened camera error = %v", err)
	}
}
