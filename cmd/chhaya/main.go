package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/ayusman/chhaya/internal/app"
	"github.com/ayusman/chhaya/internal/render"
	"github.com/ayusman/chhaya/internal/server"
	"github.com/ayusman/chhaya/internal/store"
	"github.com/ayusman/chhaya/internal/tray"
)

const overlayEnabledKey = "overlay.enabled"

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device ID")
	headless := flag.Bool("headless", false, "run without the system tray")
	flag.Parse()

	fmt.Println("Chhaya - Ghost Hand Overlay")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".chhaya")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "chhaya.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	application := app.New(app.Config{
		Store:    st,
		CameraID: *cameraID,
		Settings: render.DefaultSettings(),
	})
	if err := application.LoadActiveProfile(); err != nil {
		log.Printf("Failed to load active profile: %v", err)
	}
	restoreOverlayState(st, application)

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir:  webDir,
		Store:      st,
		Frames:     application,
		Hands:      application,
		OnSettings: application.ApplySettings,
	})

	if err := application.Start(); err != nil {
		log.Printf("Pipeline not started (camera unavailable?): %v", err)
	}
	defer application.Stop()

	fmt.Printf("Starting server on %s\n", *addr)

	if *headless {
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	go func() {
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t := tray.New()
	t.OnToggle(func(enabled bool) {
		s := application.Renderer().Settings()
		s.EnableGhostStyle = enabled
		application.ApplySettings(s)
		if err := st.SetSetting(overlayEnabledKey, strconv.FormatBool(enabled)); err != nil {
			log.Printf("Failed to persist overlay state: %v", err)
		}
	})
	t.OnDashboard(func() {
		openBrowser("http://localhost" + *addr)
	})
	t.OnQuit(func() {
		application.Stop()
	})
	t.Run()
}

// restoreOverlayState re-applies the persisted overlay on/off toggle.
func restoreOverlayState(st *store.Store, application *app.App) {
	value, err := st.GetSetting(overlayEnabledKey, "true")
	if err != nil {
		log.Printf("Failed to read overlay state: %v", err)
		return
	}

	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return
	}

	s := application.Renderer().Settings()
	s.EnableGhostStyle = enabled
	application.ApplySettings(s)
}

// findWebDir searches for the dashboard directory in common locations.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".chhaya", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the URL in the default browser, best effort.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
