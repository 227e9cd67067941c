package coordinator

import (
	"fmt"
	"os"
	"time"

	"fractals/fractal"
	"fractals/misc"

	"github.com/BrugadaSyndrome/bslogger"
)

type settings struct {
	logger bslogger.Logger

	Fractal       fractal.Spec
	Width         int
	Height        int
	FrameCount    int
	ZoomStart     float64
	ZoomFactor    float64
	OffsetX       float64
	OffsetY       float64
	RunName       string
	SavePath      string
	ServerAddress string
}

func newSettings(settingsFile string) settings {
	s := settings{
		logger: bslogger.NewLogger("CoordinatorSettings", bslogger.Normal, nil),
	}
	misc.CheckError(misc.LoadJSON(settingsFile, &s), s.logger, misc.Fatal)
	misc.CheckError(s.Verify(), s.logger, misc.Fatal)
	return s
}

func (s *settings) String() string {
	return fmt.Sprintf("\nCoordinator settings\nFractal: %s\nFrame: %dx%d\nFrames: %d\nZoom: %g (x%g per frame)\nAddress: %s\n",
		s.Fractal.Kind, s.Width, s.Height, s.FrameCount, s.ZoomStart, s.ZoomFactor, s.ServerAddress)
}

// Verify fills defaults for anything the settings file left out and
// rejects fractal parameters the engine would refuse.
func (s *settings) Verify() error {
	if s.Fractal.Kind == "" {
		s.Fractal.Kind = "mandelbrot"
	}
	if s.Fractal.MaxIterations < 1 {
		s.Fractal.MaxIterations = fractal.DefaultMaxIterations
	}
	if s.Fractal.EscapeRadius <= 0 {
		s.Fractal.EscapeRadius = fractal.DefaultEscapeRadius
	}
	// Unknown gradient names are fine; the ramp lookup substitutes the
	// default. Unknown kinds are not.
	if _, err := s.Fractal.Build(); err != nil {
		return err
	}
	if s.Width <= 0 {
		s.Width = 1920
	}
	if s.Height <= 0 {
		s.Height = 1080
	}
	if s.FrameCount < 1 {
		s.FrameCount = 1
	}
	if s.ZoomStart <= 0 {
		s.ZoomStart = 0.003
	}
	if s.ZoomFactor <= 0 {
		s.ZoomFactor = 0.8
	}
	if s.RunName == "" {
		s.RunName = "run_" + time.Now().Format("2006_01_02-03_04_05")
	}
	if s.SavePath == "" {
		s.SavePath, _ = os.Getwd()
	}
	if s.ServerAddress == "" {
		address, err := misc.GetLocalAddress()
		if err != nil {
			return err
		}
		s.ServerAddress = fmt.Sprintf("%s:%s", address, "51000")
	}
	return nil
}
