// Package viewer is the interactive desktop front end. It owns the
// viewport and the current fractal value, re-rendering the frame through
// the engine only when a setting or the viewport changes; every other tick
// just re-presents the cached frame so the UI stays responsive.
package viewer

import (
	"fmt"
	"image/color"

	"fractals/fractal"
	"fractals/gradient"
	"fractals/misc"
	"fractals/render"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	initZoom = 0.003

	// Wheel zoom factors, multiplicative per notch.
	zoomInFactor  = 0.5
	zoomOutFactor = 1.5

	// Pan distance in plane units at initZoom; scaled with the zoom level
	// so a key press moves the view by the same fraction of the screen at
	// any magnification.
	panStep = 0.5

	// Drags smaller than this many pixels on either axis are clicks, not
	// zoom boxes.
	minDragPixels = 10
)

// Viewer implements ebiten.Game.
type Viewer struct {
	fractal     fractal.Fractal
	gradientIdx int
	logger      bslogger.Logger
	renderer    *render.Renderer

	zoom    float64
	offsetX float64
	offsetY float64

	width  int
	height int
	pix    []byte
	frame  *ebiten.Image
	dirty  bool

	dragging   bool
	dragStartX int
	dragStartY int
	dragEndX   int
	dragEndY   int
}

// New creates a viewer showing the Mandelbrot set at the default viewport.
func New() *Viewer {
	return &Viewer{
		fractal:  fractal.NewMandelbrot(gradient.Default),
		logger:   bslogger.NewLogger("Viewer", bslogger.Normal, nil),
		renderer: render.New(0),
		zoom:     initZoom,
		dirty:    true,
	}
}

// Run opens the window and blocks until it is closed.
func Run() error {
	ebiten.SetWindowTitle("Fractals")
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(New())
}

func (v *Viewer) Update() error {
	v.handleZoom()
	v.handlePan()
	v.handleSettings()
	v.handleDrag()
	return nil
}

func (v *Viewer) handleZoom() {
	_, wheelY := ebiten.Wheel()
	if wheelY > 0 {
		v.zoom *= zoomInFactor
		v.dirty = true
	} else if wheelY < 0 {
		v.zoom *= zoomOutFactor
		v.dirty = true
	}
}

func (v *Viewer) handlePan() {
	step := panStep * (v.zoom / initZoom)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		v.offsetY -= step
	case inpututil.IsKeyJustPressed(ebiten.KeyS) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		v.offsetY += step
	case inpututil.IsKeyJustPressed(ebiten.KeyA) || inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.offsetX -= step
	case inpututil.IsKeyJustPressed(ebiten.KeyD) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.offsetX += step
	default:
		return
	}
	v.dirty = true
}

func (v *Viewer) handleSettings() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
		v.setFractal(fractal.NewMandelbrot(v.gradientName()))
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
		v.setFractal(fractal.NewJulia(v.gradientName()))
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit3):
		v.setFractal(fractal.NewNewton(v.gradientName()))
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		v.gradientIdx = (v.gradientIdx + 1) % len(gradient.Names())
		v.applyGradient(v.gradientName())
		v.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		v.scaleIterations(2)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		v.scaleIterations(0.5)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.setFractal(v.freshDefault())
	}
}

func (v *Viewer) handleDrag() {
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		x, y := ebiten.CursorPosition()
		v.dragging = true
		v.dragStartX, v.dragStartY = x, y
		v.dragEndX, v.dragEndY = x, y

	case v.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		x, y := ebiten.CursorPosition()
		v.dragEndX = clamp(x, 0, v.width-1)
		v.dragEndY = clamp(y, 0, v.height-1)

	case v.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		v.dragging = false
		v.zoomToBox()
	}
}

// zoomToBox recenters the viewport on the dragged box and multiplies the
// zoom by the box-to-screen area ratio, clamped so a huge box cannot zoom
// out and a tiny one cannot jump to numeric noise.
func (v *Viewer) zoomToBox() {
	boxWidth := abs(v.dragEndX - v.dragStartX)
	boxHeight := abs(v.dragEndY - v.dragStartY)
	if boxWidth < minDragPixels || boxHeight < minDragPixels {
		return
	}

	left := min(v.dragStartX, v.dragEndX)
	top := min(v.dragStartY, v.dragEndY)
	v.offsetX += (float64(left) + float64(boxWidth)/2 - float64(v.width)/2) * v.zoom
	v.offsetY += (float64(top) + float64(boxHeight)/2 - float64(v.height)/2) * v.zoom

	boxArea := float64(boxWidth * boxHeight)
	screenArea := float64(v.width * v.height)
	ratio := boxArea / screenArea * 10
	if ratio < 0.00001 {
		ratio = 0.00001
	} else if ratio > 0.8 {
		ratio = 0.8
	}
	v.zoom *= ratio

	v.dirty = true
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()

	if v.frame == nil || width != v.width || height != v.height {
		v.width, v.height = width, height
		v.pix = make([]byte, width*height*4)
		if v.frame != nil {
			v.frame.Deallocate()
		}
		v.frame = ebiten.NewImage(width, height)
		v.dirty = true
	}

	// Rendering is skipped while dragging; the cached frame stays up so
	// only the box outline changes.
	if v.dirty && !v.dragging {
		err := v.renderer.Render(v.fractal, v.pix, width, height, v.zoom, v.offsetX, v.offsetY)
		misc.CheckError(err, v.logger, misc.Warning)
		if err == nil {
			v.frame.WritePixels(v.pix)
			v.dirty = false
		}
	}

	screen.DrawImage(v.frame, nil)

	if v.dragging {
		boxWidth := abs(v.dragEndX - v.dragStartX)
		boxHeight := abs(v.dragEndY - v.dragStartY)
		if boxWidth >= minDragPixels && boxHeight >= minDragPixels {
			left := min(v.dragStartX, v.dragEndX)
			top := min(v.dragStartY, v.dragEndY)
			vector.StrokeRect(screen, float32(left), float32(top), float32(boxWidth), float32(boxHeight), 3, color.White, false)
		}
	}

	ebitenutil.DebugPrint(screen, v.status())
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (v *Viewer) status() string {
	return fmt.Sprintf("%s | %s | zoom %.3g | offset (%.4g, %.4g)\n[1]mandelbrot [2]julia [3]newton [G]radient [=/-]iterations [R]eset",
		v.kindName(), v.gradientName(), v.zoom, v.offsetX, v.offsetY)
}

func (v *Viewer) gradientName() string {
	return gradient.Names()[v.gradientIdx]
}

func (v *Viewer) kindName() string {
	switch v.fractal.(type) {
	case fractal.Mandelbrot:
		return "Mandelbrot"
	case fractal.Julia:
		return "Julia"
	case fractal.Newton:
		return "Newton"
	}
	return "unknown"
}

// setFractal installs a freshly constructed variant and resets the
// viewport; switching fractal types always starts from the default view.
func (v *Viewer) setFractal(f fractal.Fractal) {
	v.fractal = f
	v.zoom = initZoom
	v.offsetX, v.offsetY = 0, 0
	v.dirty = true
}

// freshDefault rebuilds the current variant kind with default parameters,
// keeping the selected gradient.
func (v *Viewer) freshDefault() fractal.Fractal {
	switch v.fractal.(type) {
	case fractal.Julia:
		return fractal.NewJulia(v.gradientName())
	case fractal.Newton:
		return fractal.NewNewton(v.gradientName())
	default:
		return fractal.NewMandelbrot(v.gradientName())
	}
}

// applyGradient swaps the gradient on the current variant in place without
// touching the other parameters or the viewport.
func (v *Viewer) applyGradient(name string) {
	switch f := v.fractal.(type) {
	case fractal.Mandelbrot:
		f.Gradient = name
		v.fractal = f
	case fractal.Julia:
		f.Gradient = name
		v.fractal = f
	case fractal.Newton:
		f.Gradient = name
		v.fractal = f
	}
}

// scaleIterations multiplies the iteration budget, clamped to at least 1.
func (v *Viewer) scaleIterations(factor float64) {
	scale := func(n int) int {
		n = int(float64(n) * factor)
		if n < 1 {
			n = 1
		}
		return n
	}
	switch f := v.fractal.(type) {
	case fractal.Mandelbrot:
		f.MaxIterations = scale(f.MaxIterations)
		v.fractal = f
	case fractal.Julia:
		f.MaxIterations = scale(f.MaxIterations)
		v.fractal = f
	case fractal.Newton:
		f.MaxIterations = scale(f.MaxIterations)
		v.fractal = f
	}
	v.dirty = true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
