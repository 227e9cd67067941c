package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"os"
	"sync"

	"fractals/coordinator"
	"fractals/fractal"
	"fractals/render"
	"fractals/viewer"
	"fractals/worker"
)

var (
	isCoordinator, isWorker, isStill bool
	settingsFile                     string
	workerCount                      int

	// Still-render values.
	kind, gradientName, outFile   string
	maxIterations, width, height  int
	escapeRadius, cReal, cImag    float64
	zoom, offsetX, offsetY        float64
)

func main() {
	parseArguments()

	switch {
	case isCoordinator:
		startCoordinator()
	case isWorker:
		startWorkers()
	case isStill:
		renderStill()
	default:
		if err := viewer.Run(); err != nil {
			log.Fatalf("Viewer exited with error: %v", err)
		}
	}
}

func parseArguments() {
	flag.BoolVar(&isCoordinator, "coordinator", false, "Run the render farm coordinator")
	flag.BoolVar(&isWorker, "worker", false, "Run render farm workers")
	flag.BoolVar(&isStill, "still", false, "Render a single frame to a PNG and exit")
	flag.StringVar(&settingsFile, "settings", "settings.json", "Json settings file for coordinator/worker mode")
	flag.IntVar(&workerCount, "workerCount", 2, "Number of workers to create in worker mode")

	flag.StringVar(&kind, "fractal", "mandelbrot", "Fractal to render: mandelbrot, julia or newton")
	flag.StringVar(&gradientName, "gradient", "Magma", "Color gradient name")
	flag.StringVar(&outFile, "out", "fractal.png", "Output file for still mode")
	flag.IntVar(&maxIterations, "maxIterations", fractal.DefaultMaxIterations, "Iteration budget per pixel")
	flag.IntVar(&width, "width", 1920, "Width of the resulting image")
	flag.IntVar(&height, "height", 1080, "Height of the resulting image")
	flag.Float64Var(&escapeRadius, "escapeRadius", fractal.DefaultEscapeRadius, "Escape radius for mandelbrot/julia")
	flag.Float64Var(&cReal, "cReal", fractal.DefaultJuliaCReal, "Real part of the julia constant")
	flag.Float64Var(&cImag, "cImag", fractal.DefaultJuliaCImag, "Imaginary part of the julia constant")
	flag.Float64Var(&zoom, "zoom", 0.003, "Plane units per pixel; smaller is more magnified")
	flag.Float64Var(&offsetX, "offsetX", 0, "Viewport center, real axis")
	flag.Float64Var(&offsetY, "offsetY", 0, "Viewport center, imaginary axis")

	flag.Parse()
}

func startCoordinator() {
	c := coordinator.NewCoordinator(settingsFile)
	c.Run()
}

func startWorkers() {
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		w := worker.NewWorker(settingsFile)
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Run()
		}()
	}
	wg.Wait()
}

func renderStill() {
	spec := fractal.Spec{
		Kind:          kind,
		MaxIterations: maxIterations,
		EscapeRadius:  escapeRadius,
		CReal:         cReal,
		CImag:         cImag,
		Gradient:      gradientName,
	}
	f, err := spec.Build()
	if err != nil {
		log.Fatalf("Bad fractal parameters: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	renderer := render.New(0)
	defer renderer.Close()
	if err := renderer.Render(f, img.Pix, width, height, zoom, offsetX, offsetY); err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	out, err := os.Create(outFile)
	if err != nil {
		log.Fatalf("Unable to create %s: %v", outFile, err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		log.Fatalf("Unable to encode %s: %v", outFile, err)
	}
	log.Printf("Saved %s", outFile)
}
