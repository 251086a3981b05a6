// Command tracer renders the demo scene to a PPM file on disk. Structured
// as df07's main.go: parse flags, build a scene, render, report timing, and
// save the output next to the executable.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/brightlane/pathtracer/pkg/camera"
	"github.com/brightlane/pathtracer/pkg/config"
	"github.com/brightlane/pathtracer/pkg/dispatch"
	"github.com/brightlane/pathtracer/pkg/obslog"
	"github.com/brightlane/pathtracer/pkg/pixelbuffer"
	"github.com/brightlane/pathtracer/pkg/ppm"
	"github.com/brightlane/pathtracer/pkg/rendererr"
	"github.com/brightlane/pathtracer/pkg/scene"
	"github.com/brightlane/pathtracer/pkg/tonemap"
	"github.com/brightlane/pathtracer/pkg/tracer"
)

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	args := argv[1:]
	log, err := obslog.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not start logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	cfg, err := config.ParseFlags(args)
	if err != nil {
		log.Error("invalid configuration", obslog.Err(err))
		return exitCodeFor(err)
	}

	log.Info("starting render",
		obslog.Int("width", cfg.Width), obslog.Int("height", cfg.Height),
		obslog.Int("samples", cfg.SampleCount), obslog.Int64("seed", cfg.Seed))

	startTime := time.Now()
	s := scene.NewDemoScene(cfg.Width, cfg.Height)
	fovKind := camera.Vertical
	if cfg.Horizontal {
		fovKind = camera.Horizontal
	}
	s.Camera = camera.New(cfg.Width, cfg.Height, cfg.FOVDegrees, fovKind, s.Camera.Transform)

	tr := tracer.New(s, tracer.Config{DepthLimit: cfg.DepthLimit})
	tr.Logger = log
	buf := pixelbuffer.New(cfg.Width, cfg.Height)

	job := dispatch.NewJob(tr, s.Camera, buf, cfg.SampleCount, cfg.Seed, cfg.StripeHeight)
	job.Progress = os.Stdout
	job.Logger = log

	d := dispatch.NewDispatcher(cfg.Workers)
	if err := d.Run(job); err != nil {
		log.Error("render failed", obslog.Err(err))
		return exitCodeFor(err)
	}
	fmt.Println()

	op := tonemap.ReinhardLuminance
	if cfg.ToneMapOperator == config.ToneMapReinhardPerChannel {
		op = tonemap.ReinhardPerChannel
	}
	if err := tonemap.Apply(buf, op); err != nil {
		log.Error("tone mapping failed", obslog.Err(err))
		return exitCodeFor(err)
	}

	outPath := outputPath(argv[0], s.Name)
	if err := writePPM(outPath, buf, cfg.OutputFormat); err != nil {
		log.Error("could not write output image", obslog.Err(err))
		return exitCodeFor(err)
	}

	log.Info("render complete",
		obslog.Duration("elapsed", time.Since(startTime)),
		obslog.String("output", outPath))
	fmt.Printf("Render completed in %v\n", time.Since(startTime))
	fmt.Printf("Saved to %s\n", outPath)
	return 0
}

func writePPM(path string, buf *pixelbuffer.PixelBuffer, formatName string) error {
	format, err := ppm.ParseFormat(formatName)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return rendererr.NewIOError("create output file", err)
	}
	defer f.Close()

	return ppm.Write(f, buf, format)
}

// outputPath resolves the output file next to the running executable, per
// spec §6: argv[0] locates the output directory, and the filename is
// "<scene-name>.ppm".
func outputPath(argv0, sceneName string) string {
	dir := filepath.Dir(argv0)
	return filepath.Join(dir, sceneName+".ppm")
}

// exitCodeFor maps an error's renderer-defined kind to a process exit code:
// 2 for configuration problems caught before a render starts, 3 for
// everything else (I/O or bounds failures surfaced during the render).
func exitCodeFor(err error) int {
	if _, ok := err.(*rendererr.ConfigError); ok {
		return 2
	}
	return 3
}
