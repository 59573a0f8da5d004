// Command radarcompose is a thin CLI wrapper around the composite
// generation library: it loads configuration, initializes logging, and runs
// a single generation pass over synthetic sources for smoke-testing a
// configuration before wiring in a real ODIM reader and projection.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	"radarcompose/pkg/composite"
	"radarcompose/pkg/config"
	"radarcompose/pkg/logging"
	"radarcompose/pkg/radar"
	"radarcompose/pkg/raster"
)

var (
	initConfigFlag = flag.Bool("init-config", false, "generate default config file and exit")
	configPath     = flag.String("config", "configs/radarcompose.yaml", "path to the configuration file")
)

func main() {
	flag.Parse()

	if *initConfigFlag {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("config file generated: %s\n", *configPath)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "radarcompose: %v\n", err)
		if last := logging.GlobalLogCapture.GetLastLine(); last != "" {
			fmt.Fprintf(os.Stderr, "last log line: %s", last)
		}
		os.Exit(1)
	}
}

func run(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanup, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanup()

	slog.Info("radarcompose starting", "product", cfg.Generator.Product, "selection", cfg.Generator.SelectionMethod)

	out, err := generateDemo(cfg)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	validPixels := 0
	for _, raw := range out.Parameter(demoQuantity).Data {
		if raw != float64(raster.NodataRaw) {
			validPixels++
		}
	}
	slog.Info("generation complete", "valid_pixels", validPixels, "total_pixels", out.XSizePx*out.YSizePx)
	return nil
}

const demoQuantity = "DBZH"

// generateDemo builds a single synthetic PolarVolume and runs one generation
// over a small equirectangular area, driven by cfg's generator defaults
// (product and selection method fall back to PCAPPI and NEAREST when cfg
// names none they recognize). It exists to smoke-test a configuration end to end
// without requiring a real ODIM file or projection library.
func generateDemo(cfg *config.Config) (*raster.Raster, error) {
	g := composite.NewCompositeGenerator()

	switch cfg.Generator.Product {
	case "PPI":
		if err := g.SetProduct(composite.PPI); err != nil {
			return nil, err
		}
	case "CAPPI":
		if err := g.SetProduct(composite.CAPPI); err != nil {
			return nil, err
		}
	case "PMAX":
		if err := g.SetProduct(composite.PMAX); err != nil {
			return nil, err
		}
	default:
		if err := g.SetProduct(composite.PCAPPI); err != nil {
			return nil, err
		}
	}

	if cfg.Generator.SelectionMethod == "HEIGHT" {
		if err := g.SetSelectionMethod(composite.Height); err != nil {
			return nil, err
		}
	}

	if err := g.SetHeight(float64(cfg.Generator.Height)); err != nil {
		return nil, err
	}
	if err := g.SetElevationAngle(cfg.Generator.ElevationAngle * math.Pi / 180.0); err != nil {
		return nil, err
	}
	if err := g.SetRange(float64(cfg.Generator.Range)); err != nil {
		return nil, err
	}
	if err := g.AddParameter(demoQuantity, cfg.Generator.OutputGain, cfg.Generator.OutputOffset); err != nil {
		return nil, err
	}

	if err := g.Add(syntheticVolume(59.35, 18.06, 100)); err != nil {
		return nil, err
	}

	area := &raster.SimpleArea{
		XSizePx: 64, YSizePx: 64,
		XScale: 0.02 * math.Pi / 180, YScale: 0.02 * math.Pi / 180,
		LLX: 17.4 * math.Pi / 180, LLY: 58.9 * math.Pi / 180,
	}
	return g.Nearest(area, cfg.Generator.QualityFieldTask, 4)
}

func syntheticVolume(latDeg, lonDeg, value float64) *radar.PolarVolume {
	v := radar.NewPolarVolume()
	v.LatRad = latDeg * math.Pi / 180
	v.LonRad = lonDeg * math.Pi / 180

	for _, elevDeg := range []float64{0.5, 1.0, 1.5, 2.4, 4.0} {
		s := radar.NewScan()
		s.Elevation = elevDeg * math.Pi / 180
		s.RangeStep = 1000
		s.RangeStart = 0
		s.ScanGain = 0.5
		s.ScanOffset = -20
		s.Nodata = 255
		s.Undetect = 0
		s.Data = make([][]float64, 360)
		for ray := range s.Data {
			s.Data[ray] = make([]float64, 250)
			for bin := range s.Data[ray] {
				s.Data[ray][bin] = value
			}
		}
		v.Scans = append(v.Scans, s)
	}
	return v
}
