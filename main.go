package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/flow"
	"github.com/pthm-cable/meadow/noise"
	"github.com/pthm-cable/meadow/particles"
	"github.com/pthm-cable/meadow/sample"
	"github.com/pthm-cable/meadow/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV exports and config snapshot")
	seed := flag.Int64("seed", 0, "RNG/noise seed (0 = use config, which defaults to time-based)")
	frames := flag.Int("frames", 0, "Number of frames to sample (0 = use config)")
	advectSteps := flag.Int("advect-steps", 0, "Particle advection steps to run after sampling")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	runSeed := cfg.Seed
	if *seed != 0 {
		runSeed = *seed
	}
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}
	frameCount := cfg.Sampling.Frames
	if *frames > 0 {
		frameCount = *frames
	}

	obstacles, err := cfg.BuildObstacles()
	if err != nil {
		slog.Error("invalid obstacle config", "error", err)
		os.Exit(1)
	}

	// Build the field and clusterer from the same obstacle list.
	field := flow.NewField(cfg.FieldConfig(), noise.New(runSeed))
	clusterer, err := flow.NewPointClusterer(cfg.Canvas.Width, cfg.Canvas.Height, cfg.ClusterConfig(), runSeed)
	if err != nil {
		slog.Error("invalid clusterer config", "error", err)
		os.Exit(1)
	}
	for _, o := range obstacles {
		field.AddObstacle(o)
		clusterer.AddObstacle(o)
	}

	slog.Info("starting run",
		"seed", runSeed,
		"canvas_width", cfg.Canvas.Width,
		"canvas_height", cfg.Canvas.Height,
		"obstacles", len(obstacles),
		"frames", frameCount,
	)

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to initialize output", "error", err)
		os.Exit(1)
	}
	defer om.Close()

	if om != nil {
		if err := cfg.WriteYAML(om.Dir() + "/config.yaml"); err != nil {
			slog.Error("failed to snapshot config", "error", err)
			os.Exit(1)
		}
	}

	// Sample the flow field per frame.
	var angles []float64
	for frame := 0; frame < frameCount; frame++ {
		t := float64(frame) * cfg.Sampling.TimeStep
		samples := sample.FlowGrid(field, cfg.Canvas.Width, cfg.Canvas.Height, cfg.Sampling.GridStep, frame, t)
		for _, s := range samples {
			angles = append(angles, s.Angle)
		}
		if err := om.WriteFlowSamples(samples); err != nil {
			slog.Error("failed to write flow samples", "error", err, "frame", frame)
			os.Exit(1)
		}
	}

	// Generate the point set.
	var points []flow.Point
	if cfg.Sampling.GridPoints {
		points = clusterer.GeneratePointsGrid(cfg.Sampling.PointCount)
	} else {
		points = clusterer.GeneratePoints(cfg.Sampling.PointCount)
	}
	if len(points) < cfg.Sampling.PointCount {
		slog.Warn("short point count",
			"requested", cfg.Sampling.PointCount,
			"generated", len(points),
		)
	}
	if err := om.WritePoints(sample.Points(clusterer, points)); err != nil {
		slog.Error("failed to write points", "error", err)
		os.Exit(1)
	}

	// Optional particle advection pass over the generated points.
	if *advectSteps > 0 {
		params := particles.DefaultParams()
		params.TimeStep = cfg.Sampling.TimeStep
		system := particles.NewSystem(field, cfg.Canvas.Width, cfg.Canvas.Height, params)
		system.Seed(points)
		for i := 0; i < *advectSteps; i++ {
			system.Step()
		}
		slog.Info("advection complete",
			"particles", system.Count(),
			"steps", *advectSteps,
			"field_time", system.Time(),
		)
	}

	// Aggregate statistics for the run.
	densities := sample.DensityGrid(clusterer, cfg.Sampling.GridStep)
	speeds := make([]float64, 0, len(points))
	for _, p := range points {
		vx, vy := field.Flow(p.X, p.Y, 0)
		speeds = append(speeds, math.Hypot(vx, vy))
	}

	summaries := []telemetry.Summary{
		telemetry.Summarize("flow_angle", angles),
		telemetry.Summarize("density", densities),
		telemetry.Summarize("point_speed", speeds),
	}
	if err := om.WriteSummaries(summaries); err != nil {
		slog.Error("failed to write summaries", "error", err)
		os.Exit(1)
	}
	for _, s := range summaries {
		slog.Info("summary", "stats", s)
	}

	slog.Info("run complete",
		"flow_samples", len(angles),
		"points", len(points),
		"output_dir", om.Dir(),
	)
}
