package pipeline

import (
	"fmt"
	"time"

	"github.com/banshee-data/tau.report/internal/config"
	"github.com/banshee-data/tau.report/internal/gesture/l2triangles"
	"github.com/banshee-data/tau.report/internal/gesture/l3euler"
	"github.com/banshee-data/tau.report/internal/gesture/l4tau"
)

// Config holds the engine tuning.
type Config struct {
	// SmoothingWindow is the capacity of every bounded tau series.
	SmoothingWindow int

	// MinUpdateInterval gates Euler extraction and tau updates: frames
	// arriving sooner than this after the last processed frame only update
	// the pose history and triangle set. Zero processes every frame.
	MinUpdateInterval time.Duration

	// PoseHistoryLength is the number of raw pose frames retained.
	PoseHistoryLength int

	// Workers > 1 fans tau updates out across that many goroutines.
	Workers int

	// DebugLines attaches visualisation geometry to every triangle result.
	DebugLines bool

	DegenerateTolerance float64
	AngleEpsilon        float64
	SteadyRatio         float64
	MaxMotionPath       int

	// Triples overrides the triangle table. Nil selects
	// l2triangles.DefaultTriples.
	Triples []l2triangles.Triple
}

// ConfigFromTuning maps a TuningConfig onto an engine Config.
func ConfigFromTuning(t *config.TuningConfig) Config {
	if t == nil {
		t = config.EmptyTuningConfig()
	}
	return Config{
		SmoothingWindow:     t.GetSmoothingWindow(),
		MinUpdateInterval:   t.GetMinUpdateInterval(),
		PoseHistoryLength:   t.GetPoseHistoryLength(),
		Workers:             t.GetWorkers(),
		DebugLines:          t.GetDebugLines(),
		DegenerateTolerance: t.GetDegenerateTolerance(),
		AngleEpsilon:        t.GetAngleEpsilon(),
		SteadyRatio:         t.GetSteadyRatio(),
		MaxMotionPath:       t.GetMaxMotionPath(),
	}
}

// DefaultConfig returns the stock engine tuning.
func DefaultConfig() Config {
	return ConfigFromTuning(nil)
}

// Validate checks the config for values the engine cannot run with.
func (c Config) Validate() error {
	if c.SmoothingWindow < config.MinSmoothingWindow {
		return fmt.Errorf("smoothing window must be at least %d, got %d", config.MinSmoothingWindow, c.SmoothingWindow)
	}
	if c.MinUpdateInterval < 0 {
		return fmt.Errorf("min update interval must be non-negative, got %s", c.MinUpdateInterval)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.PoseHistoryLength < 2 {
		return fmt.Errorf("pose history length must be at least 2, got %d", c.PoseHistoryLength)
	}
	if c.Triples != nil && len(c.Triples) == 0 {
		return fmt.Errorf("triangle table is empty")
	}
	return nil
}

func (c Config) tauParams() l4tau.Params {
	return l4tau.Params{
		Window:        c.SmoothingWindow,
		AngleEpsilon:  c.AngleEpsilon,
		SteadyRatio:   c.SteadyRatio,
		MaxMotionPath: c.MaxMotionPath,
	}
}

func (c Config) eulerOptions() l3euler.Options {
	return l3euler.Options{Debug: c.DebugLines, Tolerance: c.DegenerateTolerance}
}
