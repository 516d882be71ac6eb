package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// MinSmoothingWindow is the smallest series window the tau buffers accept.
// Smoothing needs more than four tau-dot samples before it produces output.
const MinSmoothingWindow = 5

// TuningConfig represents the root configuration for the gesture engine.
// Fields are pointers so a partial file leaves the rest at their defaults.
type TuningConfig struct {
	// Tau buffer params
	SmoothingWindow *int     `json:"smoothing_window,omitempty"`
	AngleEpsilon    *float64 `json:"angle_epsilon,omitempty"`
	SteadyRatio     *float64 `json:"steady_ratio,omitempty"`
	MaxMotionPath   *int     `json:"max_motion_path,omitempty"`

	// Frame orchestration params
	MinUpdateInterval *string `json:"min_update_interval,omitempty"` // duration string like "100ms"
	PoseHistoryLength *int    `json:"pose_history_length,omitempty"`
	Workers           *int    `json:"workers,omitempty"`

	// Geometry params
	DegenerateTolerance *float64 `json:"degenerate_tolerance,omitempty"`
	DebugLines          *bool    `json:"debug_lines,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field populated
// from the Get* fallbacks. It matches config/tuning.defaults.json.
func DefaultTuningConfig() *TuningConfig {
	empty := EmptyTuningConfig()
	return &TuningConfig{
		SmoothingWindow:     ptrInt(empty.GetSmoothingWindow()),
		AngleEpsilon:        ptrFloat64(empty.GetAngleEpsilon()),
		SteadyRatio:         ptrFloat64(empty.GetSteadyRatio()),
		MaxMotionPath:       ptrInt(empty.GetMaxMotionPath()),
		MinUpdateInterval:   ptrString(empty.GetMinUpdateInterval().String()),
		PoseHistoryLength:   ptrInt(empty.GetPoseHistoryLength()),
		Workers:             ptrInt(empty.GetWorkers()),
		DegenerateTolerance: ptrFloat64(empty.GetDegenerateTolerance()),
		DebugLines:          ptrBool(empty.GetDebugLines()),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,          // from cmd/tau
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/gesture/pipeline/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.SmoothingWindow != nil && *c.SmoothingWindow < MinSmoothingWindow {
		return fmt.Errorf("smoothing_window must be at least %d, got %d", MinSmoothingWindow, *c.SmoothingWindow)
	}

	if c.MinUpdateInterval != nil && *c.MinUpdateInterval != "" {
		d, err := time.ParseDuration(*c.MinUpdateInterval)
		if err != nil {
			return fmt.Errorf("invalid min_update_interval '%s': %w", *c.MinUpdateInterval, err)
		}
		if d < 0 {
			return fmt.Errorf("min_update_interval must be non-negative, got %s", d)
		}
	}

	if c.PoseHistoryLength != nil && *c.PoseHistoryLength < 2 {
		return fmt.Errorf("pose_history_length must be at least 2, got %d", *c.PoseHistoryLength)
	}

	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", *c.Workers)
	}

	if c.DegenerateTolerance != nil && (*c.DegenerateTolerance <= 0 || *c.DegenerateTolerance >= 1) {
		return fmt.Errorf("degenerate_tolerance must be in (0, 1), got %g", *c.DegenerateTolerance)
	}

	if c.AngleEpsilon != nil && *c.AngleEpsilon < 0 {
		return fmt.Errorf("angle_epsilon must be non-negative, got %g", *c.AngleEpsilon)
	}

	if c.SteadyRatio != nil && (*c.SteadyRatio < 0 || *c.SteadyRatio > 1) {
		return fmt.Errorf("steady_ratio must be between 0 and 1, got %f", *c.SteadyRatio)
	}

	if c.MaxMotionPath != nil && *c.MaxMotionPath < 0 {
		return fmt.Errorf("max_motion_path must be non-negative, got %d", *c.MaxMotionPath)
	}

	return nil
}

// GetSmoothingWindow returns the smoothing_window value or the default.
func (c *TuningConfig) GetSmoothingWindow() int {
	if c.SmoothingWindow == nil {
		return 20
	}
	return *c.SmoothingWindow
}

// GetMinUpdateInterval parses and returns the MinUpdateInterval as a time.Duration.
func (c *TuningConfig) GetMinUpdateInterval() time.Duration {
	if c.MinUpdateInterval == nil || *c.MinUpdateInterval == "" {
		return 100 * time.Millisecond // default
	}
	d, err := time.ParseDuration(*c.MinUpdateInterval)
	if err != nil {
		return 100 * time.Millisecond // default on parse error
	}
	return d
}

// GetPoseHistoryLength returns the pose_history_length value or the default.
func (c *TuningConfig) GetPoseHistoryLength() int {
	if c.PoseHistoryLength == nil {
		return 10
	}
	return *c.PoseHistoryLength
}

// GetWorkers returns the workers value or the default.
func (c *TuningConfig) GetWorkers() int {
	if c.Workers == nil {
		return 1
	}
	return *c.Workers
}

// GetDebugLines returns the debug_lines value or the default.
func (c *TuningConfig) GetDebugLines() bool {
	if c.DebugLines == nil {
		return false
	}
	return *c.DebugLines
}

// GetDegenerateTolerance returns the degenerate_tolerance value or the default.
func (c *TuningConfig) GetDegenerateTolerance() float64 {
	if c.DegenerateTolerance == nil {
		return 1e-10
	}
	return *c.DegenerateTolerance
}

// GetAngleEpsilon returns the angle_epsilon value or the default.
func (c *TuningConfig) GetAngleEpsilon() float64 {
	if c.AngleEpsilon == nil {
		return 1e-12
	}
	return *c.AngleEpsilon
}

// GetSteadyRatio returns the steady_ratio value or the default.
func (c *TuningConfig) GetSteadyRatio() float64 {
	if c.SteadyRatio == nil {
		return 0.15
	}
	return *c.SteadyRatio
}

// GetMaxMotionPath returns the max_motion_path value or the default.
// Zero means the motion path is unbounded.
func (c *TuningConfig) GetMaxMotionPath() int {
	if c.MaxMotionPath == nil {
		return 0
	}
	return *c.MaxMotionPath
}
