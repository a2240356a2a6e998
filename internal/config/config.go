package config

import (
	"os"
	"strconv"

	"dbstats/domain/study"
	"dbstats/internal/errors"
)

// Config represents the complete pipeline configuration. Every stage takes
// its parameters from here instead of hard-coded constants, so one
// operator's filesystem layout never leaks into the analysis logic.
type Config struct {
	Paths    PathConfig
	Analysis AnalysisConfig
	Figures  FigureConfig
}

// PathConfig holds file system paths
type PathConfig struct {
	WeightFile  string // wide weight table (xlsx or csv)
	SucroseFile string // long sucrose-preference table
	OutputDir   string // tables and figures are written here
}

// AnalysisConfig holds the statistical design parameters
type AnalysisConfig struct {
	Alpha         float64 // family-wise error rate for Holm correction
	PDCount       int     // leading rows of the wide table that are PD subjects
	WeeksPerPhase int     // width of each experimental phase
	Comparisons   []study.Comparison
}

// FigureConfig holds figure rendering settings
type FigureConfig struct {
	DPI float64
}

// Load reads configuration from environment variables with defaults and
// validates it. CLI flags may override individual fields afterwards.
func Load() (*Config, error) {
	cfg := &Config{
		Paths: PathConfig{
			WeightFile:  getEnvString("DBSTATS_WEIGHT_FILE", "data/weights.xlsx"),
			SucroseFile: getEnvString("DBSTATS_SUCROSE_FILE", "data/sucrose.xlsx"),
			OutputDir:   getEnvString("DBSTATS_OUTPUT_DIR", "results"),
		},
		Analysis: AnalysisConfig{
			Alpha:         getEnvFloat("DBSTATS_ALPHA", 0.05),
			PDCount:       getEnvInt("DBSTATS_PD_COUNT", study.DefaultPDCount),
			WeeksPerPhase: getEnvInt("DBSTATS_WEEKS_PER_PHASE", study.WeeksPerPhase),
			Comparisons:   study.DefaultComparisons,
		},
		Figures: FigureConfig{
			DPI: getEnvFloat("DBSTATS_FIGURE_DPI", 600),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Analysis.Alpha <= 0 || c.Analysis.Alpha >= 1 {
		return errors.New("CONFIG_ALPHA", "alpha must be in (0, 1)")
	}
	if c.Analysis.PDCount < 2 {
		return errors.New("CONFIG_PD_COUNT", "need at least 2 PD subjects for paired tests")
	}
	if c.Analysis.WeeksPerPhase < 1 || 3*c.Analysis.WeeksPerPhase != study.StudyWeeks {
		return errors.New("CONFIG_PHASE_WEEKS", "three phases must cover the 12 study weeks")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("CONFIG_OUTPUT_DIR", "output directory must be set")
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
