package config

import (
	"testing"

	"dbstats/domain/study"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Analysis.Alpha != 0.05 {
		t.Errorf("alpha = %g, want 0.05", cfg.Analysis.Alpha)
	}
	if cfg.Analysis.PDCount != study.DefaultPDCount {
		t.Errorf("pd count = %d, want %d", cfg.Analysis.PDCount, study.DefaultPDCount)
	}
	if cfg.Figures.DPI != 600 {
		t.Errorf("dpi = %g, want 600", cfg.Figures.DPI)
	}
	if len(cfg.Analysis.Comparisons) != 3 {
		t.Errorf("got %d comparisons, want 3", len(cfg.Analysis.Comparisons))
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DBSTATS_ALPHA", "0.01")
	t.Setenv("DBSTATS_OUTPUT_DIR", "/tmp/out")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Analysis.Alpha != 0.01 {
		t.Errorf("alpha = %g, want 0.01", cfg.Analysis.Alpha)
	}
	if cfg.Paths.OutputDir != "/tmp/out" {
		t.Errorf("output dir = %q", cfg.Paths.OutputDir)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"alpha too large", func(c *Config) { c.Analysis.Alpha = 1.5 }},
		{"alpha zero", func(c *Config) { c.Analysis.Alpha = 0 }},
		{"one PD subject", func(c *Config) { c.Analysis.PDCount = 1 }},
		{"phases not covering study", func(c *Config) { c.Analysis.WeeksPerPhase = 5 }},
		{"empty output dir", func(c *Config) { c.Paths.OutputDir = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatal(err)
			}
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
