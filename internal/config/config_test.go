package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/contactkeval/option-pricer/internal/bench"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

func flagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	RegisterPriceFlags(fs)
	RegisterBenchFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), flagSet(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := pricing.OptionParameters{S0: 100, K: 100, R: 0.05, Sigma: 0.2, T: 1}
	if cfg.OptionParameters != want {
		t.Fatalf("option mismatch: got %+v want %+v", cfg.OptionParameters, want)
	}
	if cfg.NPaths != DefaultNPaths || cfg.Confidence != DefaultConfidence || cfg.Seed != 0 {
		t.Fatalf("run defaults mismatch: %+v", cfg)
	}
	if cfg.Repeats != bench.DefaultRepeats || len(cfg.PathCounts) != 5 || cfg.PathCounts[4] != 100_000_000 {
		t.Fatalf("bench defaults mismatch: %+v", cfg.Bench())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	body := "K = 110.0\nsigma = 0.3\nn_paths = 5000\nseed = 7\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(New(), flagSet(t, "--config", path, "--sigma", "0.25", "--paths", "10,20", "--repeats", "2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.K != 110 {
		t.Fatalf("file value K not applied: %v", cfg.K)
	}
	if cfg.Sigma != 0.25 {
		t.Fatalf("flag should win over file: sigma=%v", cfg.Sigma)
	}
	if cfg.NPaths != 5000 || cfg.Seed != 7 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.S0 != DefaultS0 {
		t.Fatalf("default S0 lost: %v", cfg.S0)
	}
	b := cfg.Bench()
	if len(b.PathCounts) != 2 || b.PathCounts[0] != 10 || b.PathCounts[1] != 20 || b.Repeats != 2 {
		t.Fatalf("bench flags not applied: %+v", b)
	}

	req := cfg.Request()
	if req.NPaths != 5000 || req.K != 110 {
		t.Fatalf("request mismatch: %+v", req)
	}
	if cfg.Source().Seed() != 7 {
		t.Fatalf("seeded source mismatch")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(New(), flagSet(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(New(), flagSet(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]func(*Config){
		"negative workers": func(c *Config) { c.Workers = -1 },
		"zero chunk":       func(c *Config) { c.ChunkSize = 0 },
		"confidence one":   func(c *Config) { c.Confidence = 1 },
		"confidence zero":  func(c *Config) { c.Confidence = 0 },
	}
	for name, mutate := range cases {
		c := cfg
		mutate(&c)
		if err := c.Validate(); !errors.Is(err, pricing.ErrInvalidArgument) {
			t.Fatalf("%s: expected ErrInvalidArgument, got %v", name, err)
		}
	}
}
