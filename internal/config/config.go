// Package config resolves run settings from defaults, an optional config file and CLI flags.
//
// Precedence: flags > config file > defaults. Environment variables are not consulted.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/contactkeval/option-pricer/internal/bench"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Defaults of the reference prototype.
const (
	DefaultS0         = 100.0
	DefaultK          = 100.0
	DefaultR          = 0.05
	DefaultSigma      = 0.2
	DefaultT          = 1.0
	DefaultNPaths     = 100_000
	DefaultConfidence = 0.95
	DefaultVerbosity  = 1
)

// Config is the fully resolved set of run settings.
type Config struct {
	pricing.OptionParameters `mapstructure:",squash"`

	NPaths     int64   `mapstructure:"n_paths"`
	Seed       uint64  `mapstructure:"seed"` // 0 picks a random seed
	Workers    int     `mapstructure:"workers"`
	ChunkSize  int64   `mapstructure:"chunk_size"`
	Confidence float64 `mapstructure:"confidence"`
	Verbosity  int     `mapstructure:"verbosity"`
	JSON       bool    `mapstructure:"json"`

	PathCounts []int64 `mapstructure:"paths"`
	Repeats    int     `mapstructure:"repeats"`
}

// New returns a viper instance carrying the defaults.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("s0", DefaultS0)
	v.SetDefault("k", DefaultK)
	v.SetDefault("r", DefaultR)
	v.SetDefault("sigma", DefaultSigma)
	v.SetDefault("t", DefaultT)
	v.SetDefault("n_paths", DefaultNPaths)
	v.SetDefault("seed", 0)
	v.SetDefault("workers", 0)
	v.SetDefault("chunk_size", pricing.DefaultChunkSize)
	v.SetDefault("confidence", DefaultConfidence)
	v.SetDefault("verbosity", DefaultVerbosity)
	v.SetDefault("json", false)
	v.SetDefault("paths", bench.DefaultPathCounts())
	v.SetDefault("repeats", bench.DefaultRepeats)
	return v
}

// RegisterFlags adds the option and run flags shared by every command.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Float64("S0", DefaultS0, "Initial stock price")
	fs.Float64("K", DefaultK, "Strike price")
	fs.Float64("r", DefaultR, "Risk-free rate")
	fs.Float64("sigma", DefaultSigma, "Volatility")
	fs.Float64("T", DefaultT, "Time to maturity (in years)")
	fs.Uint64("seed", 0, "random seed, 0 picks one and logs it")
	fs.Int("workers", 0, "sampling goroutines, 0 = GOMAXPROCS")
	fs.Int64("chunk_size", pricing.DefaultChunkSize, "paths drawn from one random stream")
	fs.Int("verbosity", DefaultVerbosity, "0=errors,1=info,2=debug,3=trace")
	fs.Bool("json", false, "print results as JSON")
	fs.String("config", "", "optional config file (toml, yaml or json)")
}

// RegisterPriceFlags adds the flags of the price command.
func RegisterPriceFlags(fs *pflag.FlagSet) {
	fs.Int64("n_paths", DefaultNPaths, "Number of Monte Carlo paths")
	fs.Float64("confidence", DefaultConfidence, "confidence level of the reported interval")
}

// RegisterBenchFlags adds the flags of the bench command.
func RegisterBenchFlags(fs *pflag.FlagSet) {
	defaults := bench.DefaultPathCounts()
	paths := make([]int, len(defaults))
	for i, n := range defaults {
		paths[i] = int(n)
	}
	fs.IntSlice("paths", paths, "path counts to time")
	fs.Int("repeats", bench.DefaultRepeats, "timed runs averaged per path count")
}

// Load binds fs, reads the config file named by its --config flag if any,
// and decodes the result.
func Load(v *viper.Viper, fs *pflag.FlagSet) (Config, error) {
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Request returns the simulation request described by cfg.
func (cfg Config) Request() pricing.SimulationRequest {
	return pricing.SimulationRequest{OptionParameters: cfg.OptionParameters, NPaths: cfg.NPaths}
}

// Source returns the seeded source, or an entropy source when Seed is 0.
func (cfg Config) Source() *pricing.SeededSource {
	if cfg.Seed == 0 {
		return pricing.NewEntropySource()
	}
	return pricing.NewSeededSource(cfg.Seed)
}

// MonteCarlo builds the estimator for cfg.
func (cfg Config) MonteCarlo() *pricing.MonteCarlo {
	return pricing.NewMonteCarlo(pricing.WithWorkers(cfg.Workers), pricing.WithChunkSize(cfg.ChunkSize))
}

// Bench returns the timing harness settings.
func (cfg Config) Bench() bench.Config {
	return bench.Config{PathCounts: cfg.PathCounts, Repeats: cfg.Repeats}
}

// Validate checks the run settings that pricing does not own.
func (cfg Config) Validate() error {
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", pricing.ErrInvalidArgument, cfg.Workers)
	}
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive, got %d", pricing.ErrInvalidArgument, cfg.ChunkSize)
	}
	if !(cfg.Confidence > 0 && cfg.Confidence < 1) {
		return fmt.Errorf("%w: confidence must be in (0,1), got %v", pricing.ErrInvalidArgument, cfg.Confidence)
	}
	return nil
}
