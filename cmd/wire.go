package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	csvsource "github.com/bnema/abstats/internal/adapters/dataset/csv"
	"github.com/bnema/abstats/internal/adapters/posterior/beta"
	reportadapter "github.com/bnema/abstats/internal/adapters/render/report"
	tomlrepo "github.com/bnema/abstats/internal/adapters/repo/toml"
	"github.com/bnema/abstats/internal/adapters/uplift"
	"github.com/bnema/abstats/internal/application"
	"github.com/bnema/abstats/internal/ports"
	"github.com/spf13/viper"
)

const (
	envPrefix = "ABSTATS"

	numSamplesKey  = "analysis.num_samples"
	parallelismKey = "analysis.parallelism"
	seedKey        = "analysis.seed"
)

type app struct {
	experiments    ports.ExperimentRepository
	comparator     ports.Comparator
	logLevel       *slog.LevelVar
	logOutput      *switchWriter
	logger         *slog.Logger
	analysis       analysisConfig
	branchColumn   string
	reportRenderer func(application.Report, reportadapter.RenderOptions) (string, error)
	randomSeed     func() uint64
}

type analysisConfig struct {
	NumSamples  int
	Parallelism int
	Seed        uint64
}

func wireApp() (*app, error) {
	cfg := viper.New()
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault(numSamplesKey, beta.DefaultNumSamples)
	cfg.SetDefault(parallelismKey, beta.DefaultParallelism)
	cfg.SetDefault(seedKey, 0)

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire experiment repository: %w", err)
	}

	seed := cfg.GetInt64(seedKey)
	if seed < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", seedKey, seed)
	}

	level := &slog.LevelVar{}
	output := &switchWriter{w: os.Stderr}

	return &app{
		experiments: repo,
		comparator:  uplift.NewComparator(),
		logLevel:    level,
		logOutput:   output,
		logger:      slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})),
		analysis: analysisConfig{
			NumSamples:  cfg.GetInt(numSamplesKey),
			Parallelism: cfg.GetInt(parallelismKey),
			Seed:        uint64(seed),
		},
		branchColumn:   envOrDefault("ABSTATS_BRANCH_COLUMN", csvsource.DefaultBranchColumn),
		reportRenderer: reportadapter.Render,
		randomSeed:     rand.Uint64,
	}, nil
}

func (a *app) configureLogging(w io.Writer, verbose bool) {
	a.logOutput.w = w
	if verbose {
		a.logLevel.Set(slog.LevelDebug)
		return
	}
	a.logLevel.Set(slog.LevelInfo)
}

// service builds an analysis service whose model draws from the given seed.
// A zero seed falls back to analysis.seed, then to a random one.
func (a *app) service(seed uint64) *application.Service {
	if seed == 0 {
		seed = a.analysis.Seed
	}
	if seed == 0 {
		seed = a.randomSeed()
	}
	a.logger.Debug("posterior model ready", "seed", seed, "parallelism", a.analysis.Parallelism)

	model := beta.NewSeededModel(seed, beta.WithParallelism(a.analysis.Parallelism))
	return application.NewService(a.experiments, model, a.comparator, a.logger)
}

type switchWriter struct {
	w io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
