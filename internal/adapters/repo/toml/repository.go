package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/abstats/internal/domain"
	"github.com/bnema/abstats/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName            = "config"
	configType            = "toml"
	ExperimentsPathKey    = "experiments.path"
	experimentsFileMode   = 0o600
	experimentsDirMode    = 0o700
	ConfigDir             = ".abstats"
	experimentsConfigFile = "experiments.toml"
	tempFilePattern       = ".experiments-*.toml.tmp"
)

type Repository struct {
	experimentsPath string
	mu              *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ExperimentRepository = (*Repository)(nil)

// NewRepository reads ~/.abstats/config.toml into cfg (a missing file is
// fine) and resolves the experiments file from experiments.path.
func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, ConfigDir, experimentsConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, ConfigDir))
	cfg.SetDefault(ExperimentsPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	experimentsPath := cfg.GetString(ExperimentsPathKey)
	if experimentsPath == "" {
		return nil, errors.New("experiments path is empty")
	}
	experimentsPath, err = normalizePath(experimentsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{experimentsPath: experimentsPath, mu: lockForPath(experimentsPath)}, nil
}

func (r *Repository) Path() string {
	return r.experimentsPath
}

func (r *Repository) Save(ctx context.Context, experiment domain.Experiment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(experiment)
	updated := false
	for i := range file.Experiments {
		if file.Experiments[i].ID == encoded.ID {
			file.Experiments[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Experiments = append(file.Experiments, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.ExperimentID) (domain.Experiment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Experiment{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Experiment{}, err
	}

	for _, entry := range file.Experiments {
		if entry.ID == string(id) {
			return fromSchema(entry)
		}
	}

	return domain.Experiment{}, fmt.Errorf("%w: %q", domain.ErrExperimentNotFound, id)
}

func (r *Repository) List(ctx context.Context) ([]domain.Experiment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	experiments := make([]domain.Experiment, 0, len(file.Experiments))
	for _, entry := range file.Experiments {
		experiment, err := fromSchema(entry)
		if err != nil {
			return nil, err
		}
		experiments = append(experiments, experiment)
	}

	return experiments, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.experimentsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read experiments file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode experiments file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve experiments path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.experimentsPath), experimentsDirMode); err != nil {
		return fmt.Errorf("create experiments directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode experiments file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.experimentsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp experiments file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp experiments file: %w", err)
	}

	if err := tempFile.Chmod(experimentsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp experiments file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp experiments file: %w", err)
	}

	if err := os.Rename(tempName, r.experimentsPath); err != nil {
		return fmt.Errorf("replace experiments file: %w", err)
	}

	cleanup = false

	return nil
}

func toSchema(experiment domain.Experiment) experimentSchema {
	var metrics []metricSchema
	for _, metric := range experiment.Metrics {
		branches := make([]branchSchema, 0, len(metric.Counts))
		for _, id := range metric.Counts.Branches() {
			counts := metric.Counts[id]
			branches = append(branches, branchSchema{
				ID:          string(id),
				Enrollments: counts.Enrollments,
				Conversions: counts.Conversions,
			})
		}
		metrics = append(metrics, metricSchema{Name: metric.Name, Branches: branches})
	}

	return experimentSchema{
		ID:      string(experiment.ID),
		Name:    experiment.Name,
		Control: string(experiment.Control),
		Metrics: metrics,
	}
}

func fromSchema(experiment experimentSchema) (domain.Experiment, error) {
	var metrics []domain.Metric
	for _, metric := range experiment.Metrics {
		counts := make(domain.SummaryTable, len(metric.Branches))
		for _, branch := range metric.Branches {
			id := domain.BranchID(branch.ID)
			if counts.Has(id) {
				return domain.Experiment{}, fmt.Errorf("experiment %q metric %q: duplicate branch %q", experiment.ID, metric.Name, branch.ID)
			}
			counts[id] = domain.BranchCounts{
				Enrollments: branch.Enrollments,
				Conversions: branch.Conversions,
			}
		}
		metrics = append(metrics, domain.Metric{Name: metric.Name, Counts: counts})
	}

	return domain.Experiment{
		ID:      domain.ExperimentID(experiment.ID),
		Name:    experiment.Name,
		Control: domain.BranchID(experiment.Control),
		Metrics: metrics,
	}, nil
}
