package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version     int                `toml:"version"`
	Experiments []experimentSchema `toml:"experiments"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported experiments schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type experimentSchema struct {
	ID      string         `toml:"id"`
	Name    string         `toml:"name"`
	Control string         `toml:"control,omitempty"`
	Metrics []metricSchema `toml:"metrics,omitempty"`
}

type metricSchema struct {
	Name     string         `toml:"name"`
	Branches []branchSchema `toml:"branches"`
}

type branchSchema struct {
	ID          string `toml:"id"`
	Enrollments int64  `toml:"enrollments"`
	Conversions int64  `toml:"conversions"`
}
