package envconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	EngineCSV      = "csv"
	EnginePostgres = "postgres"
)

type storageEnv struct {
	Engine      string `env:"STORAGE_ENGINE" envDefault:"csv"`
	CSVPath     string `env:"STORAGE_CSV_PATH" envDefault:"./data/vehicles.csv"`
	SeedCSVPath string `env:"STORAGE_SEED_CSV_PATH"`
}

type storage struct {
	raw storageEnv
}

func NewStorageConfig() (*storage, error) {
	var raw storageEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	switch raw.Engine {
	case EngineCSV, EnginePostgres:
	default:
		return nil, fmt.Errorf("unknown storage engine %q", raw.Engine)
	}

	return &storage{raw: raw}, nil
}

func (cfg *storage) Engine() string      { return cfg.raw.Engine }
func (cfg *storage) CSVPath() string     { return cfg.raw.CSVPath }
func (cfg *storage) SeedCSVPath() string { return cfg.raw.SeedCSVPath }
