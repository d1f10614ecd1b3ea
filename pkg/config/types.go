package config

import (
	"github.com/raywall/dynamo-result-toolkit/dyntable"
	"github.com/raywall/dynamo-result-toolkit/pkg/logger"
	"github.com/raywall/dynamo-result-toolkit/pkg/metrics"
)

// Config representa a estrutura raiz do arquivo YAML do toolkit.
type Config struct {
	Database dyntable.Config `yaml:"database"`
	Logging  logger.Config   `yaml:"logging"`
	Metrics  metrics.Config  `yaml:"metrics"`
	Export   ExportConf      `yaml:"export"`
}

// ExportConf configura o destino das exportações CSV.
type ExportConf struct {
	Enabled bool   `yaml:"enabled" env:"EXPORT_ENABLED"`
	Bucket  string `yaml:"bucket" env:"EXPORT_BUCKET" validate:"required_if=Enabled true"`
	Prefix  string `yaml:"prefix" env:"EXPORT_PREFIX"`
}
