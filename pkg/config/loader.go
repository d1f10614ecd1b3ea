// Package config carrega e valida a configuração YAML do toolkit, com
// fallback para variáveis de ambiente via envloader.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/raywall/dynamo-result-toolkit/envloader"
)

// Load lê o arquivo YAML indicado, aplica as variáveis de ambiente sobre os
// campos ausentes e valida o resultado. Um caminho vazio carrega a
// configuração somente do ambiente.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := envloader.Load(cfg); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
