// Package logger configura o logger estruturado (zerolog) usado pelo toolkit.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config descreve o comportamento do logger. Enabled é ponteiro para que um
// "enabled: false" explícito no YAML não se confunda com o campo ausente
// (que assume o default true).
type Config struct {
	Enabled *bool  `yaml:"enabled" env:"LOG_ENABLED" envDefault:"true"`
	Level   string `yaml:"level" env:"LOG_LEVEL" envDefault:"info"`
	Format  string `yaml:"format" env:"LOG_FORMAT" validate:"omitempty,oneof=json console"`
}

// IsEnabled resolve o ponteiro: ausente conta como habilitado.
func (c Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Configure inicializa o logger global baseando-se na configuração.
func Configure(cfg Config) zerolog.Logger {
	// Define o nível de log (default: info)
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Define o output (JSON para produção, Console "bonito" para local se solicitado)
	var output io.Writer = os.Stdout
	if !cfg.IsEnabled() {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	// Cria o logger com contexto padrão
	logger := zerolog.New(output).
		With().
		Timestamp().
		Logger()

	return logger
}
