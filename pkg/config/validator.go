package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *Config) error {
	// 1. Validação Estrutural (Tags do struct: required, oneof, etc)
	if err := cv.validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Field(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	// 2. Validação Semântica (Regras de negócio da configuração)
	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *Config) error {
	// As colunas de chave e valor da tabela global não podem colidir
	if cfg.Database.GlobalKeyColumn != "" &&
		cfg.Database.GlobalKeyColumn == cfg.Database.GlobalValueColumn {
		return fmt.Errorf("tabela global inválida: colunas de chave e valor iguais ('%s')",
			cfg.Database.GlobalKeyColumn)
	}

	// Prefixo de exportação sem bucket não tem efeito
	if cfg.Export.Prefix != "" && cfg.Export.Bucket == "" {
		return fmt.Errorf("exportação inválida: 'prefix' definido sem 'bucket'")
	}

	return nil
}
