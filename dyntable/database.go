// dyntable/database.go
package dyntable

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/raywall/dynamo-result-toolkit/envloader"
	"github.com/raywall/dynamo-result-toolkit/pkg/metrics"
)

// Config descreve a tabela global de chave-valor do Database.
type Config struct {
	GlobalTableName   string `yaml:"global_table_name" env:"GLOBAL_DATA_TABLE_NAME" envDefault:"global-data-table" validate:"required"`
	GlobalKeyColumn   string `yaml:"global_key_column" env:"GLOBAL_DATA_KEY_COLUMN" envDefault:"data-id" validate:"required"`
	GlobalValueColumn string `yaml:"global_value_column" env:"GLOBAL_DATA_VALUE_COLUMN" envDefault:"value" validate:"required"`
}

// Database envolve o cliente DynamoDB e a configuração global, e fabrica os
// handles de tabela.
type Database struct {
	client  DynamoDBClient
	cfg     Config
	metrics metrics.Provider
	logger  zerolog.Logger
}

// DatabaseOption configura o Database na construção.
type DatabaseOption func(*Database)

// WithMetrics liga o envio de métricas de operação.
func WithMetrics(provider metrics.Provider) DatabaseOption {
	return func(db *Database) {
		db.metrics = provider
	}
}

// WithLogger liga o logger estruturado da camada de acesso.
func WithLogger(logger zerolog.Logger) DatabaseOption {
	return func(db *Database) {
		db.logger = logger
	}
}

// New cria um Database reutilizável. Uma configuração vazia é preenchida
// pelas variáveis de ambiente e pelos defaults das tags.
func New(client DynamoDBClient, cfg Config, opts ...DatabaseOption) (*Database, error) {
	if cfg.GlobalTableName == "" {
		if err := envloader.Load(&cfg); err != nil {
			return nil, fmt.Errorf("dyntable: load config from env: %w", err)
		}
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("dyntable: invalid config: %w", err)
	}

	db := &Database{
		client:  client,
		cfg:     cfg,
		metrics: &metrics.NoopProvider{},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db, nil
}

// NewDefaultClient cria um cliente DynamoDB com a cadeia padrão de
// credenciais e região da AWS.
func NewDefaultClient(ctx context.Context) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("dyntable: load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}

// Table retorna o handle da tabela indicada.
func (db *Database) Table(name string) *Table {
	return &Table{name: name, db: db}
}

// KeyValueTable retorna o handle chave-valor da tabela indicada. Colunas
// vazias caem nos nomes configurados para a tabela global.
func (db *Database) KeyValueTable(name, keyColumn, valueColumn string) *KeyValueTable {
	if keyColumn == "" {
		keyColumn = db.cfg.GlobalKeyColumn
	}
	if valueColumn == "" {
		valueColumn = db.cfg.GlobalValueColumn
	}
	return &KeyValueTable{
		Table:       &Table{name: name, db: db},
		keyColumn:   keyColumn,
		valueColumn: valueColumn,
	}
}

// Globals retorna o handle da tabela global de chave-valor configurada.
func (db *Database) Globals() *KeyValueTable {
	return db.KeyValueTable(db.cfg.GlobalTableName, db.cfg.GlobalKeyColumn, db.cfg.GlobalValueColumn)
}

// count registra uma operação no provedor de métricas.
func (db *Database) count(op, table string) {
	_ = db.metrics.Count("dyntable.operations", 1, []string{"op:" + op, "table:" + table})
}
