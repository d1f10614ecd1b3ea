package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/raywall/dynamo-result-toolkit/dyntable"
	"github.com/raywall/dynamo-result-toolkit/export"
	"github.com/raywall/dynamo-result-toolkit/pkg/config"
	"github.com/raywall/dynamo-result-toolkit/pkg/logger"
	"github.com/raywall/dynamo-result-toolkit/pkg/metrics"
	"github.com/raywall/dynamo-result-toolkit/resultset"
)

// filterFlags acumula ocorrências repetidas da flag -filter.
type filterFlags []string

func (f *filterFlags) String() string { return strings.Join(*f, ",") }

func (f *filterFlags) Set(value string) error {
	*f = append(*f, value)
	return nil
}

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validateFile := validateCmd.String("config", "", "Caminho do arquivo YAML de configuração")

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportFile := exportCmd.String("config", "", "Caminho do arquivo YAML de configuração")
	exportTable := exportCmd.String("table", "", "Nome da tabela a exportar")
	exportKey := exportCmd.String("key", "", "Chave do objeto CSV no bucket (vazio grava local)")
	var exportFilters filterFlags
	exportCmd.Var(&exportFilters, "filter", "Filtro coluna<op>valor (ex: status=active, age>=18); pode repetir")

	if len(os.Args) < 2 {
		fmt.Println("Comandos esperados: validate, export")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		runValidate(*validateFile)
	case "export":
		exportCmd.Parse(os.Args[2:])
		if *exportTable == "" {
			fmt.Println("Erro: flag -table é obrigatória")
			os.Exit(1)
		}
		runExport(*exportFile, *exportTable, *exportKey, exportFilters)
	default:
		fmt.Println("Comando desconhecido")
		os.Exit(1)
	}
}

func runValidate(path string) {
	fmt.Printf("🔍 Analisando configuração: %s ...\n", path)

	if _, err := config.Load(path); err != nil {
		fmt.Printf("❌ Configuração inválida:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuração Válida!")
}

func runExport(configPath, table, key string, rawFilters []string) {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Configuração inválida: %v\n", err)
		os.Exit(1)
	}

	log := logger.Configure(cfg.Logging)
	resultset.SetLogger(log)

	provider, err := metrics.Setup(cfg.Metrics)
	if err != nil {
		fmt.Printf("❌ Erro configurando métricas: %v\n", err)
		os.Exit(1)
	}

	filters, err := parseFilters(rawFilters)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	client, err := dyntable.NewDefaultClient(ctx)
	if err != nil {
		fmt.Printf("❌ Erro AWS config: %v\n", err)
		os.Exit(1)
	}

	db, err := dyntable.New(client, cfg.Database,
		dyntable.WithLogger(log), dyntable.WithMetrics(provider))
	if err != nil {
		fmt.Printf("❌ Erro config: %v\n", err)
		os.Exit(1)
	}

	rows, err := db.Table(table).Scan(ctx)
	if err != nil {
		fmt.Printf("❌ Erro no scan: %v\n", err)
		os.Exit(1)
	}

	result := rows
	if len(filters) > 0 {
		filtered := rows.FilterAll(filters...)
		if err := filtered.Err(); err != nil {
			fmt.Printf("❌ Erro no filtro: %v\n", err)
			os.Exit(1)
		}
		result = filtered.ResultSet
	}

	if key == "" || cfg.Export.Bucket == "" {
		out := table + ".csv"
		if key != "" {
			out = key
		}
		if err := result.ToCSV(out); err != nil {
			fmt.Printf("❌ Erro gravando CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ %d linhas exportadas para %s\n", result.Length(), out)
		return
	}

	exporter, err := export.NewDefaultS3Exporter(ctx, cfg.Export.Bucket, export.WithLogger(log))
	if err != nil {
		fmt.Printf("❌ Erro criando exporter: %v\n", err)
		os.Exit(1)
	}
	if err := exporter.Export(ctx, result, cfg.Export.Prefix+key); err != nil {
		fmt.Printf("❌ Erro exportando para o S3: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ %d linhas exportadas para s3://%s/%s%s\n",
		result.Length(), cfg.Export.Bucket, cfg.Export.Prefix, key)
}

// operadores em ordem de correspondência: os de dois caracteres primeiro
var operators = []struct {
	token string
	ftype resultset.FilterType
}{
	{"!=", resultset.NotEqual},
	{">=", resultset.GreaterThanEqual},
	{"<=", resultset.LessThanEqual},
	{"~", resultset.Contains},
	{">", resultset.GreaterThan},
	{"<", resultset.LessThan},
	{"=", resultset.Equals},
}

// parseFilters converte expressões "coluna<op>valor" em filtros. Valores
// numéricos são comparados como número, o resto como texto.
func parseFilters(raw []string) ([]resultset.Filter, error) {
	filters := make([]resultset.Filter, 0, len(raw))
	for _, expr := range raw {
		parsed := false
		for _, op := range operators {
			column, value, found := strings.Cut(expr, op.token)
			if !found || column == "" || value == "" {
				continue
			}
			filters = append(filters, resultset.NewFilter(column, parseValue(value), op.ftype))
			parsed = true
			break
		}
		if !parsed {
			return nil, fmt.Errorf("filtro inválido: %q (esperado coluna<op>valor)", expr)
		}
	}
	return filters, nil
}

func parseValue(raw string) any {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
