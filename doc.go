// Package dynamo_result_toolkit fornece uma camada de conveniência sobre o
// DynamoDB, focada em filtrar, derivar e exportar resultados de consultas no
// lado da aplicação.
//
// Visão Geral:
// Este módulo é uma caixa de ferramentas para trabalhar com dados lidos do
// DynamoDB, fornecendo soluções modulares para:
// 1. Acesso (dyntable): Handles de tabela e de tabela chave-valor sobre o cliente AWS.
// 2. Derivação (resultset): Conjuntos de linhas imutáveis com filtros encadeáveis,
// junções, ordenação, projeções e agregações.
// 3. Exportação (export): Publicação de conjuntos em CSV, local ou no S3.
// 4. Configuração (envloader, pkg/config): YAML com fallback para variáveis de ambiente.
//
// O design é focado na composabilidade e testabilidade, utilizando interfaces
// para garantir fácil mocking e derivações que nunca mutam o conjunto original.
//
// Sub-Pacotes Principais:
//
// 1. dyntable:
//   - Database como fábrica de handles (Table, KeyValueTable, Globals).
//   - Query por chave de hash ou índice secundário global, Scan paginado,
//     Put, Update parcial, Increment/Decrement e Delete.
//
// 2. resultset:
//   - ResultSet imutável com acesso a linhas, colunas e campos únicos.
//   - FilteredResultSet com pilha de filtros incremental e refiltragem.
//   - Exportação CSV com controle de ordem de colunas.
//
// 3. export:
//   - S3Exporter para gravar conjuntos renderizados em CSV em um bucket.
//
// Exemplo de Início Rápido:
//
//	package main
//
//	import (
//		"context"
//		"log"
//
//		toolkit "github.com/raywall/dynamo-result-toolkit/dyntable"
//		"github.com/raywall/dynamo-result-toolkit/resultset"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		client, err := toolkit.NewDefaultClient(ctx)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		db, err := toolkit.New(client, toolkit.Config{})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		users, err := db.Table("users").Scan(ctx)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// Filtragem encadeada no lado da aplicação
//		active := users.
//			Filter("status", "active", resultset.Equals).
//			Filter("age", 18, resultset.GreaterThanEqual)
//		if err := active.Err(); err != nil {
//			log.Fatal(err)
//		}
//
//		if err := active.ToCSV("active-users.csv"); err != nil {
//			log.Fatal(err)
//		}
//	}
package dynamo_result_toolkit
