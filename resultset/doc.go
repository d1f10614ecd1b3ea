// Package resultset fornece o pipeline de filtragem de resultados do
// dynamo-result-toolkit: um snapshot imutável de linhas retornadas por uma
// Query ou Scan do DynamoDB, com operações encadeáveis de derivação
// (filtro, projeção de colunas, join, ordenação, agregação e exportação CSV).
//
// Visão Geral:
//
// Cada linha (Row) é um mapa dinâmico de atributos, sem schema fixo por
// tabela. Toda operação de derivação copia profundamente as linhas de
// entrada e retorna um novo ResultSet — o original nunca é alterado.
//
// O encadeamento de filtros produz um FilteredResultSet, que guarda a pilha
// de filtros aplicada e o ResultSet de origem. Refiltrar um conjunto já
// filtrado reaplica apenas o filtro mais novo sobre as linhas já
// materializadas (caminho incremental), em vez de reexecutar a pilha inteira
// a partir da origem.
//
// Erros de uso e de tipo são adiados no encadeamento (como no expression
// builder do AWS SDK) e expostos via Err(); acessos terminais retornam o
// erro diretamente.
//
// Exemplo:
//
//	rs, err := table.Scan(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ativos := rs.
//		Filter("status", "active", resultset.Equals).
//		Filter("age", float64(18), resultset.GreaterThanEqual)
//	if err := ativos.Err(); err != nil {
//		log.Fatal(err)
//	}
//
//	err = ativos.SelectColumns("id", "name", "age").ToCSV("ativos.csv")
package resultset
