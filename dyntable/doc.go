// Package dyntable é a camada fina de acesso ao DynamoDB do
// dynamo-result-toolkit: handles de tabela que emitem consultas pontuais,
// scans paginados, escritas, updates parciais e deletes contra uma tabela do
// serviço, devolvendo snapshots resultset.ResultSet prontos para o pipeline
// de filtragem.
//
// Visão Geral:
//
// Um Database envolve o cliente do AWS SDK e a configuração global. Dele
// saem Table (tabela arbitrária) e KeyValueTable (tabela de uma coluna de
// chave e uma de valor). Handles são stateless além da identidade: não há
// cache de schema nem teardown.
//
// Retries, backoff e timeouts ficam a cargo do SDK e do contexto do
// chamador; esta camada não reexecuta nada.
//
// Exemplo:
//
//	client, err := dyntable.NewDefaultClient(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	db, err := dyntable.New(client, dyntable.Config{})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	users := db.Table("users")
//	rs, err := users.Get(ctx, "u123")
package dyntable
