// resultset/log.go
package resultset

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// warnLog emite os avisos não fatais de integridade de dados do pacote
// (JOIN com chave não única no lado direito, Apply pulando linhas sem as
// colunas de origem). Por padrão usa o logger global do zerolog.
var warnLog = log.Logger

// SetLogger troca o logger dos avisos de integridade de dados do pacote.
// Não é seguro chamar concorrentemente com derivações em andamento; configure
// na inicialização.
func SetLogger(logger zerolog.Logger) {
	warnLog = logger
}
