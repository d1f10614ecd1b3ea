// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package resultset

import "errors"

var (
	// ErrUsage é a raiz dos erros de chamada malformada (ex: Strip sem
	// colunas, Apply sem colunas de origem, replaceEmpty sem includeEmpty).
	ErrUsage = errors.New("resultset: invalid usage")

	// ErrNoResult é retornado quando um acesso por nome de atributo é feito
	// sobre um ResultSet vazio.
	ErrNoResult = errors.New("resultset: query returned no result")

	// ErrAmbiguousResult é retornado quando um acesso por nome de atributo é
	// feito sobre um ResultSet com mais de uma linha.
	ErrAmbiguousResult = errors.New("resultset: query returned more than one result")

	// ErrIncompatibleTypes é retornado quando um predicado é aplicado sobre
	// operandos cujo tipo não suporta a comparação pedida.
	ErrIncompatibleTypes = errors.New("resultset: incompatible operand types")

	// ErrFieldMissing é retornado quando o atributo pedido não existe na
	// única linha do resultado.
	ErrFieldMissing = errors.New("resultset: field not present in result")
)
