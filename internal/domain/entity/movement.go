package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimento do ledger.
const (
	MovementEntrada = "entrada" // aumenta o saldo
	MovementSaida   = "saida"   // diminui o saldo, condicionada à suficiência
)

// Movement é um registro imutável do ledger. Não existe update nem delete;
// correções são feitas com um movimento compensatório.
// Quantity é sempre estritamente positiva; o sinal vem do tipo.
type Movement struct {
	ID           int64
	ProductID    int64
	Kind         string          // entrada | saida
	Quantity     decimal.Decimal // > 0
	Counterparty string          // fornecedor (entrada) ou destino (saída)
	Note         string
	Date         time.Time // data de ocorrência, default hoje
	CreatedAt    time.Time
}

// Signed devolve a quantidade com sinal: +q para entrada, -q para saída.
func (m *Movement) Signed() decimal.Decimal {
	if m.Kind == MovementSaida {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
