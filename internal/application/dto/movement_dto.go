package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntradaRequest body para POST /api/movements/entrada.
type EntradaRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Supplier  string          `json:"supplier,omitempty"`
	Note      string          `json:"note,omitempty"`
	Date      string          `json:"date,omitempty"` // AAAA-MM-DD, default hoje
}

// SaidaRequest body para POST /api/movements/saida.
type SaidaRequest struct {
	ProductID   int64           `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Destination string          `json:"destination,omitempty"`
	Note        string          `json:"note,omitempty"`
	Date        string          `json:"date,omitempty"`
}

// MovementCreated resposta de um lançamento aceito. NewBalance só vem
// preenchido em saídas, onde a transação já calculou o saldo resultante.
type MovementCreated struct {
	MovementID int64            `json:"movement_id"`
	NewBalance *decimal.Decimal `json:"new_balance,omitempty"`
}

// MovementRow linha de movimento anotada com o produto, para listagens.
type MovementRow struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	SKU          string          `json:"sku"`
	Description  string          `json:"description"`
	Kind         string          `json:"kind"`
	Quantity     decimal.Decimal `json:"quantity"`
	Counterparty string          `json:"counterparty,omitempty"`
	Note         string          `json:"note,omitempty"`
	Date         time.Time       `json:"date"`
}
