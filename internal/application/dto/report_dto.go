package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRow uma linha da visão de estoque atual (saldo derivado do ledger).
type StockRow struct {
	ProductID   int64            `json:"product_id"`
	SKU         string           `json:"sku"`
	Description string           `json:"description"`
	Unit        string           `json:"unit"`
	Type        string           `json:"type,omitempty"`
	Location    string           `json:"location,omitempty"`
	Balance     decimal.Decimal  `json:"balance"`
	SafetyStock *decimal.Decimal `json:"safety_stock,omitempty"`
	Critical    bool             `json:"critical"`
}

// ConsolidatedRow saldo agregado por (descrição, unidade) entre locais.
type ConsolidatedRow struct {
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Balance     decimal.Decimal `json:"balance"`
}

// BalancePoint um ponto da série de saldo acumulado de um produto.
type BalancePoint struct {
	Date     time.Time       `json:"date"`
	Kind     string          `json:"kind"`
	Quantity decimal.Decimal `json:"quantity"` // com sinal: entrada +, saída -
	Balance  decimal.Decimal `json:"balance"`  // acumulado até este movimento
}

// ActiveProduct ranking de movimentação: soma de entradas + saídas.
type ActiveProduct struct {
	ProductID   int64           `json:"product_id"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	TotalMoved  decimal.Decimal `json:"total_moved"`
}

// RecentActivity últimas entradas e saídas, mais recentes primeiro.
type RecentActivity struct {
	Entradas []MovementRow `json:"entradas"`
	Saidas   []MovementRow `json:"saidas"`
}

// ReportBundle agrega tudo que vai para a pasta de exportação (.xlsx),
// uma aba nomeada por relatório.
type ReportBundle struct {
	Stock      []StockRow
	Entradas   []MovementRow
	Saidas     []MovementRow
	MostActive []ActiveProduct
	Critical   []StockRow
}
