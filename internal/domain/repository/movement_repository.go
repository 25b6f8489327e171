package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcisistemas/estoque-api/internal/domain/entity"
)

// MovementFilter filtros opcionais compostos com AND.
// Location filtra via join com o catálogo (o produto carrega o local).
type MovementFilter struct {
	ProductID *int64
	Kind      *string
	Location  *string
	From      *time.Time
	To        *time.Time
	Ascending bool // false = mais recentes primeiro (data DESC, id DESC)
	Limit     int  // 0 = sem limite
}

// ProductTotals somas de entradas e saídas agrupadas por produto.
type ProductTotals struct {
	ProductID int64
	Entradas  decimal.Decimal
	Saidas    decimal.Decimal
}

// MovementRepository define a porta de persistência do ledger (append-only).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	// SumByProduct devolve as somas de entradas e saídas de um produto.
	// Ledger vazio devolve (0, 0), nunca erro.
	SumByProduct(ctx context.Context, productID int64) (entradas, saidas decimal.Decimal, err error)
	// TotalsByProduct agrupa as somas por produto em uma única consulta.
	TotalsByProduct(ctx context.Context) ([]ProductTotals, error)
}
