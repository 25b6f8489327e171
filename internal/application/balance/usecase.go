// Package balance deriva saldos do ledger. Não existe campo de estoque
// armazenado em lugar nenhum: todo número aqui é soma de entradas menos
// soma de saídas, recalculada a cada leitura.
package balance

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mcisistemas/estoque-api/internal/application/dto"
	"github.com/mcisistemas/estoque-api/internal/domain"
	"github.com/mcisistemas/estoque-api/internal/domain/entity"
	"github.com/mcisistemas/estoque-api/internal/domain/repository"
)

// Engine motor de saldos.
type Engine struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
}

// NewEngine constrói o motor.
func NewEngine(products repository.ProductRepository, movements repository.MovementRepository) *Engine {
	return &Engine{products: products, movements: movements}
}

// CurrentBalance saldo atual de um produto. Ledger vazio devolve zero.
func (e *Engine) CurrentBalance(ctx context.Context, productID int64) (decimal.Decimal, error) {
	product, err := e.products.GetByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrUnknownProduct
	}
	entradas, saidas, err := e.movements.SumByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return entradas.Sub(saidas), nil
}

// StockOverview todos os produtos com saldo e marcação de crítico,
// ordenados por descrição.
func (e *Engine) StockOverview(ctx context.Context) ([]dto.StockRow, error) {
	products, err := e.products.List(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := e.balancesByProduct(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.StockRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, stockRow(p, balances[p.ID]))
	}
	sortStockRows(rows)
	return rows, nil
}

// StockByLocation saldos por local, apenas saldos estritamente positivos
// (estoque esgotado não aparece nesta visão). location vazio = todos.
func (e *Engine) StockByLocation(ctx context.Context, location string) ([]dto.StockRow, error) {
	products, err := e.products.List(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := e.balancesByProduct(ctx)
	if err != nil {
		return nil, err
	}
	var rows []dto.StockRow
	for _, p := range products {
		if location != "" && p.Location != location {
			continue
		}
		bal := balances[p.ID]
		if !bal.IsPositive() {
			continue
		}
		rows = append(rows, stockRow(p, bal))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Location != rows[j].Location {
			return rows[i].Location < rows[j].Location
		}
		return rows[i].Description < rows[j].Description
	})
	return rows, nil
}

// ConsolidatedStock saldo total por (descrição, unidade) somando todos os
// locais, apenas totais positivos.
func (e *Engine) ConsolidatedStock(ctx context.Context) ([]dto.ConsolidatedRow, error) {
	products, err := e.products.List(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := e.balancesByProduct(ctx)
	if err != nil {
		return nil, err
	}
	type key struct{ description, unit string }
	totals := make(map[key]decimal.Decimal)
	for _, p := range products {
		k := key{p.Description, p.Unit}
		totals[k] = totals[k].Add(balances[p.ID])
	}
	var rows []dto.ConsolidatedRow
	for k, total := range totals {
		if !total.IsPositive() {
			continue
		}
		rows = append(rows, dto.ConsolidatedRow{Description: k.description, Unit: k.unit, Balance: total})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Description != rows[j].Description {
			return rows[i].Description < rows[j].Description
		}
		return rows[i].Unit < rows[j].Unit
	})
	return rows, nil
}

// History reconstrói a série de saldo acumulado do produto, reproduzindo
// cada movimento em ordem cronológica. Ledger vazio devolve fatia vazia,
// não erro: a interface mostra "ainda não há movimentações".
func (e *Engine) History(ctx context.Context, productID int64) ([]dto.BalancePoint, error) {
	product, err := e.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrUnknownProduct
	}
	movements, err := e.movements.List(ctx, repository.MovementFilter{
		ProductID: &productID,
		Ascending: true,
	})
	if err != nil {
		return nil, err
	}
	points := make([]dto.BalancePoint, 0, len(movements))
	running := decimal.Zero
	for _, m := range movements {
		running = running.Add(m.Signed())
		points = append(points, dto.BalancePoint{
			Date:     m.Date,
			Kind:     m.Kind,
			Quantity: m.Signed(),
			Balance:  running,
		})
	}
	return points, nil
}

// CriticalProducts produtos com saldo abaixo do estoque de segurança.
// Limite nulo vale zero; como o gate impede saldo negativo, produto sem
// limite definido nunca é crítico.
func (e *Engine) CriticalProducts(ctx context.Context) ([]dto.StockRow, error) {
	rows, err := e.StockOverview(ctx)
	if err != nil {
		return nil, err
	}
	var critical []dto.StockRow
	for _, r := range rows {
		if r.Critical {
			critical = append(critical, r)
		}
	}
	return critical, nil
}

func (e *Engine) balancesByProduct(ctx context.Context) (map[int64]decimal.Decimal, error) {
	totals, err := e.movements.TotalsByProduct(ctx)
	if err != nil {
		return nil, err
	}
	balances := make(map[int64]decimal.Decimal, len(totals))
	for _, t := range totals {
		balances[t.ProductID] = t.Entradas.Sub(t.Saidas)
	}
	return balances, nil
}

func stockRow(p *entity.Product, bal decimal.Decimal) dto.StockRow {
	return dto.StockRow{
		ProductID:   p.ID,
		SKU:         p.SKU,
		Description: p.Description,
		Unit:        p.Unit,
		Type:        p.Type,
		Location:    p.Location,
		Balance:     bal,
		SafetyStock: p.SafetyStock,
		Critical:    bal.LessThan(p.SafetyStockOrZero()),
	}
}

func sortStockRows(rows []dto.StockRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Description != rows[j].Description {
			return rows[i].Description < rows[j].Description
		}
		return rows[i].ProductID < rows[j].ProductID
	})
}
