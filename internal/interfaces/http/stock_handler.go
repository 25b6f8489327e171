package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mcisistemas/estoque-api/internal/application/balance"
	"github.com/mcisistemas/estoque-api/internal/application/dto"
	"github.com/mcisistemas/estoque-api/internal/domain"
)

// StockHandler visões de saldo derivadas do ledger.
type StockHandler struct {
	engine *balance.Engine
}

// NewStockHandler constrói o handler.
func NewStockHandler(engine *balance.Engine) *StockHandler {
	return &StockHandler{engine: engine}
}

// Overview GET /api/stock — todos os produtos com saldo e marcação crítica.
func (h *StockHandler) Overview(c *fiber.Ctx) error {
	rows, err := h.engine.StockOverview(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "stock": rows})
}

// ByLocation GET /api/stock/by-location?location= — saldos positivos por local.
func (h *StockHandler) ByLocation(c *fiber.Ctx) error {
	rows, err := h.engine.StockByLocation(c.Context(), c.Query("location"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "stock": rows})
}

// Consolidated GET /api/stock/consolidated — totais por (descrição, unidade).
func (h *StockHandler) Consolidated(c *fiber.Ctx) error {
	rows, err := h.engine.ConsolidatedStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "stock": rows})
}

// Critical GET /api/stock/critical — produtos abaixo do estoque de segurança.
func (h *StockHandler) Critical(c *fiber.Ctx) error {
	rows, err := h.engine.CriticalProducts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "critical": rows})
}

// History GET /api/products/:id/history — série de saldo acumulado.
// Fatia vazia significa "ainda não há movimentações", não erro.
func (h *StockHandler) History(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	points, err := h.engine.History(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if points == nil {
		points = []dto.BalancePoint{}
	}
	return c.JSON(fiber.Map{"product_id": id, "history": points})
}
