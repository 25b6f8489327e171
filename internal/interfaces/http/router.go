package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mcisistemas/estoque-api/internal/application/balance"
	"github.com/mcisistemas/estoque-api/internal/application/catalog"
	"github.com/mcisistemas/estoque-api/internal/application/ledger"
	"github.com/mcisistemas/estoque-api/internal/application/reports"
	"github.com/mcisistemas/estoque-api/internal/infrastructure/pdf"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	CatalogUC *catalog.UseCase
	LedgerUC  *ledger.UseCase
	Engine    *balance.Engine
	ReportsUC *reports.UseCase
	PDFGen    *pdf.CriticalReportGenerator
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/catalog", catalogHandler.List)
	api.Post("/catalog/import", catalogHandler.Import)

	// Movimentos (gate de validação + ledger)
	movementHandler := NewMovementHandler(deps.LedgerUC)
	api.Post("/movements/entrada", movementHandler.RegisterEntrada)
	api.Post("/movements/saida", movementHandler.RegisterSaida)

	// Saldos derivados
	stockHandler := NewStockHandler(deps.Engine)
	api.Get("/stock", stockHandler.Overview)
	api.Get("/stock/by-location", stockHandler.ByLocation)
	api.Get("/stock/consolidated", stockHandler.Consolidated)
	api.Get("/stock/critical", stockHandler.Critical)

	// Produtos: busca por rótulo, consulta por ID, histórico
	api.Get("/products", catalogHandler.Search)
	api.Get("/products/:id/history", stockHandler.History)
	api.Get("/products/:id", catalogHandler.Get)

	// Relatórios e exportações
	reportHandler := NewReportHandler(deps.ReportsUC, deps.Engine, deps.PDFGen)
	api.Get("/movements", reportHandler.Movements)
	api.Get("/reports/recent", reportHandler.Recent)
	api.Get("/reports/most-active", reportHandler.MostActive)
	api.Get("/reports/export.xlsx", reportHandler.ExportWorkbook)
	api.Get("/reports/critical.pdf", reportHandler.ExportCriticalPDF)
	api.Get("/reports/:name.csv", reportHandler.ExportCSV)
}
