package http

import (
	"bytes"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mcisistemas/estoque-api/internal/application/balance"
	"github.com/mcisistemas/estoque-api/internal/application/dto"
	"github.com/mcisistemas/estoque-api/internal/application/reports"
	"github.com/mcisistemas/estoque-api/internal/domain"
	"github.com/mcisistemas/estoque-api/internal/domain/entity"
	"github.com/mcisistemas/estoque-api/internal/infrastructure/excel"
	"github.com/mcisistemas/estoque-api/internal/infrastructure/export"
	"github.com/mcisistemas/estoque-api/internal/infrastructure/pdf"
)

// ReportHandler relatórios e exportações (xlsx, csv, pdf).
type ReportHandler struct {
	reports *reports.UseCase
	engine  *balance.Engine
	pdfGen  *pdf.CriticalReportGenerator
}

// NewReportHandler constrói o handler.
func NewReportHandler(r *reports.UseCase, e *balance.Engine, g *pdf.CriticalReportGenerator) *ReportHandler {
	return &ReportHandler{reports: r, engine: e, pdfGen: g}
}

// Movements GET /api/movements — filtros opcionais compostos com AND.
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	q, err := parseMovementQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.reports.Movements(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	if rows == nil {
		rows = []dto.MovementRow{}
	}
	return c.JSON(fiber.Map{"total": len(rows), "movements": rows})
}

// Recent GET /api/reports/recent — últimas entradas e saídas.
func (h *ReportHandler) Recent(c *fiber.Ctx) error {
	activity, err := h.reports.RecentActivity(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(activity)
}

// MostActive GET /api/reports/most-active — top 10 por movimentação total.
func (h *ReportHandler) MostActive(c *fiber.Ctx) error {
	ranking, err := h.reports.MostActive(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(ranking), "products": ranking})
}

// ExportWorkbook GET /api/reports/export.xlsx — todos os relatórios em uma
// pasta, uma aba por relatório.
func (h *ReportHandler) ExportWorkbook(c *fiber.Ctx) error {
	bundle, err := h.buildBundle(c)
	if err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	if err := excel.WriteReportWorkbook(&buf, *bundle); err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="relatorios-estoque.xlsx"`)
	return c.Send(buf.Bytes())
}

// ExportCSV GET /api/reports/:name.csv — name em {stock, movements, most-active, critical}.
func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	name := c.Params("name")
	var buf bytes.Buffer
	var err error
	switch name {
	case "stock":
		var rows []dto.StockRow
		if rows, err = h.engine.StockOverview(c.Context()); err == nil {
			err = export.WriteStockCSV(&buf, rows)
		}
	case "movements":
		var rows []dto.MovementRow
		if rows, err = h.reports.Movements(c.Context(), reports.MovementQuery{Ascending: true}); err == nil {
			err = export.WriteMovementsCSV(&buf, rows)
		}
	case "most-active":
		var rows []dto.ActiveProduct
		if rows, err = h.reports.MostActive(c.Context()); err == nil {
			err = export.WriteMostActiveCSV(&buf, rows)
		}
	case "critical":
		var rows []dto.StockRow
		if rows, err = h.engine.CriticalProducts(c.Context()); err == nil {
			err = export.WriteStockCSV(&buf, rows)
		}
	default:
		return respondError(c, domain.ErrNotFound)
	}
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`.csv"`)
	return c.Send(buf.Bytes())
}

// ExportCriticalPDF GET /api/reports/critical.pdf.
func (h *ReportHandler) ExportCriticalPDF(c *fiber.Ctx) error {
	rows, err := h.engine.CriticalProducts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.pdfGen.Generate(rows, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="estoque-critico.pdf"`)
	return c.Send(doc)
}

func (h *ReportHandler) buildBundle(c *fiber.Ctx) (*dto.ReportBundle, error) {
	ctx := c.Context()
	stock, err := h.engine.StockOverview(ctx)
	if err != nil {
		return nil, err
	}
	entradaKind := entity.MovementEntrada
	entradas, err := h.reports.Movements(ctx, reports.MovementQuery{Kind: &entradaKind, Ascending: true})
	if err != nil {
		return nil, err
	}
	saidaKind := entity.MovementSaida
	saidas, err := h.reports.Movements(ctx, reports.MovementQuery{Kind: &saidaKind, Ascending: true})
	if err != nil {
		return nil, err
	}
	mostActive, err := h.reports.MostActive(ctx)
	if err != nil {
		return nil, err
	}
	critical, err := h.engine.CriticalProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ReportBundle{
		Stock:      stock,
		Entradas:   entradas,
		Saidas:     saidas,
		MostActive: mostActive,
		Critical:   critical,
	}, nil
}

func parseMovementQuery(c *fiber.Ctx) (reports.MovementQuery, error) {
	var q reports.MovementQuery
	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, domain.ErrInvalidInput
		}
		q.ProductID = &id
	}
	if raw := c.Query("kind"); raw != "" {
		if raw != entity.MovementEntrada && raw != entity.MovementSaida {
			return q, domain.ErrInvalidInput
		}
		kind := raw
		q.Kind = &kind
	}
	if raw := c.Query("location"); raw != "" {
		location := raw
		q.Location = &location
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return q, domain.ErrInvalidInput
		}
		q.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return q, domain.ErrInvalidInput
		}
		q.To = &t
	}
	q.Ascending = c.Query("order") == "asc"
	q.Limit = c.QueryInt("limit", 100)
	return q, nil
}
