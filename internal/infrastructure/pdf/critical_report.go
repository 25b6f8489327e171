// Package pdf gera o relatório imprimível de produtos em estoque crítico
// (saldo abaixo do estoque de segurança) usando Maroto v2.
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mcisistemas/estoque-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 153, Green: 27, Blue: 27}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// CriticalReportGenerator gera o PDF de estoque crítico.
type CriticalReportGenerator struct{}

// NewCriticalReportGenerator constrói o gerador.
func NewCriticalReportGenerator() *CriticalReportGenerator { return &CriticalReportGenerator{} }

// Generate monta o documento e devolve seus bytes.
func (g *CriticalReportGenerator) Generate(rows []dto.StockRow, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Produtos em Estoque Crítico", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Nenhum produto abaixo do estoque de segurança.", props.Text{
				Size: 9, Align: align.Center, Top: 2, Color: colorGray,
			}),
		)))
	}
	for _, r := range rows {
		m.AddRows(tableRow(r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Produtos em Estoque Crítico", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Saldo atual abaixo do estoque de segurança", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Descrição", 4, align.Left),
		h("Local", 2, align.Left),
		h("Saldo", 2, align.Right),
		h("Est. Segurança", 2, align.Right),
	)
}

func tableRow(r dto.StockRow) core.Row {
	safety := "-"
	if r.SafetyStock != nil {
		safety = r.SafetyStock.String()
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(r.SKU, props.Text{Size: 8, Top: 1})),
		col.New(4).Add(text.New(r.Description, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(r.Location, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(r.Balance.String(), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(safety, props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}
