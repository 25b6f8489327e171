package excel_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mcisistemas/estoque-api/internal/application/dto"
	"github.com/mcisistemas/estoque-api/internal/infrastructure/excel"
)

func sampleBundle() dto.ReportBundle {
	safety := decimal.NewFromInt(5)
	return dto.ReportBundle{
		Stock: []dto.StockRow{
			{Location: "Almox A", SKU: "PAR-01", Description: "Parafuso M6", Unit: "UN",
				Balance: decimal.NewFromInt(12), SafetyStock: &safety},
		},
		Entradas: []dto.MovementRow{
			{Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), SKU: "PAR-01",
				Description: "Parafuso M6", Quantity: decimal.NewFromInt(12), Counterparty: "Fornecedor X"},
		},
		Saidas: []dto.MovementRow{},
		MostActive: []dto.ActiveProduct{
			{SKU: "PAR-01", Description: "Parafuso M6", TotalMoved: decimal.NewFromInt(12)},
		},
		Critical: []dto.StockRow{},
	}
}

func TestWriteReportWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, excel.WriteReportWorkbook(&buf, sampleBundle()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{
		excel.SheetStock,
		excel.SheetEntradas,
		excel.SheetSaidas,
		excel.SheetMostActive,
		excel.SheetCritical,
	}, f.GetSheetList(), "uma aba por relatório, sem a aba default")

	rows, err := f.GetRows(excel.SheetStock)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, []string{"Local", "SKU", "Descricao", "Unidade", "Saldo", "Est. Seguranca"}, rows[0])
	assert.Equal(t, "Parafuso M6", rows[1][2])
	assert.Equal(t, "12", rows[1][4])

	entradas, err := f.GetRows(excel.SheetEntradas)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(entradas), 2)
	assert.Equal(t, "2026-05-01", entradas[1][0])
	assert.Equal(t, "Fornecedor X", entradas[1][4])
}

func TestWriteReportWorkbook_EmptyBundle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, excel.WriteReportWorkbook(&buf, dto.ReportBundle{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	// Só os cabeçalhos.
	rows, err := f.GetRows(excel.SheetSaidas)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
