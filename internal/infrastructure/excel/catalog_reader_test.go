package excel_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mcisistemas/estoque-api/internal/domain"
	"github.com/mcisistemas/estoque-api/internal/infrastructure/excel"
)

// buildSheet monta uma planilha em memória com as linhas dadas na primeira aba.
func buildSheet(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadCatalog(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"SKU", "Descrição", "Unidade", "Tipo", "Local", "Est. Segurança"},
		{"PAR-01", "Parafuso M6", "UN", "Consumível", "Almox A", "10"},
		{"", "Cabo Flexível", "M", "", "Almox B", "2,5"},
	})

	rows, err := excel.ReadCatalog(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "PAR-01", rows[0].SKU)
	assert.Equal(t, "Parafuso M6", rows[0].Description)
	assert.Equal(t, "Almox A", rows[0].Location)
	require.NotNil(t, rows[0].SafetyStock)
	assert.True(t, rows[0].SafetyStock.Equal(decimal.NewFromInt(10)))

	// Vírgula decimal aceita, SKU opcional.
	assert.Empty(t, rows[1].SKU)
	require.NotNil(t, rows[1].SafetyStock)
	assert.True(t, rows[1].SafetyStock.Equal(decimal.RequireFromString("2.5")))
}

func TestReadCatalog_HeaderMatchingIsLenient(t *testing.T) {
	// Cabeçalho sem acentos e com caixa trocada casa com as mesmas colunas.
	buf := buildSheet(t, [][]any{
		{"sku", "DESCRICAO", "unidade", "TIPO", "local", "EstSeguranca"},
		{"X", "Item", "UN", "", "", ""},
	})

	rows, err := excel.ReadCatalog(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].SafetyStock, "célula vazia vira limite nulo")
}

func TestReadCatalog_SkipsBlankRows(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Descricao", "Unidade", "Tipo", "Local", "EstSeguranca"},
		{"Item A", "UN", "", "", ""},
		{"", "", "", "", ""},
		{"Item B", "UN", "", "", ""},
	})

	rows, err := excel.ReadCatalog(buf)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestReadCatalog_MissingRequiredColumn(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Descricao", "Tipo", "Local", "EstSeguranca"}, // sem Unidade
		{"Item", "X", "Y", ""},
	})

	_, err := excel.ReadCatalog(buf)
	require.Error(t, err)

	var formatErr *domain.ImportFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, 1, formatErr.Row)
	assert.Equal(t, "Unidade", formatErr.Column)
}

func TestReadCatalog_BadDecimalAbortsWholeRead(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Descricao", "Unidade", "Tipo", "Local", "EstSeguranca"},
		{"Item Bom", "UN", "", "", "5"},
		{"Item Ruim", "UN", "", "", "abc"},
	})

	rows, err := excel.ReadCatalog(buf)
	require.Error(t, err)
	assert.Nil(t, rows, "nada é devolvido parcialmente")

	var formatErr *domain.ImportFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, 3, formatErr.Row)
	assert.Equal(t, "EstSeguranca", formatErr.Column)
}

func TestReadCatalog_NotASpreadsheet(t *testing.T) {
	_, err := excel.ReadCatalog(bytes.NewBufferString("isto não é um xlsx"))
	assert.Error(t, err)
}
