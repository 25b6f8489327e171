package excel

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mcisistemas/estoque-api/internal/application/dto"
)

// Nomes das abas da pasta de exportação, uma por relatório.
const (
	SheetStock      = "Estoque Atual"
	SheetEntradas   = "Entradas"
	SheetSaidas     = "Saidas"
	SheetMostActive = "Mais Movimentados"
	SheetCritical   = "Criticos"
)

// WriteReportWorkbook serializa todos os relatórios em uma única pasta
// .xlsx, uma aba nomeada por relatório, colunas na ordem da projeção
// de cada consulta.
func WriteReportWorkbook(w io.Writer, bundle dto.ReportBundle) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeStockSheet(f, SheetStock, bundle.Stock); err != nil {
		return err
	}
	if err := writeMovementSheet(f, SheetEntradas, "Fornecedor", bundle.Entradas); err != nil {
		return err
	}
	if err := writeMovementSheet(f, SheetSaidas, "Destino", bundle.Saidas); err != nil {
		return err
	}
	if err := writeMostActiveSheet(f, SheetMostActive, bundle.MostActive); err != nil {
		return err
	}
	if err := writeStockSheet(f, SheetCritical, bundle.Critical); err != nil {
		return err
	}

	// A aba default do excelize não corresponde a relatório nenhum.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remover aba default: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("gravar pasta de relatórios: %w", err)
	}
	return nil
}

func writeStockSheet(f *excelize.File, sheet string, rows []dto.StockRow) error {
	header := []any{"Local", "SKU", "Descricao", "Unidade", "Saldo", "Est. Seguranca"}
	if err := newSheet(f, sheet, header); err != nil {
		return err
	}
	for i, r := range rows {
		safety := ""
		if r.SafetyStock != nil {
			safety = r.SafetyStock.String()
		}
		row := []any{r.Location, r.SKU, r.Description, r.Unit, decimalCell(r.Balance), safety}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeMovementSheet(f *excelize.File, sheet, counterpartyLabel string, rows []dto.MovementRow) error {
	header := []any{"Data", "SKU", "Descricao", "Quantidade", counterpartyLabel, "Observacao"}
	if err := newSheet(f, sheet, header); err != nil {
		return err
	}
	for i, r := range rows {
		row := []any{r.Date.Format("2006-01-02"), r.SKU, r.Description,
			decimalCell(r.Quantity), r.Counterparty, r.Note}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeMostActiveSheet(f *excelize.File, sheet string, rows []dto.ActiveProduct) error {
	header := []any{"SKU", "Descricao", "Total Movimentado"}
	if err := newSheet(f, sheet, header); err != nil {
		return err
	}
	for i, r := range rows {
		row := []any{r.SKU, r.Description, decimalCell(r.TotalMoved)}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func newSheet(f *excelize.File, sheet string, header []any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("criar aba %q: %w", sheet, err)
	}
	return setRow(f, sheet, 1, header)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("escrever linha %d da aba %q: %w", row, sheet, err)
	}
	return nil
}

func decimalCell(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}
