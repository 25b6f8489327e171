// Package export serializa relatórios individuais em CSV.
package export

import (
	"encoding/csv"
	"io"

	"github.com/mcisistemas/estoque-api/internal/application/dto"
)

// WriteStockCSV emite a visão de estoque atual.
func WriteStockCSV(w io.Writer, rows []dto.StockRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Local", "SKU", "Descricao", "Unidade", "Saldo", "Est. Seguranca"}); err != nil {
		return err
	}
	for _, r := range rows {
		safety := ""
		if r.SafetyStock != nil {
			safety = r.SafetyStock.String()
		}
		if err := writer.Write([]string{
			r.Location, r.SKU, r.Description, r.Unit, r.Balance.String(), safety,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteMovementsCSV emite uma listagem de movimentos.
func WriteMovementsCSV(w io.Writer, rows []dto.MovementRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Data", "Tipo", "SKU", "Descricao", "Quantidade", "Contraparte", "Observacao"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writer.Write([]string{
			r.Date.Format("2006-01-02"), r.Kind, r.SKU, r.Description,
			r.Quantity.String(), r.Counterparty, r.Note,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteMostActiveCSV emite o ranking de produtos mais movimentados.
func WriteMostActiveCSV(w io.Writer, rows []dto.ActiveProduct) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"SKU", "Descricao", "Total Movimentado"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writer.Write([]string{r.SKU, r.Description, r.TotalMoved.String()}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
